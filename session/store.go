package session

import (
	"context"
	"errors"
	"sync"

	"github.com/MrEthical07/goGuard/permission"
)

// ErrEmptyToken is returned by [Store.SetToken] for an empty token string.
var ErrEmptyToken = errors.New("session: empty token")

// ErrNoSession is returned by [Store.SetPermissions] when no token is held:
// permissions must never be populated without a valid session.
var ErrNoSession = errors.New("session: no active session")

// ErrLocaleUnsupported is returned by [Store.SetLocale] for locales other
// than "ar" and "en".
var ErrLocaleUnsupported = errors.New("session: unsupported locale")

// DefaultLocale is used when neither storage nor configuration provides one.
const DefaultLocale = "ar"

const localeEnglish = "en"

// Store holds the session: token, permission set, locale. It is constructed
// explicitly and passed to every component that needs session state; there
// is no package-level instance.
//
// All methods are safe for concurrent use. Reads are memory-only after
// hydration, so guards and menu filtering never block on storage.
type Store struct {
	storage       Storage
	defaultLocale string

	mu          sync.Mutex
	token       string
	permissions permission.Set
	locale      string

	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// NewStore hydrates a [Store] from storage. A missing token or permissions
// slot hydrates as logged-out / no permissions; malformed slot contents
// degrade the same way and are never surfaced as errors. defaultLocale
// falls back to [DefaultLocale] when empty.
func NewStore(ctx context.Context, storage Storage, defaultLocale string) (*Store, error) {
	if storage == nil {
		return nil, errors.New("session: storage required")
	}
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	if defaultLocale != DefaultLocale && defaultLocale != localeEnglish {
		return nil, ErrLocaleUnsupported
	}

	s := &Store{
		storage:       storage,
		defaultLocale: defaultLocale,
		permissions:   permission.Set{},
		locale:        defaultLocale,
		subscribers:   make(map[int]func(Snapshot)),
	}

	if token, err := storage.Load(ctx, SlotToken); err == nil {
		s.token = token
	}

	// Permissions without a token would violate the session invariant, so
	// they are only honored while a token is held.
	if s.token != "" {
		if raw, err := storage.Load(ctx, SlotPermissions); err == nil {
			s.permissions = decodePermissions(raw)
		}
	}

	if locale, err := storage.Load(ctx, SlotLocale); err == nil {
		if locale == DefaultLocale || locale == localeEnglish {
			s.locale = locale
		}
	}

	return s, nil
}

// Token returns the bearer token and whether one is held.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// SetToken persists the token and updates memory. Subscribers are notified
// after the new state is observable.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.storage.Store(ctx, SlotToken, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs, snap)
	return nil
}

// Permissions returns the current permission keys, sorted.
func (s *Store) Permissions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permissions.Keys()
}

// SetPermissions normalizes, persists, and applies the permission set.
// It fails with [ErrNoSession] when no token is held.
func (s *Store) SetPermissions(ctx context.Context, keys []string) error {
	s.mu.Lock()
	hasToken := s.token != ""
	s.mu.Unlock()
	if !hasToken {
		return ErrNoSession
	}

	set := permission.NewSet(keys)
	encoded, err := encodePermissions(set)
	if err != nil {
		return err
	}
	if err := s.storage.Store(ctx, SlotPermissions, encoded); err != nil {
		return err
	}

	s.mu.Lock()
	if s.token == "" {
		// A clear raced the persist; keep the invariant and drop the set.
		s.mu.Unlock()
		_ = s.storage.Delete(ctx, SlotPermissions)
		return ErrNoSession
	}
	s.permissions = set
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs, snap)
	return nil
}

// Locale returns the active display locale.
func (s *Store) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// SetLocale persists the locale. It is independent of authentication and
// survives [Store.Clear].
func (s *Store) SetLocale(ctx context.Context, locale string) error {
	if locale != DefaultLocale && locale != localeEnglish {
		return ErrLocaleUnsupported
	}
	if err := s.storage.Store(ctx, SlotLocale, locale); err != nil {
		return err
	}

	s.mu.Lock()
	s.locale = locale
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs, snap)
	return nil
}

// Clear removes token and permissions together, from memory and storage.
// No subscriber ever observes one cleared and not the other. The returned
// bool reports whether there was a session to clear, making concurrent
// teardown triggers (a 401 racing an explicit logout) idempotent.
//
// Memory is wiped even when storage deletion fails: the client must never
// stay logged in because of a storage error.
func (s *Store) Clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.token == "" && len(s.permissions) == 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.token = ""
	s.permissions = permission.Set{}
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	err := errors.Join(
		s.storage.Delete(ctx, SlotToken),
		s.storage.Delete(ctx, SlotPermissions),
	)

	notify(subs, snap)
	return true, err
}

// Can evaluates the capability rule against the current permission set.
// It is synchronous and never performs I/O.
func (s *Store) Can(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return permission.Allowed(s.permissions, key)
}

// Snapshot returns a consistent copy of the session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _ := s.snapshotLocked()
	return snap
}

// Subscribe registers a callback invoked synchronously after every session
// mutation, with the snapshot that mutation produced. The returned cancel
// function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) snapshotLocked() (Snapshot, []func(Snapshot)) {
	snap := Snapshot{
		Token:       s.token,
		Permissions: s.permissions.Keys(),
		Locale:      s.locale,
	}

	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return snap, subs
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
