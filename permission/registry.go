package permission

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrRegistryFrozen is returned by [Registry.Register] after [Registry.Freeze].
var ErrRegistryFrozen = errors.New("registry frozen")

// ErrKeyMalformed is returned for keys that are not of the form
// "resource.action".
var ErrKeyMalformed = errors.New("permission key malformed")

// Registry is an optional catalog of the permission keys a host application
// gates on. It exists to catch typo'd keys at startup: the capability rule
// itself never consults it.
//
//	Docs: docs/permission.md
type Registry struct {
	mu     sync.RWMutex
	known  map[string]struct{}
	frozen bool
}

// NewRegistry creates an empty known-key [Registry].
func NewRegistry() *Registry {
	return &Registry{known: make(map[string]struct{})}
}

// Register adds a key to the catalog. Keys must be "resource.action" with
// non-empty halves. Must be called before [Registry.Freeze].
func (r *Registry) Register(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, exists := r.known[key]; exists {
		return fmt.Errorf("permission key already registered: %q", key)
	}

	r.known[key] = struct{}{}
	return nil
}

// Known reports whether the key was registered.
func (r *Registry) Known(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.known[key]
	return ok
}

// Freeze prevents further registrations.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Count returns the number of registered keys.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.known)
}

// Lint checks a list of keys used by guards or menu entries against the
// catalog. Empty keys are the unrestricted marker and always pass. It
// returns one error per unknown or malformed key, joined.
func (r *Registry) Lint(keys []string) error {
	var errs []error
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := ValidateKey(key); err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", key, err))
			continue
		}
		if !r.Known(key) {
			errs = append(errs, fmt.Errorf("%q: not a registered permission key", key))
		}
	}
	return errors.Join(errs...)
}

// ValidateKey checks the "resource.action" shape without consulting any
// registry.
func ValidateKey(key string) error {
	resource, action, ok := strings.Cut(key, ".")
	if !ok || resource == "" || action == "" {
		return ErrKeyMalformed
	}
	return nil
}
