package goGuard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goGuard/api"
	"github.com/MrEthical07/goGuard/session"
)

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Replace(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func (n *recordingNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.routes)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

type backendOptions struct {
	token       string
	permissions []any
	loginStatus int
	loginBody   string
	loginDelay  time.Duration
	logoutFail  bool
	permStatus  int
}

// newBackend fakes the three admin endpoints.
func newBackend(t *testing.T, opts backendOptions) (*httptest.Server, *sync.Map) {
	t.Helper()

	var headers sync.Map
	mux := http.NewServeMux()

	mux.HandleFunc("/admin/login", func(w http.ResponseWriter, r *http.Request) {
		headers.Store("login:Authorization", r.Header.Get("Authorization"))
		headers.Store("login:Accept-Language", r.Header.Get("Accept-Language"))
		if opts.loginDelay > 0 {
			time.Sleep(opts.loginDelay)
		}
		if opts.loginStatus != 0 {
			w.WriteHeader(opts.loginStatus)
			_, _ = w.Write([]byte(opts.loginBody))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"token":       opts.token,
				"permissions": opts.permissions,
			},
			"message": "ok",
		})
	})

	mux.HandleFunc("/admin/logout", func(w http.ResponseWriter, r *http.Request) {
		headers.Store("logout:Authorization", r.Header.Get("Authorization"))
		if opts.logoutFail {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "bye"})
	})

	mux.HandleFunc("/admin/permissions", func(w http.ResponseWriter, r *http.Request) {
		headers.Store("permissions:Authorization", r.Header.Get("Authorization"))
		if opts.permStatus != 0 {
			w.WriteHeader(opts.permStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": opts.permissions})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &headers
}

func newEngineTest(t *testing.T, opts backendOptions) (*Engine, *recordingNavigator, *recordingNotifier, *session.MemoryStorage) {
	t.Helper()

	srv, _ := newBackend(t, opts)
	return newEngineAgainst(t, srv.URL)
}

func newEngineAgainst(t *testing.T, baseURL string) (*Engine, *recordingNavigator, *recordingNotifier, *session.MemoryStorage) {
	t.Helper()

	nav := &recordingNavigator{}
	notifier := &recordingNotifier{}
	storage := session.NewMemoryStorage()

	cfg := defaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.Metrics.Enabled = true

	engine, err := New().
		WithConfig(cfg).
		WithStorage(storage).
		WithNavigator(nav).
		WithNotifier(notifier).
		Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, nav, notifier, storage
}

func TestLoginRoundTrip(t *testing.T) {
	engine, nav, notifier, _ := newEngineTest(t, backendOptions{
		token:       "t1",
		permissions: []any{"dashboard.view", "services.view"},
	})

	err := engine.Login(context.Background(), Credentials{Identifier: "admin@example.com", Secret: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if token, ok := engine.Token(); !ok || token != "t1" {
		t.Fatalf("token = %q, %v; want t1, true", token, ok)
	}
	if !engine.Can("services.view") {
		t.Fatal("expected services.view to be granted")
	}
	if engine.Can("roles.view") {
		t.Fatal("roles.view must not be granted")
	}
	if got := nav.last(); got != "/" {
		t.Fatalf("navigated to %q, want /", got)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.successes) != 1 || notifier.successes[0] != "login.success" {
		t.Fatalf("success notifications = %v", notifier.successes)
	}
}

func TestLoginServerMessageVerbatim(t *testing.T) {
	const serverMessage = "بيانات الدخول غير صحيحة"

	engine, nav, _, _ := newEngineTest(t, backendOptions{
		loginStatus: http.StatusUnprocessableEntity,
		loginBody:   `{"message":"` + serverMessage + `"}`,
	})

	err := engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"})

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *api.APIError", err)
	}
	if apiErr.Message != serverMessage {
		t.Fatalf("message = %q, want server message verbatim", apiErr.Message)
	}
	if _, ok := engine.Token(); ok {
		t.Fatal("failed login must not create a session")
	}
	if nav.count() != 0 {
		t.Fatal("failed login must not navigate")
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	engine, _, _, _ := newEngineTest(t, backendOptions{token: "t1"})

	for _, creds := range []Credentials{
		{},
		{Identifier: "admin"},
		{Secret: "pw"},
	} {
		if err := engine.Login(context.Background(), creds); !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("Login(%+v) = %v, want ErrMissingCredentials", creds, err)
		}
	}
}

func TestLoginSingleFlight(t *testing.T) {
	engine, _, _, _ := newEngineTest(t, backendOptions{
		token:      "t1",
		loginDelay: 150 * time.Millisecond,
	})

	started := make(chan struct{})
	var firstErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		close(started)
		firstErr = engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"})
	}()

	<-started
	time.Sleep(20 * time.Millisecond)
	secondErr := engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"})
	wg.Wait()

	if firstErr != nil {
		t.Fatalf("first login: %v", firstErr)
	}
	if !errors.Is(secondErr, ErrLoginInFlight) {
		t.Fatalf("second login = %v, want ErrLoginInFlight", secondErr)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricLoginRejected] != 1 {
		t.Fatalf("rejected counter = %d, want 1", snap.Counters[MetricLoginRejected])
	}
}

func TestLoginPermissionFetchFailureFailsClosed(t *testing.T) {
	engine, nav, _, _ := newEngineTest(t, backendOptions{
		token:      "t1",
		permStatus: http.StatusInternalServerError,
	})

	if err := engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Login itself succeeds; every gated destination stays denied until a
	// refresh lands.
	if _, ok := engine.Token(); !ok {
		t.Fatal("expected an active session")
	}
	if engine.Can("dashboard.view") {
		t.Fatal("permission fetch failure must leave the set empty")
	}
	if got := nav.last(); got != "/" {
		t.Fatalf("navigated to %q, want /", got)
	}
}

func TestLogoutAlwaysClearsLocally(t *testing.T) {
	engine, nav, notifier, _ := newEngineTest(t, backendOptions{
		token:      "t1",
		logoutFail: true,
	})

	if err := engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := engine.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, ok := engine.Token(); ok {
		t.Fatal("logout must clear the session even when the server call fails")
	}
	if got := nav.last(); got != "/login" {
		t.Fatalf("navigated to %q, want /login", got)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.successes) != 2 || notifier.successes[1] != "logout.success" {
		t.Fatalf("success notifications = %v", notifier.successes)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricLogoutServerError] != 1 {
		t.Fatalf("server error counter = %d, want 1", snap.Counters[MetricLogoutServerError])
	}
}

func TestUnauthorizedResponseTearsDownSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"token": "t1", "permissions": []string{"dashboard.view"}},
		})
	})
	mux.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	engine, nav, _, storage := newEngineAgainst(t, srv.URL)

	if err := engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	before := nav.count()

	resp, err := engine.HTTPClient().Get(srv.URL + "/protected")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if _, ok := engine.Token(); ok {
		t.Fatal("401 must clear the session")
	}
	if len(engine.Snapshot().Permissions) != 0 {
		t.Fatal("401 must clear permissions with the token")
	}
	if _, err := storage.Load(context.Background(), session.SlotToken); !errors.Is(err, session.ErrSlotNotFound) {
		t.Fatalf("token slot after teardown: %v, want ErrSlotNotFound", err)
	}
	if nav.count() != before+1 || nav.last() != "/login" {
		t.Fatalf("navigation after teardown = %v", nav.routes)
	}

	// A second 401 with no session left is a no-op.
	resp, err = engine.HTTPClient().Get(srv.URL + "/protected")
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	resp.Body.Close()
	if nav.count() != before+1 {
		t.Fatal("repeated 401 must not navigate again")
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricUnauthorizedTeardown] != 1 {
		t.Fatalf("teardown counter = %d, want 1", snap.Counters[MetricUnauthorizedTeardown])
	}
}

func TestRefreshPermissions(t *testing.T) {
	engine, _, _, _ := newEngineTest(t, backendOptions{
		token:       "t1",
		permissions: []any{"roles.view"},
	})

	if err := engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := engine.RefreshPermissions(context.Background()); err != nil {
		t.Fatalf("RefreshPermissions: %v", err)
	}
	if !engine.Can("roles.view") {
		t.Fatal("expected refreshed key to be granted")
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricPermissionRefreshSuccess] == 0 {
		t.Fatal("expected refresh success counter")
	}
}

func TestSessionInfoRequiresSession(t *testing.T) {
	engine, _, _, _ := newEngineTest(t, backendOptions{token: "t1"})

	if _, err := engine.SessionInfo(); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("SessionInfo = %v, want ErrUnauthenticated", err)
	}
}

func TestGuardConveniencesUseEngineRoutes(t *testing.T) {
	engine, nav, notifier, _ := newEngineTest(t, backendOptions{
		token:       "t1",
		permissions: []any{"dashboard.view"},
	})

	rendered := false
	view := engine.RequirePermission("settings.view", func(ctx context.Context) error {
		rendered = true
		return nil
	})

	// No session: silent login redirect.
	if err := view(context.Background()); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if rendered || nav.last() != "/login" {
		t.Fatalf("rendered=%v route=%q", rendered, nav.last())
	}

	if err := engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Session without the key: denial notification plus home redirect.
	if err := view(context.Background()); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if rendered {
		t.Fatal("denied view must not render")
	}
	if nav.last() != "/" {
		t.Fatalf("denial route = %q, want /", nav.last())
	}
	notifier.mu.Lock()
	denials := len(notifier.failures)
	notifier.mu.Unlock()
	if denials != 1 {
		t.Fatalf("denial notifications = %d, want 1", denials)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricGuardRedirectLogin] != 1 || snap.Counters[MetricGuardDenied] != 1 {
		t.Fatalf("guard counters = %v", snap.Counters)
	}
}

// detachedStorage accepts writes but fails every delete, like a state file
// on a volume that went read-only mid-session.
type detachedStorage struct {
	*session.MemoryStorage
}

func (s *detachedStorage) Delete(ctx context.Context, slot string) error {
	return errors.New("storage detached")
}

func TestTeardownStorageFailureIsCounted(t *testing.T) {
	srv, _ := newBackend(t, backendOptions{token: "t1", permissions: []any{"dashboard.view"}})

	nav := &recordingNavigator{}
	cfg := defaultConfig()
	cfg.API.BaseURL = srv.URL
	cfg.Metrics.Enabled = true

	engine, err := New().
		WithConfig(cfg).
		WithStorage(&detachedStorage{MemoryStorage: session.NewMemoryStorage()}).
		WithNavigator(nav).
		WithNotifier(&recordingNotifier{}).
		Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)

	if err := engine.Login(context.Background(), Credentials{Identifier: "a", Secret: "b"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := engine.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	// The failed delete never blocks the local teardown.
	if _, ok := engine.Token(); ok {
		t.Fatal("session must be cleared in memory despite the storage failure")
	}
	if nav.last() != "/login" {
		t.Fatalf("navigated to %q, want /login", nav.last())
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricSessionClearError] != 1 {
		t.Fatalf("clear error counter = %d, want 1", snap.Counters[MetricSessionClearError])
	}
}
