package goGuard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MrEthical07/goGuard/api"
	"github.com/MrEthical07/goGuard/guard"
	"github.com/MrEthical07/goGuard/permission"
	"github.com/MrEthical07/goGuard/session"
	"github.com/MrEthical07/goGuard/transport"
)

// Builder assembles an [Engine]. Configure it during initialization and call
// [Builder.Build] exactly once; a Builder is not safe for concurrent use.
type Builder struct {
	config Config

	storage   session.Storage
	baseRT    http.RoundTripper
	navigator guard.Navigator
	notifier  guard.Notifier
	auditSink AuditSink

	permissionKeys []string

	built bool
}

// New returns a Builder preloaded with defaults.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration. Fields left zero keep their
// zero values; combine with [LoadConfigFile] to layer defaults first.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage sets the durable session backend. Required.
func (b *Builder) WithStorage(storage session.Storage) *Builder {
	b.storage = storage
	return b
}

// WithBaseTransport sets the RoundTripper the interceptor wraps. Defaults to
// [net/http.DefaultTransport].
func (b *Builder) WithBaseTransport(rt http.RoundTripper) *Builder {
	b.baseRT = rt
	return b
}

// WithNavigator sets the navigation port. Required.
func (b *Builder) WithNavigator(nav guard.Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithNotifier sets the notification port. Optional; denial and success
// messages are dropped without one.
func (b *Builder) WithNotifier(n guard.Notifier) *Builder {
	b.notifier = n
	return b
}

// WithAuditSink sets the audit event destination. Events are dispatched only
// when Audit.Enabled is also set.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithPermissionKeys registers the known permission key catalog. Optional;
// with a catalog, [Engine.LintKeys] flags keys no backend role can ever
// grant.
func (b *Builder) WithPermissionKeys(keys []string) *Builder {
	b.permissionKeys = keys
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles request latency histograms. Implies nothing
// about counters; see [Builder.WithMetricsEnabled].
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, hydrates the session store from
// storage, and wires the engine. ctx bounds the hydration reads only.
func (b *Builder) Build(ctx context.Context) (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.storage == nil {
		return nil, errors.New("session storage required")
	}

	if b.navigator == nil {
		return nil, errors.New("navigator required")
	}

	// -------- PERMISSION REGISTRY --------
	var registry *permission.Registry
	if len(b.permissionKeys) > 0 {
		registry = permission.NewRegistry()
		for _, key := range b.permissionKeys {
			if err := registry.Register(key); err != nil {
				return nil, err
			}
		}
		registry.Freeze()
	}

	// -------- SESSION STORE --------
	store, err := session.NewStore(ctx, b.storage, cfg.Session.DefaultLocale)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:    cfg,
		store:     store,
		registry:  registry,
		navigator: b.navigator,
		notifier:  b.notifier,
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	// -------- HTTP PIPELINE --------
	// The engine itself is the unauthorized sink: every 401 seen by the
	// interceptor funnels into the same teardown path.
	interceptor := transport.New(b.baseRT, store, engine)
	engine.http = &http.Client{
		Transport: interceptor,
		Timeout:   cfg.API.Timeout,
	}

	client, err := api.NewClient(cfg.API.BaseURL, engine.http, func(d time.Duration) {
		engine.metrics.Observe(MetricRequestLatency, d)
	})
	if err != nil {
		return nil, err
	}
	client.SetUserAgent(cfg.API.UserAgent)
	engine.api = client

	b.built = true

	return engine, nil
}
