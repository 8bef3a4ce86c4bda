package goGuard

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/MrEthical07/goGuard/session"
)

// Config defines the engine configuration. Instances are configured during
// initialization and treated as immutable afterwards.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Routes  RoutesConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig locates the CMS admin backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls session defaults. DefaultLocale applies when
// storage holds no locale slot; "ar" when empty.
type SessionConfig struct {
	DefaultLocale string
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig names the two redirect targets the guards and flows use.
type RoutesConfig struct {
	Login string
	Home  string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls in-process metric collection.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:   15 * time.Second,
			UserAgent: "goGuard",
		},
		Session: SessionConfig{
			DefaultLocale: session.DefaultLocale,
		},
		Routes: RoutesConfig{
			Login: "/login",
			Home:  "/",
		},
		Audit: AuditConfig{
			BufferSize: 64,
			DropIfFull: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

// Validate checks the configuration for use by [Builder.Build].
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API.BaseURL required")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("API.BaseURL must be an absolute URL")
	}
	if c.API.Timeout < 0 {
		return errors.New("API.Timeout must not be negative")
	}

	switch c.Session.DefaultLocale {
	case "", "ar", "en":
	default:
		return errors.New("Session.DefaultLocale must be \"ar\" or \"en\"")
	}

	if !strings.HasPrefix(c.Routes.Login, "/") {
		return errors.New("Routes.Login must be an absolute path")
	}
	if !strings.HasPrefix(c.Routes.Home, "/") {
		return errors.New("Routes.Home must be an absolute path")
	}
	if c.Routes.Login == c.Routes.Home {
		return errors.New("Routes.Login and Routes.Home must differ")
	}

	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}

	return nil
}
