package goGuard

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	API struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"api"`
	Session struct {
		DefaultLocale string `yaml:"default_locale"`
	} `yaml:"session"`
	Routes struct {
		Login string `yaml:"login"`
		Home  string `yaml:"home"`
	} `yaml:"routes"`
	Audit struct {
		Enabled    bool `yaml:"enabled"`
		BufferSize int  `yaml:"buffer_size"`
		DropIfFull bool `yaml:"drop_if_full"`
	} `yaml:"audit"`
	Metrics struct {
		Enabled                 bool `yaml:"enabled"`
		EnableLatencyHistograms bool `yaml:"latency_histograms"`
	} `yaml:"metrics"`
}

// LoadConfigFile reads a YAML configuration file over the defaults.
// Omitted fields keep their default values; the result is validated by
// [Builder.Build], not here.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := defaultConfig()
	if fc.API.BaseURL != "" {
		cfg.API.BaseURL = fc.API.BaseURL
	}
	if fc.API.Timeout != 0 {
		cfg.API.Timeout = fc.API.Timeout
	}
	if fc.API.UserAgent != "" {
		cfg.API.UserAgent = fc.API.UserAgent
	}
	if fc.Session.DefaultLocale != "" {
		cfg.Session.DefaultLocale = fc.Session.DefaultLocale
	}
	if fc.Routes.Login != "" {
		cfg.Routes.Login = fc.Routes.Login
	}
	if fc.Routes.Home != "" {
		cfg.Routes.Home = fc.Routes.Home
	}
	cfg.Audit.Enabled = fc.Audit.Enabled
	if fc.Audit.BufferSize != 0 {
		cfg.Audit.BufferSize = fc.Audit.BufferSize
	}
	if fc.Audit.Enabled {
		cfg.Audit.DropIfFull = fc.Audit.DropIfFull
	}
	cfg.Metrics.Enabled = fc.Metrics.Enabled
	cfg.Metrics.EnableLatencyHistograms = fc.Metrics.EnableLatencyHistograms

	return cfg, nil
}
