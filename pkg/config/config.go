// Package config loads client configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can be written as
// human-readable strings like "2s" or "500ms".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}

// Config holds everything the client needs at startup.
type Config struct {
	APIURL         string   `yaml:"api_url"`
	RequestTimeout Duration `yaml:"request_timeout"`
	PollInterval   Duration `yaml:"poll_interval"`
	SearchDebounce Duration `yaml:"search_debounce"`
	DataDir        string   `yaml:"data_dir,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		APIURL:         "http://localhost:3000/api",
		RequestTimeout: Duration{10 * time.Second},
		PollInterval:   Duration{2 * time.Second},
		SearchDebounce: Duration{500 * time.Millisecond},
	}
}

// Load reads the YAML config at path, falling back to defaults when
// the file does not exist, then applies environment overrides. A file
// that exists but cannot be parsed is an error rather than a silent
// fallback.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

// applyEnv overrides fields from SMASHMATE_* variables, which win over
// both defaults and the file.
func (c *Config) applyEnv() error {
	if v := os.Getenv("SMASHMATE_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("SMASHMATE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	for _, ov := range []struct {
		env  string
		dst  *Duration
		name string
	}{
		{"SMASHMATE_REQUEST_TIMEOUT", &c.RequestTimeout, "request timeout"},
		{"SMASHMATE_POLL_INTERVAL", &c.PollInterval, "poll interval"},
		{"SMASHMATE_SEARCH_DEBOUNCE", &c.SearchDebounce, "search debounce"},
	} {
		v := os.Getenv(ov.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s from %s: %w", ov.name, ov.env, err)
		}
		ov.dst.Duration = parsed
	}
	return nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.RequestTimeout.Duration <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.PollInterval.Duration <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if c.SearchDebounce.Duration <= 0 {
		return fmt.Errorf("search_debounce must be positive")
	}
	return nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
