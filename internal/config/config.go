package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL             = "http://localhost:8080"
	DefaultDebounceMS          = 300
	DefaultPageSize            = 25
	DefaultFilterMaxSelections = 5
	DefaultClearOnSelect       = true
	DefaultRateLimit           = 10
	DefaultRateBurst           = 5
)

// Environment overrides applied on top of the file.
const (
	EnvBaseURL  = "RXMART_BASE_URL"
	EnvAPIKey   = "RXMART_API_KEY"
	EnvLogLevel = "RXMART_LOG_LEVEL"
)

// Config holds CLI configuration stored at ~/.rxmart/config.
type Config struct {
	BaseURL   string    `yaml:"base_url"`
	APIKey    string    `yaml:"api_key,omitempty"`
	LogLevel  string    `yaml:"log_level,omitempty"`
	LogFile   string    `yaml:"log_file,omitempty"`
	Search    Search    `yaml:"search"`
	RateLimit RateLimit `yaml:"rate_limit"`
}

// Search tunes the incremental search widgets.
type Search struct {
	DebounceMS          int  `yaml:"debounce_ms"`
	PageSize            int  `yaml:"page_size"`
	FilterMaxSelections int  `yaml:"filter_max_selections"`
	ClearOnSelect       bool `yaml:"clear_on_select"`
}

// RateLimit caps outbound API traffic.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		LogLevel: "info",
		Search: Search{
			DebounceMS:          DefaultDebounceMS,
			PageSize:            DefaultPageSize,
			FilterMaxSelections: DefaultFilterMaxSelections,
			ClearOnSelect:       DefaultClearOnSelect,
		},
		RateLimit: RateLimit{RPS: DefaultRateLimit, Burst: DefaultRateBurst},
	}
}

// Debounce returns the debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rxmart", "config")
}

// Load reads and parses the config file. Returns error if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("config is empty: %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default plus environment
// overrides when the file does not exist. Any other error is returned.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cfg = Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("config missing base_url")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("search.debounce_ms must be >= 0")
	}
	if c.Search.PageSize < 0 {
		return fmt.Errorf("search.page_size must be >= 0")
	}
	if c.Search.FilterMaxSelections < 0 {
		return fmt.Errorf("search.filter_max_selections must be >= 0")
	}
	return nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	out.APIKey = MaskKey(c.APIKey)
	return &out
}

// MaskKey keeps the first four characters of a secret.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", 8)
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}
