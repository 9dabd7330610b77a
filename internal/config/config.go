// Package config provides configuration management for the monitor.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"yhmonitor/internal/scrape"
)

// Configuration validation errors.
var (
	ErrNoSources          = errors.New("at least one source is required")
	ErrSourceMissingName  = errors.New("source name is required")
	ErrSourceMissingURL   = errors.New("source url is required")
	ErrInvalidSourceName  = errors.New("source name must not contain path separators")
	ErrDuplicateSource    = errors.New("duplicate source name")
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
	ErrInvalidTimeout     = errors.New("http.timeout_sec must be at least 1")
	ErrInvalidRate        = errors.New("http.requests_per_sec must be positive")
	ErrInvalidKeep        = errors.New("storage.keep must be non-negative")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config is the complete monitor configuration.
type Config struct {
	Sources     []Source      `yaml:"sources"`
	Concurrency int           `yaml:"concurrency"`
	HTTP        HTTPConfig    `yaml:"http"`
	Storage     StorageConfig `yaml:"storage"`
	Logging     LoggingConfig `yaml:"logging"`
}

// Source binds a source name to the search page it monitors. The name
// doubles as the snapshot directory name.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// HTTPConfig contains fetch settings.
type HTTPConfig struct {
	TimeoutSeconds    int     `yaml:"timeout_sec"`
	UserAgent         string  `yaml:"user_agent"`
	Contact           string  `yaml:"contact"`
	RequestsPerSecond float64 `yaml:"requests_per_sec"`
	Origin            string  `yaml:"origin"`
}

// StorageConfig contains snapshot storage settings.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
	Keep    int    `yaml:"keep"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the reference configuration: the two Data/IT searches
// on yrkeshogskolan.se, one source for Gothenburg on-site programs and
// one for remote programs.
func Default() *Config {
	return &Config{
		Sources: []Source{
			{
				Name: "on-site",
				URL:  "https://www.yrkeshogskolan.se/hitta-utbildning/sok/?area=data&latest-filter=clearing&place=12&start=638869248000000000&clearing=1&query=&sort=name",
			},
			{
				Name: "remote",
				URL:  "https://www.yrkeshogskolan.se/hitta-utbildning/sok/?area=data&latest-filter=form&start=638869248000000000&clearing=1&form=2&query=&sort=name",
			},
		},
		Concurrency: 2,
		HTTP: HTTPConfig{
			TimeoutSeconds:    30,
			UserAgent:         scrape.DefaultUserAgent,
			RequestsPerSecond: scrape.DefaultRate,
			Origin:            scrape.DefaultOrigin,
		},
		Storage: StorageConfig{
			DataDir: "data",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns the configuration layered from defaults, the YAML file
// at path and the environment. An empty path skips the file and yields
// the defaults. A .env file in the working directory is loaded first so
// the environment lookups below see it; the contact string falls back
// to the YH_CONTACT environment variable when the file sets none.
func Load(path string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.HTTP.Contact == "" {
		cfg.HTTP.Contact = strings.TrimSpace(os.Getenv("YH_CONTACT"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for shapes the monitor cannot run
// with.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for i, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("%w: sources[%d]", ErrSourceMissingName, i)
		}
		if strings.ContainsAny(src.Name, `/\`) {
			return fmt.Errorf("%w: %q", ErrInvalidSourceName, src.Name)
		}
		if src.URL == "" {
			return fmt.Errorf("%w: sources[%d]", ErrSourceMissingURL, i)
		}
		if _, dup := seen[src.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSource, src.Name)
		}
		seen[src.Name] = struct{}{}
	}

	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.HTTP.TimeoutSeconds < 1 {
		return ErrInvalidTimeout
	}
	if c.HTTP.RequestsPerSecond <= 0 {
		return ErrInvalidRate
	}
	if c.Storage.Keep < 0 {
		return ErrInvalidKeep
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// FullUserAgent returns the User-Agent header value, with the contact
// address appended when one is configured.
func (c *Config) FullUserAgent() string {
	if c.HTTP.Contact == "" {
		return c.HTTP.UserAgent
	}
	return fmt.Sprintf("%s; contact: %s", c.HTTP.UserAgent, c.HTTP.Contact)
}

// Timeout returns the fetch timeout as a duration.
func (h *HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}
