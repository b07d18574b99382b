// Package config loads and persists blogctl configuration.
//
// Configuration lives at ~/.blogctl/config.yaml and can be overridden
// by environment variables (BLOGCTL_API_URL, BLOGCTL_LOG_LEVEL,
// BLOGCTL_NO_COLOR). A .env file in the working directory is loaded
// first, so local development setups can keep overrides out of the
// shell profile.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/DJRivera25/blogctl/internal/errors"
)

const (
	// DefaultAPIURL is the platform endpoint used when no config or
	// environment override is present.
	DefaultAPIURL = "http://localhost:4000"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	configFileName = "config.yaml"
)

// Environment variable overrides.
const (
	EnvAPIURL   = "BLOGCTL_API_URL"
	EnvLogLevel = "BLOGCTL_LOG_LEVEL"
	EnvNoColor  = "BLOGCTL_NO_COLOR"
)

// Config holds user-level settings for blogctl.
type Config struct {
	// APIURL is the base URL of the blog platform API.
	APIURL string `yaml:"api_url"`

	// LogLevel controls log verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// NoColor disables colored terminal output.
	NoColor bool `yaml:"no_color,omitempty"`
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
	}
}

// DefaultPath returns the path of the user config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigRead, "failed to determine home directory", err)
	}
	return filepath.Join(home, ".blogctl", configFileName), nil
}

// Load reads the config file at path, applies defaults for missing
// fields, then applies environment overrides. A missing file is not an
// error: defaults plus environment are returned.
func Load(path string) (*Config, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeConfigRead, "failed to read config file", err).
				WithSuggestion("Check permissions on " + path)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigRead, "failed to parse config file", err).
				WithSuggestion("Fix the YAML syntax in " + path).
				WithSuggestion("Or delete the file to fall back to defaults")
		}
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the config from the default path.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Save writes the config to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to encode config", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to write config file", err)
	}
	return nil
}

// Validate checks config fields for well-formed values.
func Validate(cfg *Config) error {
	if cfg.APIURL == "" {
		return errors.New(errors.ErrCodeConfigKey, "api_url must not be empty").
			WithSuggestion("Set api_url in the config file or " + EnvAPIURL + " in the environment")
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeConfigKey, "invalid log_level: "+cfg.LogLevel).
			WithSuggestion("Use one of: debug, info, warn, error")
	}
	return nil
}

// Get returns the value of a config key by name.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "log_level":
		return c.LogLevel, nil
	case "no_color":
		if c.NoColor {
			return "true", nil
		}
		return "false", nil
	default:
		return "", errors.New(errors.ErrCodeConfigKey, "unknown config key: "+key).
			WithSuggestion("Known keys: api_url, log_level, no_color")
	}
}

// Set updates a config key by name. The caller is responsible for
// saving afterwards.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "log_level":
		c.LogLevel = value
	case "no_color":
		c.NoColor = strings.EqualFold(value, "true") || value == "1"
	default:
		return errors.New(errors.ErrCodeConfigKey, "unknown config key: "+key).
			WithSuggestion("Known keys: api_url, log_level, no_color")
	}
	return Validate(c)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvNoColor); v != "" {
		cfg.NoColor = strings.EqualFold(v, "true") || v == "1"
	}
}
