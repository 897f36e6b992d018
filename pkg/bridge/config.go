package bridge

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config errors.
var (
	ErrMissingHost           = errors.New("bridge host not configured")
	ErrMissingApplicationKey = errors.New("application key not configured")
)

// Config is the client configuration loaded from YAML.
type Config struct {
	// Host is the bridge address (IP or hostname, no scheme).
	Host string `yaml:"host"`

	// BridgeID is the expected bridge ID; when set, discovery results are
	// matched against it.
	BridgeID string `yaml:"bridge_id,omitempty"`

	// ApplicationKey authenticates REST and stream requests.
	ApplicationKey string `yaml:"application_key"`

	// MaxRetries bounds consecutive stream reconnect attempts (default: 3).
	MaxRetries int `yaml:"max_retries,omitempty"`

	// RetryDelay is the fixed wait between reconnect attempts (default: 2s).
	RetryDelay time.Duration `yaml:"retry_delay,omitempty"`

	// RequestTimeout bounds each REST request (default: 10s).
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`

	// StopTimeout bounds pipeline shutdown (default: 5s).
	StopTimeout time.Duration `yaml:"stop_timeout,omitempty"`

	// LogFile is an optional path for the binary event log.
	LogFile string `yaml:"log_file,omitempty"`
}

// DefaultConfig returns a config with all optional fields defaulted.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		RequestTimeout: 10 * time.Second,
		StopTimeout:    5 * time.Second,
	}
}

// LoadConfig reads a YAML config file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaults.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaults.RetryDelay
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}
	if c.StopTimeout <= 0 {
		c.StopTimeout = defaults.StopTimeout
	}
}

// Validate checks that the required fields are present.
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrMissingHost
	}
	if c.ApplicationKey == "" {
		return ErrMissingApplicationKey
	}
	return nil
}

// BaseURL returns the HTTPS base URL for the configured host.
func (c *Config) BaseURL() string {
	return "https://" + c.Host
}
