package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the catalog client.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	LogLevel       string
	AutoConfirm    bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:5000"
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.AutoConfirm = false
}

// LoadConfig builds a Config from defaults, the optional config file and
// the flags found in args (os.Args[1:] in production). Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
