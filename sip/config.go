package sip

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the per-run session parameters. Host, Count, Interval
// and Width come from the CLI; Tick and Timeout are ambient tuning
// with environment overrides.
type Config struct {
	Host     string
	Count    int
	Interval time.Duration
	Tick     time.Duration // animation frame advance
	Timeout  time.Duration // single echo request bound
}

// DefaultConfig returns the baseline session configuration
func DefaultConfig() *Config {
	return &Config{
		Count:    4,
		Interval: time.Second,
		Tick:     30 * time.Millisecond,
		Timeout:  2 * time.Second,
	}
}

// LoadConfig loads session configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if tick := os.Getenv("FT_SIPPING_TICK_MS"); tick != "" {
		if val, err := strconv.Atoi(tick); err == nil && val > 0 {
			cfg.Tick = time.Duration(val) * time.Millisecond
		}
	}

	if timeout := os.Getenv("FT_SIPPING_TIMEOUT_MS"); timeout != "" {
		if val, err := strconv.Atoi(timeout); err == nil && val > 0 {
			cfg.Timeout = time.Duration(val) * time.Millisecond
		}
	}

	return cfg
}

// Validate rejects parameter combinations the driver cannot run with
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must be non-negative")
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
