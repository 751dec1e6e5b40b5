package audio

import (
	"math"
	"os"
	"strconv"
)

// Config controls feedback playback
type Config struct {
	Enabled bool
	Volume  float64 // 0.0 - 1.0
}

// DefaultConfig returns the baseline audio configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Volume:  0.5,
	}
}

// LoadConfig loads audio configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("FT_SIPPING_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volume as 0-100
	if volume := os.Getenv("FT_SIPPING_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = float64(val) / 100.0
			if cfg.Volume < 0 {
				cfg.Volume = 0
			}
			if cfg.Volume > 1 {
				cfg.Volume = 1
			}
		}
	}

	return cfg
}

// volumeDB maps the 0-1 volume to beep's logarithmic scale, where 0
// is unity gain and each unit halves the level (Base 2)
func (c *Config) volumeDB() float64 {
	if c.Volume <= 0 {
		return -10 // effectively silent
	}
	return math.Log2(c.Volume)
}
