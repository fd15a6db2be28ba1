package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults match bin2header output targeting 8-bit playback devices.
const (
	DefaultMarker   = "static const"
	DefaultBitDepth = 8
	DefaultLogLevel = "info"
)

// Config holds tool-wide defaults. Command line flags override these
// values.
type Config struct {
	Marker   string // declaration prefix that starts the array body
	BitDepth int    // source sample width, 8 or 16
	LogLevel string
}

// MaxValue returns the amplitude remap bias threshold for the configured
// bit depth (127 for 8-bit samples, 32767 for 16-bit).
func (c *Config) MaxValue() int {
	return 1<<(c.BitDepth-1) - 1
}

// Load reads configuration from environment variables with sane defaults.
// A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Marker:   getEnvString("HDR2WAV_MARKER", DefaultMarker),
		BitDepth: getEnvInt("HDR2WAV_BIT_DEPTH", DefaultBitDepth),
		LogLevel: getEnvString("HDR2WAV_LOG_LEVEL", DefaultLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Marker == "" {
		return errors.New("HDR2WAV_MARKER must not be empty")
	}
	if c.BitDepth != 8 && c.BitDepth != 16 {
		return fmt.Errorf("HDR2WAV_BIT_DEPTH must be 8 or 16, got %d", c.BitDepth)
	}
	return nil
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
