// Package config implements the generator configuration options.
package config

import (
	"encoding/hex"
	"fmt"

	"github.com/aerius-labs/hash-drbg-go/drbg"
	"github.com/aerius-labs/hash-drbg-go/hashfn"
	"github.com/aerius-labs/hash-drbg-go/logging"
)

// Config is the generator configuration structure.
type Config struct {
	// Security strength in bits (112, 128, 192 or 256).
	Strength int `mapstructure:"strength"`
	// Hash function family (sha2 or sha3).
	HashFamily string `mapstructure:"hash_family"`
	// Number of generate requests between reseeds.
	ReseedInterval uint64 `mapstructure:"reseed_interval"`
	// Hex encoded personalization string.
	Personalization string `mapstructure:"personalization"`

	// Pool is the buffer allocator configuration.
	Pool PoolConfig `mapstructure:"pool"`
	// Log is the logging configuration.
	Log LogConfig `mapstructure:"log"`
}

// PoolConfig is the buffer allocator configuration.
type PoolConfig struct {
	// Maximum number of outstanding bytes (0 means unlimited).
	Limit int `mapstructure:"limit"`
}

// LogConfig is the logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Strength:       256,
		HashFamily:     "sha2",
		ReseedInterval: drbg.DefaultReseedInterval,
		Pool: PoolConfig{
			Limit: 4 * drbg.MaxRequestBytes,
		},
		Log: LogConfig{
			Level:  "WARN",
			Format: "logfmt",
		},
	}
}

// Validate validates the configuration settings.
func (c *Config) Validate() error {
	family, err := c.Family()
	if err != nil {
		return err
	}
	if _, err = hashfn.ForStrength(c.Strength, family); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.ReseedInterval == 0 || c.ReseedInterval > drbg.DefaultReseedInterval {
		return fmt.Errorf("config: reseed_interval must be between 1 and %d", drbg.DefaultReseedInterval)
	}
	if _, err = c.PersonalizationBytes(); err != nil {
		return err
	}
	if c.Pool.Limit < 0 {
		return fmt.Errorf("config: pool.limit must not be negative")
	}

	var lvl logging.Level
	if err = lvl.Set(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var format logging.Format
	if err = format.Set(c.Log.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// Family returns the parsed hash family.
func (c *Config) Family() (hashfn.Family, error) {
	var family hashfn.Family
	if err := family.Set(c.HashFamily); err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return family, nil
}

// PersonalizationBytes returns the decoded personalization string.
func (c *Config) PersonalizationBytes() ([]byte, error) {
	b, err := hex.DecodeString(c.Personalization)
	if err != nil {
		return nil, fmt.Errorf("config: malformed personalization: %w", err)
	}
	return b, nil
}

// Options returns the DRBG options implied by the configuration.
func (c *Config) Options() ([]drbg.Option, error) {
	family, err := c.Family()
	if err != nil {
		return nil, err
	}
	return []drbg.Option{
		drbg.WithHashFamily(family),
		drbg.WithReseedInterval(c.ReseedInterval),
	}, nil
}
