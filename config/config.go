// Package config defines the runtime configuration for a pdlink session
// and its defaults, environment overlay, and validation.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds every tuneable for a single pdlink session.
//
// Precedence order (highest wins): CLI flags (cmd package), environment
// variables (loader.go), defaults (defaults.go).
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host        string        `env:"PDLINK_HOST"`
	Port        int           `env:"PDLINK_PORT"`
	Sync        bool          `env:"PDLINK_SYNC"`         // blocking mode instead of queued workers
	DialTimeout time.Duration `env:"PDLINK_DIAL_TIMEOUT"` // 0 = OS default
	ReadTimeout time.Duration `env:"PDLINK_READ_TIMEOUT"` // 0 = block indefinitely

	// ── Transport tuning ─────────────────────────────────────────────
	ChunkSize    int           `env:"PDLINK_CHUNK_SIZE"`     // async inbound read size
	SyncReadSize int           `env:"PDLINK_SYNC_READ_SIZE"` // sync receive read size
	DrainWait    time.Duration `env:"PDLINK_DRAIN_WAIT"`     // outbound worker idle wait

	// ── CLI behaviour ────────────────────────────────────────────────
	PollInterval time.Duration `env:"PDLINK_POLL_INTERVAL"` // reply poll cadence
	ShowStats    bool          `env:"PDLINK_STATS"`         // dump metrics on exit

	// ── Output ───────────────────────────────────────────────────────
	Verbose int `env:"PDLINK_VERBOSE"`
}

// ParsePort converts a decimal port argument, rejecting values outside
// 1-65535.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}

// Default returns a Config populated with the values from defaults.go.
func Default() *Config {
	return &Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		DialTimeout:  DefaultDialTimeout,
		ChunkSize:    DefaultChunkSize,
		SyncReadSize: DefaultSyncReadSize,
		DrainWait:    DefaultDrainWait,
		PollInterval: DefaultPollInterval,
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("hostname is required (use --help for usage)")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.SyncReadSize <= 0 {
		return fmt.Errorf("sync read size must be positive, got %d", c.SyncReadSize)
	}
	if c.DrainWait <= 0 {
		return fmt.Errorf("drain wait must be positive, got %v", c.DrainWait)
	}
	if c.DialTimeout < 0 || c.ReadTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}
