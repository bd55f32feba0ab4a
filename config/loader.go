package config

// loader.go - configuration loading from environment variables.
//
// Every supported variable uses the PDLINK_ prefix and maps onto a
// Config field via its `env` struct tag. Durations accept Go syntax
// ("5s", "250ms"). LoadFromEnv should be called AFTER Default() and
// BEFORE CLI flag parsing so that flags take precedence.

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// LoadFromEnv overlays environment variables onto cfg. Unset variables
// leave the existing value untouched.
func LoadFromEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
