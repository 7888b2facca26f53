package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv
const (
	EnvConfigDir     = "KITTY_CONFIG_DIR"
	EnvVerbose       = "KITTY_VERBOSE"
	EnvRunTimeout    = "KITTY_RUN_TIMEOUT"
	EnvWatchDebounce = "KITTY_WATCH_DEBOUNCE"
)

// ApplyEnv loads .env from the working directory and applies KITTY_*
// overrides. Values already in the environment win over .env.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		c.ConfigDir = dir
	}

	if raw := os.Getenv(EnvVerbose); raw != "" {
		verbose, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerbose, err)
		}
		c.Verbose = verbose
	}

	if raw := os.Getenv(EnvRunTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRunTimeout, err)
		}
		c.RunTimeout = timeout
	}

	if raw := os.Getenv(EnvWatchDebounce); raw != "" {
		debounce, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWatchDebounce, err)
		}
		c.WatchDebounce = debounce
	}

	return nil
}
