package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds process-level settings that are not user preferences.
type Config struct {
	DebugMode bool   `env:"DEBUG_MODE"` // console encoder in development layout
	LogLevel  string `env:"LOG_LEVEL"`  // debug|info|warn|error
	LogDir    string `env:"LOG_DIR"`    // empty disables the log file

	// Path to a Google service account key for the google speech engine.
	GoogleCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	TickInterval time.Duration `env:"TICK_INTERVAL"` // display refresh period
	Compact      bool          `env:"COMPACT_FACE"`  // small watch-sized window
}

// Defaults returns the configuration before .env, environment and flags.
func Defaults() *Config {
	return &Config{
		LogLevel:     "info",
		TickInterval: 10 * time.Millisecond,
		Compact:      true,
	}
}

// Load reads .env, then the environment, then command line flags.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	flags := flag.NewFlagSet("talkwatch", flag.ContinueOnError)
	flags.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "development log layout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flags.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "directory for the rotating log file")
	flags.StringVar(&cfg.GoogleCredentials, "google-credentials", cfg.GoogleCredentials, "Google service account key for speech")
	flags.DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "display refresh period, e.g. 10ms")
	flags.BoolVar(&cfg.Compact, "compact", cfg.Compact, "watch-sized face window")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	if strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")) == "" && strings.TrimSpace(cfg.GoogleCredentials) != "" {
		_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cfg.GoogleCredentials)
	}

	return cfg, nil
}
