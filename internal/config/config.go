package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dreampaper/dreampaper/internal/generate"
	"github.com/dreampaper/dreampaper/internal/provider"
	"github.com/dreampaper/dreampaper/internal/refresh"
)

// Config drives the local daemon. The Lambda entry point reads its
// environment directly in the injector instead.
type Config struct {
	Model         string
	CredentialKey string
	Theme         string
	Orientation   generate.Orientation
	Quality       generate.Quality
	StoreDir      string
	Schedule      string
	CycleTimeout  time.Duration
}

// Load reads configuration from the environment, with an optional .env file
// for development. Missing values fall back to sensible defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Model:         getenv("DREAMPAPER_MODEL", provider.DefaultModel),
		CredentialKey: getenv("DREAMPAPER_CREDENTIAL_KEY", "OPENAI_API_KEY"),
		Theme:         os.Getenv("DREAMPAPER_THEME"),
		Orientation:   generate.Orientation(getenv("DREAMPAPER_ORIENTATION", string(generate.Landscape))),
		Quality:       generate.Quality(getenv("DREAMPAPER_QUALITY", string(generate.QualityHigh))),
		Schedule:      getenv("DREAMPAPER_SCHEDULE", "0 7 * * *"),
		CycleTimeout:  refresh.DefaultTimeout,
	}

	if dir := os.Getenv("DREAMPAPER_DIR"); dir != "" {
		cfg.StoreDir = dir
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving store dir: %w", err)
		}
		cfg.StoreDir = filepath.Join(home, ".dreampaper")
	}

	if v := os.Getenv("DREAMPAPER_CYCLE_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("DREAMPAPER_CYCLE_TIMEOUT must be seconds: %w", err)
		}
		cfg.CycleTimeout = time.Duration(secs) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Orientation {
	case generate.Portrait, generate.Landscape, generate.Square:
	default:
		return fmt.Errorf("invalid orientation %q", c.Orientation)
	}
	switch c.Quality {
	case generate.QualityStandard, generate.QualityHigh:
	default:
		return fmt.Errorf("invalid quality %q", c.Quality)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
