// Package config reads run defaults from the environment. Command-line
// flags override every value.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Simulation
	Seed         uint64 // GOPCR_SEED
	Trajectories int    // GOPCR_TRAJECTORIES
	Years        int    // GOPCR_YEARS, horizon length starting at year 1

	// Logging
	LogLevel  string // LOG_LEVEL: debug, info, warn, error
	LogFormat string // LOG_FORMAT: text, json
}

// Load reads the environment, falling back to the nominal analysis.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	var err error
	if cfg.Seed, err = getEnvUint("GOPCR_SEED", 1); err != nil {
		return nil, err
	}
	if cfg.Trajectories, err = getEnvInt("GOPCR_TRAJECTORIES", 1000); err != nil {
		return nil, err
	}
	if cfg.Years, err = getEnvInt("GOPCR_YEARS", 50); err != nil {
		return nil, err
	}

	if cfg.Trajectories <= 0 {
		return nil, fmt.Errorf("GOPCR_TRAJECTORIES must be positive, got %d", cfg.Trajectories)
	}
	if cfg.Years <= 0 {
		return nil, fmt.Errorf("GOPCR_YEARS must be positive, got %d", cfg.Years)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func getEnvUint(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an unsigned integer", key, v)
	}
	return n, nil
}
