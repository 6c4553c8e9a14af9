package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "whitelist"

// Settings holds runtime configuration resolved from the environment.
type Settings struct {
	Dir      string `envconfig:"DIR" default:"~/.whitelist"`
	DBPath   string `envconfig:"DB_PATH"`
	LogFile  string `envconfig:"LOG_FILE"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	Listen   string `envconfig:"LISTEN" default:"127.0.0.1:8080"`
}

// Load reads an optional .env file, then WHITELIST_* variables.
// Paths left empty are derived from Dir.
func Load() (*Settings, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	dir, err := expandHomeDir(s.Dir)
	if err != nil {
		return nil, err
	}
	s.Dir = dir

	if s.DBPath == "" {
		s.DBPath = filepath.Join(s.Dir, "whitelist.db")
	}
	if s.LogFile == "" {
		s.LogFile = filepath.Join(s.Dir, "whitelist.log")
	}
	if s.DBPath, err = expandHomeDir(s.DBPath); err != nil {
		return nil, err
	}
	if s.LogFile, err = expandHomeDir(s.LogFile); err != nil {
		return nil, err
	}

	return &s, nil
}

// expandHomeDir replaces the leading ~ with the user's home directory
func expandHomeDir(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, path[1:]), nil
}
