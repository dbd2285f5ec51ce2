package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything bookdesk needs to reach the lending server and
// write its debug log.
type Config struct {
	Server  string `envconfig:"SERVER"`
	LogFile string `envconfig:"LOG_FILE"`
}

const (
	defaultConfigPath = "~/.config/bookdesk/config.toml"
	defaultLogFile    = "~/.local/state/bookdesk/bookdesk.log"
	defaultServer     = "127.0.0.1:8080"

	envPrefix = "BOOKDESK"
)

// Load locates and parses the bookdesk config, falling back to defaults when
// missing. A .env file in the working directory is honoured, and any
// BOOKDESK_* environment variable overrides the file value.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Server: defaultServer, LogFile: defaultLogFile}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			Server  string `toml:"server"`
			LogFile string `toml:"log_file"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		if server := strings.TrimSpace(raw.Server); server != "" {
			cfg.Server = server
		}
		if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
			cfg.LogFile = logFile
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults stand
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}

	cfg.Server = strings.TrimSpace(cfg.Server)
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}
	logFile := strings.TrimSpace(cfg.LogFile)
	if logFile == "" {
		logFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(logFile)

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
