// Package config loads tasktracker settings from defaults, an optional
// config file, a .env file and TASKTRACKER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "TASKTRACKER"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	defaultDir           = ".tasktracker"
	defaultCSVName       = "tasks.csv"
	defaultDBName        = "tasktracker.db"
	defaultKeepSnapshots = 5
)

type Config struct {
	Storage       string `json:"storage"        mapstructure:"storage"`
	Path          string `json:"path,omitempty" mapstructure:"path"`
	KeepSnapshots int    `json:"keep_snapshots" mapstructure:"keep_snapshots"`
	LogLevel      string `json:"log_level"      mapstructure:"log_level"`
}

// Load resolves the configuration. configFile may be empty or name a file
// that does not exist; either way defaults and the environment still apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("storage", BackendFile)
	v.SetDefault("path", "")
	v.SetDefault("keep_snapshots", defaultKeepSnapshots)
	v.SetDefault("log_level", "info")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", configFile, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Path == "" && cfg.Storage != BackendMemory {
		path, err := DefaultPath(cfg.Storage)
		if err != nil {
			return nil, err
		}
		cfg.Path = path
	}
	return &cfg, nil
}

// LoadDotEnv exports the variables in an env file. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns where a backend keeps its data when no path is configured.
func DefaultPath(storage string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	name := defaultCSVName
	if storage == BackendSQLite {
		name = defaultDBName
	}
	return filepath.Join(home, defaultDir, name), nil
}

// Validate checks the settings against the config schema.
func (c *Config) Validate() error {
	return ValidateSettings(c)
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
