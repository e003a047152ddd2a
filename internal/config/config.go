// Package config loads runtime settings by layering defaults, an optional
// YAML file, and REMI_* environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 8484
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5
	DefaultBagCapacity  = 1024
	DefaultLogLevel     = "info"
)

// Config captures user-configurable settings shared across commands.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Focus   FocusConfig   `yaml:"focus"`
	Session SessionConfig `yaml:"session"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds the HTTP/WebSocket listener settings.
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	EnableCORS bool   `yaml:"enable_cors"`
}

// FocusConfig holds the Pomodoro phase durations in minutes.
type FocusConfig struct {
	FocusMinutes int `yaml:"focus_minutes"`
	BreakMinutes int `yaml:"break_minutes"`
}

// SessionConfig bounds the conversation-bag cache.
type SessionConfig struct {
	BagCapacity int `yaml:"bag_capacity"`
}

// StoreConfig locates the on-disk entity store.
type StoreConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	dataDir := "data"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".remi", "data")
	}
	return Config{
		Server:  ServerConfig{Host: DefaultHost, Port: DefaultPort, EnableCORS: true},
		Focus:   FocusConfig{FocusMinutes: DefaultFocusMinutes, BreakMinutes: DefaultBreakMinutes},
		Session: SessionConfig{BagCapacity: DefaultBagCapacity},
		Store:   StoreConfig{Dir: dataDir},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// Load layers the YAML file at path (optional; "" tries ~/.remi/config.yaml)
// and environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".remi", "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("REMI_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REMI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REMI_DATA_DIR"); v != "" {
		cfg.Store.Dir = v
	}
	if v := os.Getenv("REMI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("REMI_FOCUS_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.Focus.FocusMinutes = m
		}
	}
	if v := os.Getenv("REMI_BREAK_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.Focus.BreakMinutes = m
		}
	}
}

// Validate rejects settings the schedulers cannot run with.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Focus.FocusMinutes <= 0 {
		return fmt.Errorf("focus duration must be positive, got %d", c.Focus.FocusMinutes)
	}
	if c.Focus.BreakMinutes <= 0 {
		return fmt.Errorf("break duration must be positive, got %d", c.Focus.BreakMinutes)
	}
	if c.Session.BagCapacity <= 0 {
		return fmt.Errorf("session bag capacity must be positive, got %d", c.Session.BagCapacity)
	}
	return nil
}
