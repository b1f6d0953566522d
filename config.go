package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"go-mscx/mscx"
)

type Config struct {
	Reader  mscx.Options  `yaml:"reader"`
	Logging LoggingConfig `yaml:"logging"`

	// Files read in parallel.
	Jobs int `yaml:"jobs"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Jobs:    runtime.NumCPU(),
	}
}

// LoadConfig loads configuration from a YAML file. A missing file, or an
// empty path, yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MSCX_STRICT"); v != "" {
		c.Reader.Strict = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("MSCX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
