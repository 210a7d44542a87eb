// Package config loads runtime settings from an optional yaml file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config keeps the settings shared by all three front-ends.
type Config struct {
	Env         string `yaml:"env" env:"TAXREMINDER_ENV" env-default:"local"`
	DBPath      string `yaml:"db_path" env:"TAXREMINDER_DB" env-default:"tax_reminder.db"`
	LogPath     string `yaml:"log_path" env:"TAXREMINDER_LOG" env-default:"tax_reminder.log"`
	HorizonDays int    `yaml:"horizon_days" env:"TAXREMINDER_HORIZON" env-default:"2"`
}

// Load reads configuration from the yaml file at path when it exists, then
// applies environment overrides and defaults. An empty path or a missing file
// is not an error; the environment and defaults stand alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("error reading config %s: %w", path, err)
			}

			return &cfg, nil
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error reading config from environment: %w", err)
	}

	return &cfg, nil
}
