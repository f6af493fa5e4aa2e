// Package config loads application configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	ContentDir string `env:"MANOR_CONTENT_DIR" envDefault:"content"`
	StoryFile  string `env:"MANOR_STORY_FILE" envDefault:"content/story.txt"`
	SavePath   string `env:"MANOR_SAVE_PATH" envDefault:".saves/hollow-manor.db"`
	Difficulty string `env:"MANOR_DIFFICULTY" envDefault:"default"`

	// Seed pins the random source for reproducible runs; 0 means a
	// fresh crypto-random seed per session.
	Seed int64 `env:"MANOR_SEED"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
