package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	App    AppConfig
	Auth   AuthConfig
	Social SocialConfig
	Feed   FeedConfig
}

type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"` // "development", "production", "test"
	Debug       bool   `envconfig:"DEBUG" default:"false"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

type AuthConfig struct {
	BcryptCost int `envconfig:"BCRYPT_COST" default:"12"`
}

// SocialConfig toggles the optional guards on registration and friend requests.
// Both are off by default, matching the permissive behavior callers rely on.
type SocialConfig struct {
	UniqueUsernames      bool `envconfig:"SOCIAL_UNIQUE_USERNAMES" default:"false"`
	DedupeFriendRequests bool `envconfig:"SOCIAL_DEDUPE_FRIEND_REQUESTS" default:"false"`
}

type FeedConfig struct {
	TimeFormat string `envconfig:"FEED_TIME_FORMAT" default:"Mon, 02 Jan 2006 15:04:05 MST"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	// An empty prefix makes envconfig use the tag names verbatim.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	if c.Feed.TimeFormat == "" {
		c.Feed.TimeFormat = time.RFC1123
	}
	return nil
}
