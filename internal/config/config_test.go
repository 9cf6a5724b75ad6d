package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"APP_ENV", "DEBUG", "LOG_LEVEL", "BCRYPT_COST",
	"SOCIAL_UNIQUE_USERNAMES", "SOCIAL_DEDUPE_FRIEND_REQUESTS", "FEED_TIME_FORMAT",
}

// unsetEnv removes keys for the duration of the test. An empty-but-set
// variable is not the same as an absent one to envconfig.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		key := key
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, prev) })
		}
		_ = os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, envVars...)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Social.UniqueUsernames)
	assert.False(t, cfg.Social.DedupeFriendRequests)
	assert.Equal(t, time.RFC1123, cfg.Feed.TimeFormat)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SOCIAL_UNIQUE_USERNAMES", "true")
	t.Setenv("SOCIAL_DEDUPE_FRIEND_REQUESTS", "true")
	t.Setenv("FEED_TIME_FORMAT", time.RFC3339)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Environment)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Social.UniqueUsernames)
	assert.True(t, cfg.Social.DedupeFriendRequests)
	assert.Equal(t, time.RFC3339, cfg.Feed.TimeFormat)
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("DEBUG", "notabool")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BcryptCostOutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestValidate_EmptyTimeFormatFallsBack(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{BcryptCost: 10}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.RFC1123, cfg.Feed.TimeFormat)
}
