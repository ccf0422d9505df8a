package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/coursehub.db", cfg.Database.Path)
	assert.Equal(t, "sqlite", cfg.Session.Store)
	assert.Equal(t, "coursehub_session", cfg.Session.CookieName)
	assert.Equal(t, 60*24, cfg.Session.TTLMinutes)
	assert.Empty(t, cfg.Session.Secret, "secret has no default; main refuses to start without one")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("COURSEHUB_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("COURSEHUB_SESSION_SECRET", "s3cret")
	t.Setenv("COURSEHUB_SESSION_STORE", "redis")
	t.Setenv("COURSEHUB_REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}
