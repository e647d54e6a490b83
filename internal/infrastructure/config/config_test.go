package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ReadTimeout)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "backoffice", cfg.MongoDB)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("READ_TIMEOUT", "5")
	t.Setenv("MONGO_DB", "rooms_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 5*time.Second, cfg.ReadTimeout)
	require.Equal(t, "rooms_test", cfg.MongoDB)
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("WRITE_TIMEOUT", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.WriteTimeout)
}
