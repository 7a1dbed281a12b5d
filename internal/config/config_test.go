package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "BEAST_IMAGE_MODEL", "BEAST_STORE", "BEAST_SAVE_DIR",
		"BEAST_SQLITE_PATH", "BEAST_TICK_INTERVAL", "BEAST_LOG_LEVEL",
		"BEAST_LOG_FILE", "BEAST_SPECTATE_ADDR", "BEAST_SEED",
	} {
		// Setenv restores the original value on cleanup.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.HasGemini())
	assert.Equal(t, "gemini-2.5-flash-image", cfg.ImageModel)
	assert.Equal(t, StoreYAML, cfg.Store)
	assert.Equal(t, ".saves", cfg.SaveDir)
	assert.Equal(t, ".saves/beasts.db", cfg.SQLitePath)
	assert.Equal(t, 12*time.Second, cfg.TickInterval)
	assert.Equal(t, ".saves/beast.log", cfg.LogFile)
	assert.Equal(t, "", cfg.SpectateAddr)
	assert.Equal(t, uint64(0), cfg.Seed)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("BEAST_STORE", "sqlite")
	t.Setenv("BEAST_TICK_INTERVAL", "500ms")
	t.Setenv("BEAST_LOG_LEVEL", "debug")
	t.Setenv("BEAST_SPECTATE_ADDR", "127.0.0.1:8089")
	t.Setenv("BEAST_SEED", "42")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.HasGemini())
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "127.0.0.1:8089", cfg.SpectateAddr)
	assert.Equal(t, uint64(42), cfg.Seed)
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfigParseError(t *testing.T) {
	clearEnv(t)
	t.Setenv("BEAST_TICK_INTERVAL", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	if !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("Expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Store: StoreMemory, TickInterval: time.Second, LogLevel: "warn"}
	require.NoError(t, valid.Validate())

	badStore := valid
	badStore.Store = "postgres"
	assert.ErrorContains(t, badStore.Validate(), "BEAST_STORE")

	badTick := valid
	badTick.TickInterval = 0
	assert.ErrorContains(t, badTick.Validate(), "BEAST_TICK_INTERVAL")

	badLevel := valid
	badLevel.LogLevel = "loud"
	assert.ErrorContains(t, badLevel.Validate(), "BEAST_LOG_LEVEL")
}
