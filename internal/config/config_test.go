package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ASK_BASE_URL", "ASK_PATH", "ASK_LOG_FILE", "ASK_LOG_LEVEL", "PORT", "ASK_STUB_PREFIX"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000/ask", cfg.Client.Endpoint())
	assert.Equal(t, "askchat.log", cfg.Log.File)
	assert.Equal(t, zapcore.InfoLevel, cfg.Log.Level)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Empty(t, cfg.Server.EchoPrefix)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ASK_BASE_URL", "https://bot.example.com/")
	t.Setenv("ASK_PATH", "api/ask")
	t.Setenv("ASK_LOG_LEVEL", "debug")
	t.Setenv("PORT", "127.0.0.1:8080")
	t.Setenv("ASK_STUB_PREFIX", "Echo: ")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://bot.example.com", cfg.Client.BaseURL)
	assert.Equal(t, "/api/ask", cfg.Client.Path)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "Echo: ", cfg.Server.EchoPrefix)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"base url scheme": {"ASK_BASE_URL", "ftp://host"},
		"base url host":   {"ASK_BASE_URL", "http://"},
		"log level":       {"ASK_LOG_LEVEL", "loud"},
		"port":            {"PORT", "80 80"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()

			require.Error(t, err)
		})
	}
}

func TestParseBaseURLNamesSource(t *testing.T) {
	_, err := ParseBaseURL("--endpoint", "localhost:5000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --endpoint value")

	clearEnv(t)
	t.Setenv("ASK_BASE_URL", "ftp://host")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ASK_BASE_URL value")

	base, err := ParseBaseURL("--endpoint", " http://bot.internal:8000/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://bot.internal:8000", base)
}
