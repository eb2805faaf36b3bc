package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCtlConfig_Defaults(t *testing.T) {
	cfg, err := GetCtlConfig(CtlConfig{}, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddress, cfg.Address)
	assert.Equal(t, DefaultRequestTimeout, cfg.Timeout)
}

func TestGetCtlConfig_EnvAndOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:1")
	t.Setenv("APP_CONTROL_TOKEN_KEY", "env-key")

	cfg, err := GetCtlConfig(CtlConfig{Address: "127.0.0.1:2", Timeout: time.Second}, "")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:2", cfg.Address)
	assert.Equal(t, "env-key", cfg.TokenKey)
	assert.Equal(t, time.Second, cfg.Timeout)
}

func TestGetCtlConfig_JSON(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"http_address": "127.0.0.1:3"},
	})

	cfg, err := GetCtlConfig(CtlConfig{}, path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3", cfg.Address)
}
