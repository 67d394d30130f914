package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEBUG", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	require.Equal(t, ":3030", cfg.Addr)
	require.False(t, cfg.Debug)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "1")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.True(t, cfg.Debug)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "nope")

	_, err := Load(Overrides{})
	require.Error(t, err)
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "1")

	addr := ":9999"
	debug := false
	cfg, err := Load(Overrides{Addr: &addr, Debug: &debug})
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.False(t, cfg.Debug)
}
