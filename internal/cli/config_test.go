package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamadatarousan/ticket-manager/internal/authgate"
)

func TestMorphServer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"example.com:8080", "https://example.com:8080"},
		{"http://localhost:3000", "http://localhost:3000"},
		{"https://tickets.example.com/", "https://tickets.example.com"},
		{"example.com///", "https://example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MorphServer(tt.in))
	}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("TICKETCTL_SERVER_URL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{
		Version:       "0.1.0",
		ServerURL:     "https://tickets.example.com",
		DefaultScreen: "projects",
	}
	require.NoError(t, cfg.WriteConfig(path))

	require.NoError(t, LoadConfig(path))
	loaded := GetConfig()
	require.NotNil(t, loaded)
	assert.Equal(t, "https://tickets.example.com", loaded.ServerURL)
	assert.Equal(t, "projects", loaded.DefaultScreen)
}

func TestConfigFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{Version: "0.1.0", ServerURL: "https://example.com"}
	require.NoError(t, cfg.WriteConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigEnvOnly(t *testing.T) {
	t.Setenv("TICKETCTL_SERVER_URL", "env.example.com:9090")

	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "https://env.example.com:9090", GetConfig().ServerURL)
}

func TestLoadConfigMissingServer(t *testing.T) {
	t.Setenv("TICKETCTL_SERVER_URL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{Version: "0.1.0"}
	require.NoError(t, cfg.WriteConfig(path))

	assert.Error(t, LoadConfig(path))
}

func TestDefaultRouteFallback(t *testing.T) {
	cfg := &Config{DefaultScreen: "no-such-screen"}
	assert.Equal(t, authgate.DefaultRoute, cfg.DefaultRoute())

	cfg.DefaultScreen = "projects"
	assert.Equal(t, "projects", cfg.DefaultRoute())

	cfg.DefaultScreen = ""
	assert.Equal(t, authgate.DefaultRoute, cfg.DefaultRoute())
}
