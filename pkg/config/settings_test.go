package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsFromDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WHITELIST_DIR", dir)
	t.Setenv("WHITELIST_DB_PATH", "")
	t.Setenv("WHITELIST_LOG_FILE", "")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, s.Dir)
	assert.Equal(t, filepath.Join(dir, "whitelist.db"), s.DBPath)
	assert.Equal(t, filepath.Join(dir, "whitelist.log"), s.LogFile)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "127.0.0.1:8080", s.Listen)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WHITELIST_DIR", dir)
	t.Setenv("WHITELIST_DB_PATH", filepath.Join(dir, "other.db"))
	t.Setenv("WHITELIST_LOG_LEVEL", "error")
	t.Setenv("WHITELIST_LISTEN", ":9999")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "other.db"), s.DBPath)
	assert.Equal(t, "error", s.LogLevel)
	assert.Equal(t, ":9999", s.Listen)
}

func TestExpandHomeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandHomeDir("~/.whitelist")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".whitelist"), got)

	got, err = expandHomeDir("/var/lib/whitelist")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/whitelist", got)
}
