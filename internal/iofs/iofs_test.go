package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	configDir := filepath.Join(tmpDir, ".config", "worlddb")
	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Config directory should exist")

	cacheDir := filepath.Join(tmpDir, ".cache", "worlddb")
	info, err = os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Cache directory should exist")

	logDir := filepath.Join(tmpDir, ".local", "share", "worlddb",
		"logs")
	info, err = os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Log directory should exist")
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureDirs(tmpDir))
}

// TestEnsureConfigFile_CreatesFile verifies the embedded default is
// written on first run and an existing file is left alone.
func TestEnsureConfigFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "worlddb",
		"config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	// a user-edited file survives
	custom := []byte("database:\n  host: db.example.org\n")
	require.NoError(t, os.WriteFile(configPath, custom, 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))

	content, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, custom, content)
}

// TestEnsureSourcesFile_CreatesFile verifies sources.yaml handling.
func TestEnsureSourcesFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureSourcesFile(tmpDir))

	sourcesPath := filepath.Join(tmpDir, ".config", "worlddb",
		"sources.yaml")
	content, err := os.ReadFile(sourcesPath)
	require.NoError(t, err)
	assert.Equal(t, SourcesYAML, string(content))
	assert.Contains(t, string(content), "data_sources:")
}
