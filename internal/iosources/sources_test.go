package iosources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worldable/worlddb/internal/iofs"
	"github.com/worldable/worlddb/pkg/component"
)

func writeSources(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadDefaultSources verifies the embedded default sources.yaml
// parses and validates.
func TestLoadDefaultSources(t *testing.T) {
	path := writeSources(t, iofs.SourcesYAML)

	cfg, err := loadSourcesConfig(path)
	require.NoError(t, err)

	for _, comp := range []string{
		"countries", "states", "cities", "languages", "currencies",
	} {
		_, ok := cfg.ForComponent(component.Component(comp))
		assert.True(t, ok, "default sources should cover %s", comp)
	}

	src, _ := cfg.ForComponent("cities")
	assert.True(t, src.IsGzip())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loadSourcesConfig("nonexistent.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeSources(t, "data_sources: [unclosed")
	_, err := loadSourcesConfig(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownComponent(t *testing.T) {
	path := writeSources(t, `
data_sources:
  - component: planets
    url: https://example.org/planets.json
`)
	_, err := loadSourcesConfig(path)
	assert.Error(t, err)
}
