package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cs := NewConfigService()

	cfg := DefaultConfig()
	cfg.SidebarCollapsed = true
	cfg.LastSearch = SearchSlot{Query: "jae, ps", Category: "mold"}
	cfg.LastFacet = FacetSlot{FieldID: "status", Value: "IN"}

	require.NoError(t, cs.SaveToPath(cfg, path))

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)

	assert.True(t, loaded.SidebarCollapsed)
	assert.Equal(t, "jae, ps", loaded.LastSearch.Query)
	assert.Equal(t, "mold", loaded.LastSearch.Category)
	assert.Equal(t, "status", loaded.LastFacet.FieldID)
	assert.Equal(t, "IN", loaded.LastFacet.Value)
}

func TestDefaultsApplied(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 24, cfg.UISettings.CardPageSize)
	assert.Equal(t, 50, cfg.UISettings.TablePageSize)
	assert.Equal(t, "all", cfg.LastSearch.Category)
}

func TestOrphanedFacetValueCleared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("version = 1\n\n[last_facet]\nfield_id = \"\"\nvalue = \"stale\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cs := NewConfigService()
	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)

	assert.Empty(t, loaded.LastFacet.Value, "a facet value without a field is ignored")
}

func TestLoadFromMissingPathFails(t *testing.T) {
	cs := NewConfigService()
	_, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
