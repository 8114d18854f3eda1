package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	c := DefaultConfig()
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsBadWallDuration(t *testing.T) {
	c := DefaultConfig()
	c.Search.MaxWall = "not-a-duration"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsNonPositiveMaxTurns(t *testing.T) {
	c := DefaultConfig()
	c.Search.DefaultMaxTurns = 0
	assert.Error(t, c.Validate())
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	c := DefaultConfig()
	c.Log.Level = "verbose"
	assert.Error(t, c.Validate())
}

func TestLoadReturnsDefaultWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c := DefaultConfig()
	c.Search.DefaultMaxTurns = 9
	c.Log.JSON = true
	require.NoError(t, c.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Search.DefaultMaxTurns)
	assert.True(t, loaded.Log.JSON)
}

func TestDefaultDBPathUnderConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".amulet-search", "results.db"), path)
	assert.DirExists(t, filepath.Dir(path))
}

func TestMaxWallDuration(t *testing.T) {
	c := DefaultConfig()
	d, err := c.MaxWallDuration()
	require.NoError(t, err)
	assert.Equal(t, "30s", d.String())
}
