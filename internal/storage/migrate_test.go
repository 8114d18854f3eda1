package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationManagerUpCreatesTrialTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migration-test.db")

	mgr, err := NewMigrationManager(dbPath)
	require.NoError(t, err)
	require.NoError(t, mgr.Up())
	require.NoError(t, mgr.Close())

	mgr2, err := NewMigrationManager(dbPath)
	require.NoError(t, err)
	defer mgr2.Close()

	version, dirty, err := mgr2.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func TestMigrationManagerCreatesExpectedTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tables-test.db")

	config := DefaultConfig(dbPath)
	config.AutoMigrate = true
	db, err := Open(config)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"trials", "trial_turns"} {
		var name string
		err := db.Conn().QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		require.NoErrorf(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrationManagerDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migration-down-test.db")

	mgr, err := NewMigrationManager(dbPath)
	require.NoError(t, err)
	defer mgr.Close()
	require.NoError(t, mgr.Up())

	require.NoError(t, mgr.Steps(-1))

	version, dirty, err := mgr.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)
}

func TestMigrationManagerVersionOnFreshDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "version-test.db")

	mgr, err := NewMigrationManager(dbPath)
	require.NoError(t, err)
	defer mgr.Close()

	version, dirty, err := mgr.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(0), version)
}
