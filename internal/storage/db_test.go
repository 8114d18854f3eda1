package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "trials.db")

	db, err := Open(DefaultConfig(dbPath))
	require.NoError(t, err)
	defer db.Close()

	assert.DirExists(t, filepath.Dir(dbPath))
	assert.NoError(t, db.Ping())
}

func TestOpenRejectsNilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestOpenInMemoryDatabaseSkipsDirectoryCreation(t *testing.T) {
	db, err := Open(DefaultConfig(":memory:"))
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
}

func TestOpenWithAutoMigrateAppliesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "auto-migrate.db")
	cfg := DefaultConfig(dbPath)
	cfg.AutoMigrate = true

	db, err := Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	repo := NewResultsRepo(db)
	turn := 1
	_, err = repo.Save(t.Context(), Trial{
		DeckName: "test-deck",
		GoalTurn: &turn,
	})
	assert.NoError(t, err)
}
