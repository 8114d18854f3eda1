package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "results-test.db")
	config := DefaultConfig(dbPath)
	config.AutoMigrate = true
	db, err := Open(config)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestResultsRepoSaveAndByDeck(t *testing.T) {
	db := openTestDB(t)
	repo := NewResultsRepo(db)
	ctx := context.Background()

	goalTurn := 2
	id, err := repo.Save(ctx, Trial{
		DeckName:  "amulet-titan",
		OnThePlay: true,
		MaxTurns:  5,
		GoalTurn:  &goalTurn,
		Trace:     "draw 7\nplay Forest",
		Turns: []TurnOutcome{
			{Turn: 1, Status: TurnNoGoal},
			{Turn: 2, Status: TurnGoal},
		},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	trials, err := repo.ByDeck(ctx, "amulet-titan")
	require.NoError(t, err)
	require.Len(t, trials, 1)
	assert.Equal(t, "amulet-titan", trials[0].DeckName)
	require.NotNil(t, trials[0].GoalTurn)
	assert.Equal(t, 2, *trials[0].GoalTurn)
	require.Len(t, trials[0].Turns, 2)
	assert.Equal(t, TurnGoal, trials[0].Turns[1].Status)
}

func TestResultsRepoByDeckEmptyWhenUnknown(t *testing.T) {
	db := openTestDB(t)
	repo := NewResultsRepo(db)

	trials, err := repo.ByDeck(context.Background(), "no-such-deck")
	require.NoError(t, err)
	assert.Empty(t, trials)
}

func TestResultsRepoRecordsOverflow(t *testing.T) {
	db := openTestDB(t)
	repo := NewResultsRepo(db)
	ctx := context.Background()

	overflowTurn := 3
	_, err := repo.Save(ctx, Trial{
		DeckName:     "pathological-deck",
		OnThePlay:    false,
		MaxTurns:     10,
		OverflowTurn: &overflowTurn,
		Turns: []TurnOutcome{
			{Turn: 1, Status: TurnNoGoal},
			{Turn: 2, Status: TurnNoGoal},
			{Turn: 3, Status: TurnOverflow},
		},
	})
	require.NoError(t, err)

	trials, err := repo.ByDeck(ctx, "pathological-deck")
	require.NoError(t, err)
	require.Len(t, trials, 1)
	require.NotNil(t, trials[0].OverflowTurn)
	assert.Equal(t, 3, *trials[0].OverflowTurn)
	assert.Equal(t, TurnOverflow, trials[0].Turns[2].Status)
}
