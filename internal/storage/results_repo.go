package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TurnStatus is a single turn's outcome within a trial's result record,
// matching the three-valued {true, false, null} scheme of the result
// record described in the external-interfaces contract: goal reached,
// frontier survived without the goal, or the search overflowed.
type TurnStatus string

const (
	TurnGoal     TurnStatus = "goal"
	TurnNoGoal   TurnStatus = "no_goal"
	TurnOverflow TurnStatus = "overflow"
)

// TurnOutcome records one turn's entry in a trial's per-turn result map.
type TurnOutcome struct {
	Turn   int
	Status TurnStatus
}

// Trial is a single simulate() run: the deck and opening flags it was run
// with, the per-turn outcomes, and (if the goal was reached or the search
// overflowed) the winning or diagnostic trace.
type Trial struct {
	ID           int64
	DeckName     string
	OnThePlay    bool
	MaxTurns     int
	GoalTurn     *int
	OverflowTurn *int
	Trace        string
	Turns        []TurnOutcome
	CreatedAt    time.Time
}

// ResultsRepo persists trial results for later reporting.
type ResultsRepo struct {
	db *DB
}

// NewResultsRepo binds a ResultsRepo to an open database.
func NewResultsRepo(db *DB) *ResultsRepo {
	return &ResultsRepo{db: db}
}

// Save inserts a trial and its per-turn outcomes, returning the assigned ID.
func (r *ResultsRepo) Save(ctx context.Context, t Trial) (int64, error) {
	var id int64
	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO trials (deck_name, on_the_play, max_turns, goal_turn, overflow_turn, trace)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			t.DeckName, t.OnThePlay, t.MaxTurns, t.GoalTurn, t.OverflowTurn, t.Trace,
		)
		if err != nil {
			return fmt.Errorf("insert trial: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read trial id: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO trial_turns (trial_id, turn, status) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare turn insert: %w", err)
		}
		defer stmt.Close()
		for _, turn := range t.Turns {
			if _, err := stmt.ExecContext(ctx, id, turn.Turn, string(turn.Status)); err != nil {
				return fmt.Errorf("insert turn %d: %w", turn.Turn, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ByDeck returns every trial recorded for deckName, most recent first.
func (r *ResultsRepo) ByDeck(ctx context.Context, deckName string) ([]Trial, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, deck_name, on_the_play, max_turns, goal_turn, overflow_turn, trace, created_at
		 FROM trials WHERE deck_name = ? ORDER BY created_at DESC`, deckName)
	if err != nil {
		return nil, fmt.Errorf("query trials: %w", err)
	}
	defer rows.Close()

	var trials []Trial
	for rows.Next() {
		var t Trial
		if err := rows.Scan(&t.ID, &t.DeckName, &t.OnThePlay, &t.MaxTurns, &t.GoalTurn, &t.OverflowTurn, &t.Trace, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		trials = append(trials, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trials: %w", err)
	}
	for i := range trials {
		turns, err := r.turns(ctx, trials[i].ID)
		if err != nil {
			return nil, err
		}
		trials[i].Turns = turns
	}
	return trials, nil
}

func (r *ResultsRepo) turns(ctx context.Context, trialID int64) ([]TurnOutcome, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT turn, status FROM trial_turns WHERE trial_id = ? ORDER BY turn`, trialID)
	if err != nil {
		return nil, fmt.Errorf("query turns for trial %d: %w", trialID, err)
	}
	defer rows.Close()

	var out []TurnOutcome
	for rows.Next() {
		var turn TurnOutcome
		var status string
		if err := rows.Scan(&turn.Turn, &status); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turn.Status = TurnStatus(status)
		out = append(out, turn)
	}
	return out, rows.Err()
}
