package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// TrialWriter is a function that persists a trial (and its per-turn
// outcomes) within a single transaction, e.g. ResultsRepo.Save's body.
type TrialWriter func(*sql.Tx) error

// WithTransaction runs fn inside a transaction, committing on success and
// rolling back on error or panic (the panic is re-raised after rollback).
// ResultsRepo.Save uses this so a trial's row and its trial_turns rows
// never land half-written.
func (db *DB) WithTransaction(ctx context.Context, fn TrialWriter) (err error) {
	tx, beginErr := db.conn.BeginTx(ctx, nil)
	if beginErr != nil {
		return fmt.Errorf("failed to begin transaction: %w", beginErr)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}
