// Package meter implements the global search meter: a process-wide
// state-count and wall-clock budget, checked by the turn driver between
// successor yields. It is the search engine's only shared mutable state;
// because the engine itself is single-threaded the counter needs no
// locking, but it is kept atomic so a future worker-pool driver can share
// it safely.
package meter

import (
	"sync/atomic"
	"time"
)

var (
	nStates   int64
	startTime atomic.Value // time.Time
)

func init() {
	startTime.Store(time.Now())
}

// Reset zeros the state counter and snapshots the wall clock. Called once
// per trial by the search manager with reset_clock semantics.
func Reset() {
	atomic.StoreInt64(&nStates, 0)
	startTime.Store(time.Now())
}

// Increment is called on every GameState construction other than the
// trial's initial state.
func Increment() int64 {
	return atomic.AddInt64(&nStates, 1)
}

// States returns the current process-wide state count.
func States() int64 {
	return atomic.LoadInt64(&nStates)
}

// Elapsed returns the wall-clock time since the last Reset.
func Elapsed() time.Duration {
	return time.Since(startTime.Load().(time.Time))
}

// Budget bounds the search: a state-count cap and a wall-clock cap. Either
// set to zero disables that check.
type Budget struct {
	MaxStates int64
	MaxWall   time.Duration
}

// DefaultBudget matches the spec's default state-count cap of 2*10^5, with
// a generous wall-clock backstop.
func DefaultBudget() Budget {
	return Budget{MaxStates: 200_000, MaxWall: 30 * time.Second}
}

// Exceeded reports whether the current state count or elapsed time has
// crossed b's caps.
func (b Budget) Exceeded() bool {
	if b.MaxStates > 0 && States() > b.MaxStates {
		return true
	}
	if b.MaxWall > 0 && Elapsed() > b.MaxWall {
		return true
	}
	return false
}
