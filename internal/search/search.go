// Package search implements the turn driver and search manager: the layer
// that drives internal/transitions' per-state NextStates oracle forward a
// full turn at a time and records a trial's goal-turn result.
package search

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/ramonehamilton/amulet-titan-search/internal/cardset"
	"github.com/ramonehamilton/amulet-titan-search/internal/gamestate"
	"github.com/ramonehamilton/amulet-titan-search/internal/meter"
	"github.com/ramonehamilton/amulet-titan-search/internal/transitions"
)

// ErrOverflow is returned by NextTurn when the global search meter's
// budget is exceeded mid-expansion.
var ErrOverflow = errors.New("search: global search meter budget exceeded")

// NextTurn advances every member of frontier until each successor either
// reaches a turn beyond its own starting turn or is terminal (done or
// overflowed). maxTurns is forwarded to NextStates so pass_turn is pruned
// once the frontier reaches the caller's turn cap.
//
// As soon as any successor is done or overflowed, that single state is
// returned immediately — the rest of the frontier's expansion is
// abandoned, since the search manager only needs to know the turn's goal
// status.
func NextTurn(e *transitions.Engine, frontier gamestate.StateSet, maxTurns int, budget meter.Budget) (gamestate.StateSet, error) {
	result := gamestate.StateSet{}
	work := append([]gamestate.GameState(nil), frontier.Slice()...)

	for len(work) > 0 {
		s := work[0]
		work = work[1:]
		startTurn := s.Turn

		for _, succ := range e.NextStates(s, maxTurns).Slice() {
			if succ.Done || succ.Overflowed {
				return gamestate.NewStateSet(succ), nil
			}
			if succ.Turn > startTurn {
				result = result.Add(succ)
			} else {
				work = append(work, succ)
			}

			if budget.Exceeded() {
				pending := append([]gamestate.GameState(nil), work...)
				longest, ok := result.Union(gamestate.NewStateSet(pending...)).Longest()
				if !ok {
					longest = succ
				}
				overflowed := longest.Clone(gamestate.WithOverflowed(true))
				return gamestate.NewStateSet(overflowed), ErrOverflow
			}
		}
	}
	return result, nil
}

// TurnStatus is the per-turn outcome recorded in a Trial: whether the
// frontier reached the goal, survived without reaching it, or overflowed.
type TurnStatus int

const (
	TurnNoGoal TurnStatus = iota
	TurnGoal
	TurnOverflow
)

func (s TurnStatus) String() string {
	switch s {
	case TurnGoal:
		return "goal"
	case TurnOverflow:
		return "overflow"
	default:
		return "no_goal"
	}
}

// TurnOutcome records one turn's status within a Trial.
type TurnOutcome struct {
	Turn   int
	Status TurnStatus
}

// Trial is the result of one simulate run: the on-the-play coin flip, the
// per-turn record, and (on success or overflow) the winning or diagnostic
// trace.
type Trial struct {
	OnThePlay    bool
	MaxTurns     int
	Turns        []TurnOutcome
	GoalTurn     *int
	OverflowTurn *int
	Trace        string
	Initial      gamestate.GameState
	Goal         gamestate.GameState
}

// Manager binds an Engine and a meter budget for repeated Simulate calls,
// e.g. when a caller runs many trials against the same deck and oracle.
type Manager struct {
	Engine *transitions.Engine
	Budget meter.Budget
}

// NewManager builds a Manager bound to e with the given budget.
func NewManager(e *transitions.Engine, budget meter.Budget) *Manager {
	return &Manager{Engine: e, Budget: budget}
}

// Simulate runs one trial against deck, delegating to the package-level
// Simulate with the Manager's bound Engine and Budget.
func (m *Manager) Simulate(deck cardset.Cards, maxTurns int, rnd *rand.Rand, logger *slog.Logger) Trial {
	return Simulate(m.Engine, deck, maxTurns, m.Budget, rnd, logger)
}

// Peek returns the longest-trace member of frontier: a debug helper for
// inspecting the furthest-progressed branch without waiting for a trial to
// finish, and the same rule the overflow path uses to pick its diagnostic
// state.
func (m *Manager) Peek(frontier gamestate.StateSet) (gamestate.GameState, bool) {
	return frontier.Longest()
}

// Simulate runs a single trial: chooses on-the-play/on-the-draw at random,
// resets the global search meter, draws an opening hand of 7, then steps
// the frontier forward one turn at a time up to maxTurns via NextTurn,
// recording a TurnOutcome for each turn.
func Simulate(e *transitions.Engine, deck cardset.Cards, maxTurns int, budget meter.Budget, rnd *rand.Rand, logger *slog.Logger) Trial {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}

	onThePlay := rnd.Intn(2) == 0
	meter.Reset()

	initial := gamestate.New(deck, onThePlay)
	opening, _ := e.Draw(initial, 7).Any()

	trial := Trial{OnThePlay: onThePlay, MaxTurns: maxTurns, Initial: opening}

	// NextStates is only ever defined for turn >= 1: resolve the pre-game
	// transition (Gemstone Caverns, tapping out, the on-the-draw extra
	// draw) directly through PassTurn before entering the turn loop, so
	// the opening hand never gets to play a land or cast a spell before
	// its first real turn begins.
	frontier := e.PassTurn(opening)

	for t := 1; t <= maxTurns; t++ {
		next, err := NextTurn(e, frontier, t+1, budget)
		if errors.Is(err, ErrOverflow) {
			overflowTurn := t
			trial.OverflowTurn = &overflowTurn
			trial.Turns = append(trial.Turns, TurnOutcome{Turn: t, Status: TurnOverflow})
			if diag, ok := next.Any(); ok {
				trial.Trace = diag.Notes
			}
			logger.Warn("search overflowed", "turn", t, "states", meter.States())
			return trial
		}
		frontier = next

		if goal, ok := frontier.Done(); ok {
			goalTurn := t
			trial.GoalTurn = &goalTurn
			trial.Goal = goal
			trial.Trace = goal.Notes
			trial.Turns = append(trial.Turns, TurnOutcome{Turn: t, Status: TurnGoal})
			logger.Info("goal reached", "turn", t, "states", meter.States())
			return trial
		}

		trial.Turns = append(trial.Turns, TurnOutcome{Turn: t, Status: TurnNoGoal})
		logger.Debug("turn survived without goal", "turn", t, "frontier", frontier.Len())
	}

	logger.Info("no solution found within turn budget", "max_turns", maxTurns)
	return trial
}
