package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/cardset"
	"github.com/ramonehamilton/amulet-titan-search/internal/gamestate"
	"github.com/ramonehamilton/amulet-titan-search/internal/meter"
	"github.com/ramonehamilton/amulet-titan-search/internal/oracle"
	"github.com/ramonehamilton/amulet-titan-search/internal/transitions"
)

func testEngine(t *testing.T) *transitions.Engine {
	t.Helper()
	o, err := oracle.Default()
	require.NoError(t, err)
	return transitions.New(o, nil)
}

func TestNextTurnAdvancesAnEmptyBoardPastTurnZero(t *testing.T) {
	e := testEngine(t)
	meter.Reset()
	s := gamestate.New(cardset.OfNames("Forest", "Forest"), true)
	frontier := gamestate.NewStateSet(s)

	next, err := NextTurn(e, frontier, 1, meter.DefaultBudget())
	require.NoError(t, err)

	got, ok := next.Any()
	require.True(t, ok)
	assert.Equal(t, 1, got.Turn)
}

func TestNextTurnShortCircuitsOnDoneSuccessor(t *testing.T) {
	e := testEngine(t)
	meter.Reset()
	s := gamestate.New(cardset.Cards{}, true).Clone(
		gamestate.WithHand(cardset.OfNames("Primeval Titan (debug)")),
	)
	frontier := gamestate.NewStateSet(s)

	next, err := NextTurn(e, frontier, 0, meter.DefaultBudget())
	require.NoError(t, err)

	got, ok := next.Any()
	require.True(t, ok)
	assert.True(t, got.Done)
}

func TestNextTurnReportsOverflowAgainstATinyBudget(t *testing.T) {
	e := testEngine(t)
	meter.Reset()
	s := gamestate.New(cardset.OfNames("Forest"), true)
	frontier := gamestate.NewStateSet(s)

	tiny := meter.Budget{MaxStates: 0, MaxWall: 0}
	// A zero budget disables both checks per meter.Budget.Exceeded, so force
	// an immediate trip with a one-state cap instead.
	tiny.MaxStates = 1
	meter.Increment()
	meter.Increment()

	_, err := NextTurn(e, frontier, 5, tiny)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSimulateReachesGoalImmediatelyWithADebugTitanInOpeningHand(t *testing.T) {
	e := testEngine(t)
	deck := cardset.Of(deckOf(card.New("Primeval Titan (debug)"), 7)...)
	deck = deck.AddAll(cardset.Of(deckOf(card.New("Forest"), 53)...))

	trial := Simulate(e, deck, 3, meter.DefaultBudget(), rand.New(rand.NewSource(1)), nil)

	require.NotNil(t, trial.GoalTurn)
	assert.Equal(t, 1, *trial.GoalTurn)
	require.NotEmpty(t, trial.Turns)
	assert.Equal(t, TurnGoal, trial.Turns[len(trial.Turns)-1].Status)
	assert.NotEmpty(t, trial.Trace)
}

func TestSimulateRecordsNoGoalForALandOnlyDeck(t *testing.T) {
	e := testEngine(t)
	deck := cardset.Of(deckOf(card.New("Forest"), 60)...)

	trial := Simulate(e, deck, 2, meter.DefaultBudget(), rand.New(rand.NewSource(1)), nil)

	require.Nil(t, trial.GoalTurn)
	require.Nil(t, trial.OverflowTurn)
	require.Len(t, trial.Turns, 2)
	for _, outcome := range trial.Turns {
		assert.Equal(t, TurnNoGoal, outcome.Status)
	}
}

func deckOf(c card.Card, n int) []card.Card {
	out := make([]card.Card, n)
	for i := range out {
		out[i] = c
	}
	return out
}
