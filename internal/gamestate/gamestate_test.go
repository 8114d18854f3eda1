package gamestate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ramonehamilton/amulet-titan-search/internal/cardset"
	"github.com/ramonehamilton/amulet-titan-search/internal/mana"
)

func TestCloneWithNoOverridesIsEqual(t *testing.T) {
	s := New(cardset.OfNames("Forest"), true)
	clone := s.Clone()
	assert.True(t, s.Equal(clone))
	assert.Equal(t, s.CanonicalKey(), clone.CanonicalKey())
}

func TestNoteDoesNotAffectCanonicalKey(t *testing.T) {
	s := New(cardset.OfNames("Forest"), true)
	noted := s.Clone(Note("drew a card"))
	assert.True(t, s.Equal(noted))
}

func TestDeckListExcludedFromEquality(t *testing.T) {
	a := New(cardset.OfNames("Forest", "Island"), true)
	b := New(cardset.OfNames("Forest", "Mountain"), true)
	assert.True(t, a.Equal(b))
}

func TestHandDifferenceBreaksEquality(t *testing.T) {
	a := New(cardset.Cards{}, true).Clone(WithHand(cardset.OfNames("Forest")))
	b := New(cardset.Cards{}, true).Clone(WithHand(cardset.OfNames("Island")))
	assert.False(t, a.Equal(b))
}

func TestOverrideFieldsApplyIndependently(t *testing.T) {
	s := New(cardset.Cards{}, true)
	next := s.Clone(WithTurn(2), WithManaPool(mana.Mana{G: 3}), WithSpellsCast(1))
	assert.Equal(t, 2, next.Turn)
	assert.Equal(t, 3, next.ManaPool.G)
	assert.Equal(t, 1, next.SpellsCast)
	assert.Equal(t, 0, s.Turn)
}

func TestTerminalStatesAreDoneOrOverflowed(t *testing.T) {
	s := New(cardset.Cards{}, true)
	assert.False(t, s.Terminal())
	assert.True(t, s.Clone(WithDone(true)).Terminal())
	assert.True(t, s.Clone(WithOverflowed(true)).Terminal())
}

func TestStateSetCollapsesDuplicates(t *testing.T) {
	a := New(cardset.OfNames("Forest"), true).Clone(Note("path A"))
	b := New(cardset.OfNames("Island"), true).Clone(Note("path B"))
	ss := NewStateSet(a, b)
	assert.Equal(t, 1, ss.Len())
}
