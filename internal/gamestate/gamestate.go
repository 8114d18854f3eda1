// Package gamestate implements the immutable GameState value and its
// canonical, narrative-insensitive equality — the algebra the search
// engine explores.
package gamestate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/cardset"
	"github.com/ramonehamilton/amulet-titan-search/internal/mana"
)

// Suspended is a card waiting on a counter to tick down to zero before it
// resolves via cast-from-suspend.
type Suspended struct {
	Card    card.Card
	Counter int
}

// GameState is an immutable snapshot of a single frozen point in a game.
// Every field but Notes and DeckList participates in canonical equality.
type GameState struct {
	DeckList  cardset.Cards
	DeckIndex int

	Hand       cardset.Cards
	Battlefield cardset.Cards

	ManaPool mana.Mana
	ManaDebt mana.Mana

	Suspended []Suspended

	Turn       int
	LandDrops  int
	SpellsCast int

	OnThePlay  bool
	Done       bool
	Overflowed bool

	Notes string
}

// New constructs the initial GameState for a search: turn 0, a full land
// drop, and the shuffled deck loaded as DeckList.
func New(deck cardset.Cards, onThePlay bool) GameState {
	return GameState{
		DeckList:  deck,
		DeckIndex: 0,
		Hand:      cardset.Cards{},
		Battlefield: cardset.Cards{},
		OnThePlay:  onThePlay,
		LandDrops:  1,
		Notes:      "",
	}
}

// Option mutates a clone of a GameState; see Clone.
type Option func(*GameState)

// Clone returns a copy of s with every opt applied in order. GameStates are
// never mutated in place; this is the only way (besides New) to produce a
// new one.
func (s GameState) Clone(opts ...Option) GameState {
	next := s
	next.Suspended = append([]Suspended(nil), s.Suspended...)
	for _, opt := range opts {
		opt(&next)
	}
	return next
}

func WithDeckIndex(i int) Option     { return func(s *GameState) { s.DeckIndex = i } }
func WithHand(h cardset.Cards) Option { return func(s *GameState) { s.Hand = h } }
func WithBattlefield(b cardset.Cards) Option {
	return func(s *GameState) { s.Battlefield = b }
}
func WithManaPool(m mana.Mana) Option { return func(s *GameState) { s.ManaPool = m } }
func WithManaDebt(m mana.Mana) Option { return func(s *GameState) { s.ManaDebt = m } }
func WithSuspended(susp []Suspended) Option {
	return func(s *GameState) { s.Suspended = append([]Suspended(nil), susp...) }
}
func WithTurn(t int) Option       { return func(s *GameState) { s.Turn = t } }
func WithLandDrops(n int) Option  { return func(s *GameState) { s.LandDrops = n } }
func WithSpellsCast(n int) Option { return func(s *GameState) { s.SpellsCast = n } }
func WithDone(done bool) Option   { return func(s *GameState) { s.Done = done } }
func WithOverflowed(v bool) Option {
	return func(s *GameState) { s.Overflowed = v }
}

// Note appends a narrative line; it never affects canonical equality.
func Note(format string, args ...any) Option {
	return func(s *GameState) {
		line := fmt.Sprintf(format, args...)
		if s.Notes == "" {
			s.Notes = line
			return
		}
		s.Notes = s.Notes + "\n" + line
	}
}

// Terminal reports whether s is a stopping point: no further transitions
// are generated from a terminal state.
func (s GameState) Terminal() bool {
	return s.Done || s.Overflowed
}

// canonicalSuspended renders Suspended in the canonical order required for
// hashing: by card name, then by counter.
func (s GameState) canonicalSuspended() string {
	susp := append([]Suspended(nil), s.Suspended...)
	sort.Slice(susp, func(i, j int) bool {
		if susp[i].Card.Name() != susp[j].Card.Name() {
			return susp[i].Card.Name() < susp[j].Card.Name()
		}
		return susp[i].Counter < susp[j].Counter
	})
	var b strings.Builder
	for _, e := range susp {
		fmt.Fprintf(&b, "%s:%d,", e.Card.Name(), e.Counter)
	}
	return b.String()
}

// CanonicalKey returns a string that is equal for any two states whose
// fields — other than Notes and DeckList — are equal. It is the hash/equal
// key used by StateSet to collapse duplicate positions.
func (s GameState) CanonicalKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "idx=%d;turn=%d;drops=%d;cast=%d;play=%t;done=%t;over=%t;",
		s.DeckIndex, s.Turn, s.LandDrops, s.SpellsCast, s.OnThePlay, s.Done, s.Overflowed)
	fmt.Fprintf(&b, "pool=%s;debt=%s;", s.ManaPool.Key(), s.ManaDebt.Key())
	fmt.Fprintf(&b, "hand=%s;bf=%s;susp=%s;", s.Hand.Canonical(), s.Battlefield.Canonical(), s.canonicalSuspended())
	return b.String()
}

// Equal reports canonical equality: every field but Notes and DeckList.
func (s GameState) Equal(other GameState) bool {
	return s.CanonicalKey() == other.CanonicalKey()
}

// TraceLength returns the number of narrative lines recorded, used by the
// overflow path to pick the "longest-trace" state for diagnostics.
func (s GameState) TraceLength() int {
	if s.Notes == "" {
		return 0
	}
	return strings.Count(s.Notes, "\n") + 1
}
