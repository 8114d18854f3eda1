// Package transitions is the state-transformer library: the ~40 pure
// functions GameState -> StateSet (draw, play, cast, cycle, sacrifice,
// tap, pay, bounce, suspend, tick-down) plus the card-specific handlers
// dispatched by card identity, and the turn-advancement logic that drives
// next_states/pass_turn.
package transitions

import (
	"log/slog"

	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/cardset"
	"github.com/ramonehamilton/amulet-titan-search/internal/gamestate"
	"github.com/ramonehamilton/amulet-titan-search/internal/mana"
	"github.com/ramonehamilton/amulet-titan-search/internal/meter"
	"github.com/ramonehamilton/amulet-titan-search/internal/oracle"
)

// Engine binds the transition library to a card oracle. All transitions
// are methods on Engine so tests can swap in a fixture oracle.
type Engine struct {
	Oracle *oracle.Oracle
	Log    *slog.Logger
}

// New builds an Engine bound to o. A nil logger defaults to slog.Default().
func New(o *oracle.Oracle, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Oracle: o, Log: logger}
}

func singleton(s gamestate.GameState) gamestate.StateSet {
	return gamestate.NewStateSet(s)
}

// next constructs a derived state from s via opts, counting it against the
// global search meter — every GameState other than a trial's initial one
// is produced this way.
func (e *Engine) next(s gamestate.GameState, opts ...gamestate.Option) gamestate.GameState {
	meter.Increment()
	return s.Clone(opts...)
}

// Draw moves n cards from the top of the deck into hand.
func (e *Engine) Draw(s gamestate.GameState, n int) gamestate.StateSet {
	items := s.DeckList.Items()
	end := s.DeckIndex + n
	if end > len(items) {
		end = len(items)
	}
	drawn := cardset.Of(items[s.DeckIndex:end]...)
	next := e.next(s,
		gamestate.WithDeckIndex(end),
		gamestate.WithHand(s.Hand.AddAll(drawn)),
		gamestate.Note("draw %d", n),
	)
	return singleton(next)
}

// Mill advances the deck cursor by n without adding cards to hand.
func (e *Engine) Mill(s gamestate.GameState, n int) gamestate.StateSet {
	items := s.DeckList.Items()
	end := s.DeckIndex + n
	if end > len(items) {
		end = len(items)
	}
	next := e.next(s, gamestate.WithDeckIndex(end), gamestate.Note("mill %d", n))
	return singleton(next)
}

// Top peeks the next n cards without altering state.
func (e *Engine) Top(s gamestate.GameState, n int) []card.Card {
	items := s.DeckList.Items()
	end := s.DeckIndex + n
	if end > len(items) {
		end = len(items)
	}
	return items[s.DeckIndex:end]
}

// AddMana adds m to the state's mana pool.
func (e *Engine) AddMana(s gamestate.GameState, m mana.Mana) gamestate.StateSet {
	next := e.next(s, gamestate.WithManaPool(s.ManaPool.Add(m)))
	return singleton(next)
}

// Pay returns one state per legal residue of paying cost out of the
// state's mana pool; empty if unpayable.
func (e *Engine) Pay(s gamestate.GameState, cost mana.Mana, note string) gamestate.StateSet {
	residues := s.ManaPool.Subtract(cost)
	out := gamestate.StateSet{}
	for _, residue := range residues {
		next := e.next(s, gamestate.WithManaPool(residue), gamestate.Note("%s", note))
		out = out.Add(next)
	}
	return out
}

// Tap returns one state per mana option the given permanent taps for. A
// permanent with no taps_for options is returned unchanged (a singleton),
// matching the rule that tapping a non-mana permanent is a no-op.
func (e *Engine) Tap(s gamestate.GameState, c card.Card) gamestate.StateSet {
	options := e.Oracle.TapsFor(c.Name())
	if len(options) == 0 {
		return singleton(s)
	}
	out := gamestate.StateSet{}
	for _, m := range options {
		next := e.next(s, gamestate.WithManaPool(s.ManaPool.Add(m)), gamestate.Note("tap %s for %s", c.Name(), m))
		out = out.Add(next)
	}
	return out
}

// TapOut deterministically accumulates every possible final mana pool by
// combining each battlefield permanent's taps_for options, yielding one
// state per distinct achievable pool.
func (e *Engine) TapOut(s gamestate.GameState) gamestate.StateSet {
	pools := []mana.Mana{{}}
	for _, permanent := range s.Battlefield.Items() {
		options := e.Oracle.TapsFor(permanent.Name())
		if len(options) == 0 {
			continue
		}
		seen := map[string]mana.Mana{}
		for _, base := range pools {
			for _, opt := range options {
				combined := base.Add(opt)
				seen[combined.Key()] = combined
			}
		}
		pools = pools[:0]
		for _, p := range seen {
			pools = append(pools, p)
		}
	}
	out := gamestate.StateSet{}
	for _, p := range pools {
		next := e.next(s, gamestate.WithManaPool(s.ManaPool.Add(p)), gamestate.Note("tap out for %s", p))
		out = out.Add(next)
	}
	return out
}

// Play plays a land from hand. Requires a remaining land drop and the card
// in hand; decrements LandDrops, then routes to the tapped or untapped
// entry path and dispatches the optional play_<slug> handler.
func (e *Engine) Play(s gamestate.GameState, c card.Card) gamestate.StateSet {
	if !e.Oracle.IsLand(c.Name()) {
		panic(ErrMissingHandler) // programmer error: non-land passed to Play
	}
	if s.LandDrops <= 0 || !s.Hand.Contains(c.Name()) {
		return gamestate.StateSet{}
	}
	hand, _ := s.Hand.Remove(c)
	base := e.next(s,
		gamestate.WithHand(hand),
		gamestate.WithBattlefield(s.Battlefield.Add(c)),
		gamestate.WithLandDrops(s.LandDrops-1),
		gamestate.Note("play %s", c.Name()),
	)

	var entered gamestate.StateSet
	if e.entersTapped(base, c) {
		entered = e.playTapped(base, c)
	} else {
		entered = singleton(base)
	}
	return entered.Apply(func(gs gamestate.GameState) gamestate.StateSet {
		return e.dispatchOptional(playHandlers, c, gs)
	})
}

func (e *Engine) entersTapped(s gamestate.GameState, c card.Card) bool {
	switch e.Oracle.EntersTapped(c.Name()) {
	case oracle.EntersAlwaysTapped:
		return true
	case oracle.EntersCheck:
		check, ok := checkHandlers[c.Slug()]
		if !ok {
			return false
		}
		return check(s, e.Oracle)
	default:
		return false
	}
}

// playTapped grants one extra Tap of the entering land per copy of Amulet
// of Vigor on the battlefield — Amulet's immediate-untap effect translated
// into extra taps this turn rather than modeling tap/untap status.
func (e *Engine) playTapped(s gamestate.GameState, landPlayed card.Card) gamestate.StateSet {
	amulets := s.Battlefield.Count("Amulet of Vigor")
	out := singleton(s)
	for i := 0; i < amulets; i++ {
		out = out.Apply(func(gs gamestate.GameState) gamestate.StateSet {
			return e.Tap(gs, landPlayed)
		})
	}
	return out
}

// Cast casts a spell from hand: requires it in hand and enough mana,
// removes it from hand, pays its cost (branching over every residue), and
// dispatches the mandatory cast_<slug> handler.
func (e *Engine) Cast(s gamestate.GameState, c card.Card) gamestate.StateSet {
	cost := e.Oracle.Cost(c.Name())
	if !s.Hand.Contains(c.Name()) || !s.ManaPool.GreaterEqual(cost) {
		return gamestate.StateSet{}
	}
	hand, _ := s.Hand.Remove(c)
	base := e.next(s,
		gamestate.WithHand(hand),
		gamestate.WithSpellsCast(s.SpellsCast+1),
		gamestate.Note("cast %s", c.Name()),
	)
	paid := e.Pay(base, cost, "pay for "+c.Name())
	return paid.Apply(func(gs gamestate.GameState) gamestate.StateSet {
		return e.dispatchMandatory(castHandlers, c, gs)
	})
}

// Cycle discards a card for its cycling cost and dispatches the optional
// cycle_<slug> handler.
func (e *Engine) Cycle(s gamestate.GameState, c card.Card) gamestate.StateSet {
	cost, ok := e.Oracle.CycleCost(c.Name())
	if !ok || !s.Hand.Contains(c.Name()) || !s.ManaPool.GreaterEqual(cost) {
		return gamestate.StateSet{}
	}
	hand, _ := s.Hand.Remove(c)
	verb := e.Oracle.CycleVerb(c.Name())
	base := e.next(s,
		gamestate.WithHand(hand),
		gamestate.Note("%s %s", verb, c.Name()),
	)
	paid := e.Pay(base, cost, verb+" "+c.Name())
	return paid.Apply(func(gs gamestate.GameState) gamestate.StateSet {
		return e.dispatchOptional(cycleHandlers, c, gs)
	})
}

// Sacrifice sacrifices a permanent from the battlefield and dispatches the
// mandatory sacrifice_<slug> handler.
func (e *Engine) Sacrifice(s gamestate.GameState, c card.Card) gamestate.StateSet {
	if !s.Battlefield.Contains(c.Name()) {
		return gamestate.StateSet{}
	}
	bf, _ := s.Battlefield.Remove(c)
	base := e.next(s, gamestate.WithBattlefield(bf), gamestate.Note("sacrifice %s", c.Name()))
	return e.dispatchMandatory(sacrificeHandlers, c, base)
}

// CastFromSuspend resolves a suspended card: no cost is paid, SpellsCast
// is incremented, and the mandatory cast_<slug> handler runs.
func (e *Engine) CastFromSuspend(s gamestate.GameState, c card.Card) gamestate.StateSet {
	base := e.next(s, gamestate.WithSpellsCast(s.SpellsCast+1), gamestate.Note("cast %s from suspend", c.Name()))
	return e.dispatchMandatory(castHandlers, c, base)
}

// Pitch returns one state per n-combination of options, each with that
// combination removed from hand.
func (e *Engine) Pitch(s gamestate.GameState, n int, options cardset.Cards) gamestate.StateSet {
	out := gamestate.StateSet{}
	for _, combo := range options.Combinations(n) {
		hand, ok := s.Hand.RemoveAll(combo)
		if !ok {
			continue
		}
		next := e.next(s, gamestate.WithHand(hand), gamestate.Note("pitch %s", combo.Canonical()))
		out = out.Add(next)
	}
	return out
}

// BounceLand returns one state per land on the battlefield, that land
// returned to hand.
func (e *Engine) BounceLand(s gamestate.GameState) gamestate.StateSet {
	out := gamestate.StateSet{}
	for _, land := range s.Battlefield.Lands(e.Oracle, false).Items() {
		bf, _ := s.Battlefield.Remove(land)
		next := e.next(s,
			gamestate.WithBattlefield(bf),
			gamestate.WithHand(s.Hand.Add(land)),
			gamestate.Note("bounce %s", land.Name()),
		)
		out = out.Add(next)
	}
	return out
}

// Scry with n == 1 returns two states: mill the top card, or leave it. Scrying more
// than one card is explicitly unsupported (spec section 7).
func (e *Engine) Scry(s gamestate.GameState, n int) gamestate.StateSet {
	if n != 1 {
		panic(ErrUnsupported)
	}
	out := singleton(s)
	return out.Union(e.Mill(s, 1))
}

// Grab moves the first remaining copy of name from the deck into hand, by
// identity rather than position — decks are multisets, so which physical
// copy is fetched is not tracked beyond its name.
func (e *Engine) Grab(s gamestate.GameState, name string) gamestate.StateSet {
	items := s.DeckList.Items()
	for i := s.DeckIndex; i < len(items); i++ {
		if items[i].Name() != name {
			continue
		}
		remaining := append([]card.Card(nil), items[:i]...)
		remaining = append(remaining, items[i+1:]...)
		next := e.next(s,
			gamestate.WithHand(s.Hand.Add(items[i])),
		)
		next.DeckList = cardset.Of(remaining...)
		return singleton(next)
	}
	return gamestate.StateSet{}
}

// Grabs is the union of Grab over every distinct name in cards.
func (e *Engine) Grabs(s gamestate.GameState, cards cardset.Cards) gamestate.StateSet {
	out := gamestate.StateSet{}
	for _, name := range cards.Names() {
		out = out.Union(e.Grab(s, name))
	}
	return out
}
