package transitions

import (
	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/cardset"
	"github.com/ramonehamilton/amulet-titan-search/internal/gamestate"
	"github.com/ramonehamilton/amulet-titan-search/internal/mana"
)

// NextStates is the per-state branching oracle driving the turn driver: the
// union of every legal transition out of s, or s itself if terminal.
func (e *Engine) NextStates(s gamestate.GameState, maxTurns int) gamestate.StateSet {
	if s.Terminal() {
		return singleton(s)
	}

	// Priority rule: while no spell has been cast yet this game, a Once
	// Upon a Time in hand dominates every other action available, on any
	// turn. Cycling it for free is strictly better
	// than any alternative this state could otherwise branch into, so
	// next_states returns only that branch; the resulting state is
	// re-entered through next_states on its own next expansion, where
	// pass_turn and land plays become available again.
	if s.SpellsCast == 0 && s.Hand.Contains("Once Upon a Time") {
		return e.Cycle(s, card.New("Once Upon a Time"))
	}

	out := gamestate.StateSet{}
	if s.Turn != maxTurns {
		out = out.Union(e.PassTurn(s))
	}
	for _, name := range s.Hand.Lands(e.Oracle, false).Names() {
		out = out.Union(e.Play(s, card.New(name)))
	}

	for _, name := range s.Hand.Names() {
		c := card.New(name)
		if !e.Oracle.IsLand(name) {
			out = out.Union(e.Cast(s, c))
		}
		out = out.Union(e.Cycle(s, c))
	}
	for _, name := range s.Battlefield.Names() {
		if _, ok := e.Oracle.SacrificeCost(name); !ok {
			continue
		}
		out = out.Union(e.Sacrifice(s, card.New(name)))
	}
	return out
}

// PassTurn ends the current turn and begins the next: prunes unwinnable or
// unpayable positions, applies the opponent's kill policy, recomputes land
// drops, resets mana, advances the turn counter, taps out, resolves
// pre-game actions and suspended cards, pays any stored mana debt, and
// draws for the new turn.
func (e *Engine) PassTurn(s gamestate.GameState) gamestate.StateSet {
	if s.Turn >= 1 && s.Battlefield.Len() == 0 {
		return gamestate.StateSet{} // no board presence, no way back
	}
	if s.Turn < 2 && s.ManaDebt != (mana.Mana{}) {
		return gamestate.StateSet{} // a Pact due before turn 2 can never be paid
	}

	debtOwed := s.ManaDebt
	startingTurn := s.Turn

	base := e.next(s,
		gamestate.WithBattlefield(killCreatures(e, s.Battlefield)),
		gamestate.WithLandDrops(landDropsFor(e, s.Battlefield)),
		gamestate.WithManaPool(mana.Mana{}),
		gamestate.WithManaDebt(mana.Mana{}),
		gamestate.WithTurn(s.Turn+1),
		gamestate.Note("---- turn %d", s.Turn+1),
	)

	tapped := e.TapOut(base)

	var withPreGame gamestate.StateSet
	if startingTurn == 0 {
		withPreGame = tapped.Apply(func(gs gamestate.GameState) gamestate.StateSet { return e.preGameActions(gs) })
	} else {
		withPreGame = tapped
	}

	tickedDown := withPreGame.Apply(func(gs gamestate.GameState) gamestate.StateSet { return e.tickDown(gs) })

	paid := tickedDown
	if debtOwed.Total() > 0 {
		paid = tickedDown.Apply(func(gs gamestate.GameState) gamestate.StateSet {
			return e.Pay(gs, debtOwed, "pay mana debt")
		})
	}

	if startingTurn == 0 && s.OnThePlay {
		return paid
	}
	return paid.Apply(func(gs gamestate.GameState) gamestate.StateSet { return e.Draw(gs, 1) })
}

// killCreatures removes every battlefield creature the oracle flags as
// dying to the opponent's scripted end-of-turn removal policy.
func killCreatures(e *Engine, bf cardset.Cards) cardset.Cards {
	survivors := bf
	for _, c := range bf.Items() {
		if !e.Oracle.Dies(c.Name()) {
			continue
		}
		if next, ok := survivors.Remove(c); ok {
			survivors = next
		}
	}
	return survivors
}

// landDropsFor recomputes the base land drop allowance plus every
// battlefield permanent's oracle-defined bonus (Azusa, Dryad of the
// Illysian Grove, Sakura-Tribe Scout, and anything else the data file
// grants a land_drop_bonus).
func landDropsFor(e *Engine, bf cardset.Cards) int {
	drops := 1
	for _, c := range bf.Items() {
		drops += e.Oracle.LandDropBonus(c.Name())
	}
	return drops
}

// preGameActions resolves Gemstone Caverns: one branch exiling nothing, and
// one branch per other card in hand exiling that card to place a Gemstone
// Mine directly onto the battlefield.
func (e *Engine) preGameActions(s gamestate.GameState) gamestate.StateSet {
	if !s.Hand.Contains("Gemstone Caverns") {
		return singleton(s)
	}
	out := singleton(s) // ignore branch: Gemstone Caverns stays a normal land in hand
	withoutCaverns, _ := s.Hand.Remove(card.New("Gemstone Caverns"))
	for _, name := range withoutCaverns.Names() {
		hand, ok := withoutCaverns.Remove(card.New(name))
		if !ok {
			continue
		}
		next := e.next(s,
			gamestate.WithHand(hand),
			gamestate.WithBattlefield(s.Battlefield.Add(card.New("Gemstone Mine"))),
			gamestate.Note("exile %s for Gemstone Caverns", name),
		)
		out = out.Add(next)
	}
	return out
}

// tickDown decrements every suspended card's counter; those reaching zero
// resolve via cast_from_suspend.
func (e *Engine) tickDown(s gamestate.GameState) gamestate.StateSet {
	if len(s.Suspended) == 0 {
		return singleton(s)
	}
	var remaining []gamestate.Suspended
	var resolving []card.Card
	for _, susp := range s.Suspended {
		counter := susp.Counter - 1
		if counter <= 0 {
			resolving = append(resolving, susp.Card)
			continue
		}
		remaining = append(remaining, gamestate.Suspended{Card: susp.Card, Counter: counter})
	}
	base := e.next(s, gamestate.WithSuspended(remaining), gamestate.Note("tick down suspend"))
	out := singleton(base)
	for _, c := range resolving {
		out = out.Apply(func(gs gamestate.GameState) gamestate.StateSet { return e.CastFromSuspend(gs, c) })
	}
	return out
}
