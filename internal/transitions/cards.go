package transitions

import (
	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/cardset"
	"github.com/ramonehamilton/amulet-titan-search/internal/gamestate"
	"github.com/ramonehamilton/amulet-titan-search/internal/mana"
	"github.com/ramonehamilton/amulet-titan-search/internal/oracle"
)

func init() {
	// Mana rocks and dorks whose whole effect is already captured
	// generically (Amulet's bonus taps in playTapped, land-drop bonuses
	// in pass_turn, mana abilities via taps_for) resolve to identity.
	identity := func(e *Engine, s gamestate.GameState) gamestate.StateSet { return singleton(s) }
	registerCast("amuletofvigor", identity)
	registerCast("azusalostbutseeking", identity)
	registerCast("dryadoftheillysiangrove", identity)
	registerCast("sakuratribescout", identity)
	registerCast("devoteddruid", identity)
	registerCast("elvishmystic", identity)

	registerCast("summerbloom", castSummerBloom)
	registerCast("primevaltitan", castPrimevalTitan)
	registerCast("primevaltitandebug", castPrimevalTitan)
	registerCast("onceuponatime", castOrCycleOnceUponATime)
	registerCast("summonerspact", castSummonersPact)
	registerCast("throughthebreach", castThroughTheBreach)

	registerCycle("onceuponatime", castOrCycleOnceUponATime)

	registerSacrifice("sakuratribeelder", sacrificeSakuraTribeElder)

	registerPlay("simicgrowthchamber", playSimicGrowthChamber)
	registerPlay("tolariawest", playTolariaWest)

	registerCheck("castlegarenbrig", checkCastleGarenbrig)
}

// castSummerBloom grants three additional land drops this turn.
func castSummerBloom(e *Engine, s gamestate.GameState) gamestate.StateSet {
	next := e.next(s, gamestate.WithLandDrops(s.LandDrops+3), gamestate.Note("three additional land drops"))
	return singleton(next)
}

// castPrimevalTitan resolves the goal: casting (or suspend-resolving) a
// Primeval Titan or its debug equivalent wins the game outright.
func castPrimevalTitan(e *Engine, s gamestate.GameState) gamestate.StateSet {
	next := e.next(s, gamestate.WithDone(true), gamestate.Note("Primeval Titan resolves"))
	return singleton(next)
}

// fetchBestLandOrCreature is shared by Once Upon a Time's cast and cycle
// modes: search the remaining deck for a land or a creature, the oracle's
// preferred choice of each, and grab whichever are found.
func fetchBestLandOrCreature(e *Engine, s gamestate.GameState) gamestate.StateSet {
	items := s.DeckList.Items()
	remaining := cardset.Of(items[s.DeckIndex:]...)
	choices := remaining.Lands(e.Oracle, true).AddAll(remaining.Creatures(e.Oracle, true))
	if choices.Len() == 0 {
		return singleton(s)
	}
	return e.Grabs(s, choices)
}

// castOrCycleOnceUponATime implements Once Upon a Time's single effect,
// shared between its two castable modalities (normal cast, and the free
// cycle mode selected by the no-spells-cast-yet priority rule in
// next_states).
func castOrCycleOnceUponATime(e *Engine, s gamestate.GameState) gamestate.StateSet {
	return fetchBestLandOrCreature(e, s).Apply(func(gs gamestate.GameState) gamestate.StateSet {
		return singleton(e.next(gs, gamestate.Note("found a card with Once Upon a Time")))
	})
}

// castSummonersPact fetches a green creature to hand for free, and incurs
// a mana debt payable at the next upkeep.
func castSummonersPact(e *Engine, s gamestate.GameState) gamestate.StateSet {
	items := s.DeckList.Items()
	remaining := cardset.Of(items[s.DeckIndex:]...)
	creature := remaining.GreenCreatures(e.Oracle, true)
	if creature.Len() == 0 {
		return singleton(s)
	}
	fetched := e.Grabs(s, creature)
	debt := mana.MustParse("{2}{G}{G}")
	return fetched.Apply(func(gs gamestate.GameState) gamestate.StateSet {
		next := e.next(gs, gamestate.WithManaDebt(gs.ManaDebt.Add(debt)), gamestate.Note("owe the Pact"))
		return singleton(next)
	})
}

// castThroughTheBreach puts a Primeval Titan from hand onto the
// battlefield with haste, which is the goal: if one is in hand, the game
// is won; otherwise the spell resolves with no further effect modeled.
func castThroughTheBreach(e *Engine, s gamestate.GameState) gamestate.StateSet {
	if !s.Hand.Contains("Primeval Titan") {
		return singleton(s)
	}
	hand, _ := s.Hand.Remove(card.New("Primeval Titan"))
	next := e.next(s, gamestate.WithHand(hand), gamestate.WithDone(true), gamestate.Note("Through the Breach puts Primeval Titan into play"))
	return singleton(next)
}

// sacrificeSakuraTribeElder fetches a basic Forest from the deck directly
// onto the battlefield, tapped.
func sacrificeSakuraTribeElder(e *Engine, s gamestate.GameState) gamestate.StateSet {
	fetched := e.Grab(s, "Forest")
	return fetched.Apply(func(gs gamestate.GameState) gamestate.StateSet {
		hand, ok := gs.Hand.Remove(card.New("Forest"))
		if !ok {
			return singleton(gs)
		}
		next := e.next(gs,
			gamestate.WithHand(hand),
			gamestate.WithBattlefield(gs.Battlefield.Add(card.New("Forest"))),
			gamestate.Note("fetch a Forest with Sakura-Tribe Elder"),
		)
		return singleton(next)
	})
}

// playSimicGrowthChamber bounces a land on entry.
func playSimicGrowthChamber(e *Engine, s gamestate.GameState) gamestate.StateSet {
	return e.BounceLand(s)
}

// playTolariaWest fetches a zero-mana-cost card to hand.
func playTolariaWest(e *Engine, s gamestate.GameState) gamestate.StateSet {
	items := s.DeckList.Items()
	remaining := cardset.Of(items[s.DeckIndex:]...)
	zeros := remaining.Zeros(e.Oracle, true)
	if zeros.Len() == 0 {
		return singleton(s)
	}
	return e.Grabs(s, zeros)
}

// checkCastleGarenbrig resolves the enters_tapped "check" sentinel: the
// castle is tapped unless a Forest or a Dryad of the Illysian Grove is
// already on the battlefield.
func checkCastleGarenbrig(s gamestate.GameState, o *oracle.Oracle) bool {
	hasForest := s.Battlefield.Forests(o, false).Len() > 0
	hasDryad := s.Battlefield.Contains("Dryad of the Illysian Grove")
	return !hasForest && !hasDryad
}
