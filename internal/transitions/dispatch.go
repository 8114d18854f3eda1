package transitions

import (
	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/gamestate"
	"github.com/ramonehamilton/amulet-titan-search/internal/oracle"
)

// handlerFunc is a card-specific effect, applied to the state immediately
// after the common cast/cycle/sacrifice/play logic has already run.
type handlerFunc func(e *Engine, s gamestate.GameState) gamestate.StateSet

// checkFunc resolves the "check" enters_tapped sentinel: true means the
// land enters tapped.
type checkFunc func(s gamestate.GameState, o *oracle.Oracle) bool

// Mandatory tables: cast and sacrifice effects must have a handler here,
// since those actions always do *something*. Optional tables: cycle, play,
// and check may be absent, in which case the safe-dispatch rule applies —
// the current StateSet is returned unchanged.
var (
	castHandlers      = map[string]handlerFunc{}
	sacrificeHandlers = map[string]handlerFunc{}
	cycleHandlers     = map[string]handlerFunc{}
	playHandlers      = map[string]handlerFunc{}
	checkHandlers     = map[string]checkFunc{}
)

// registerCast, registerSacrifice, registerCycle, registerPlay, and
// registerCheck populate the dispatch tables; called from package init in
// cards.go so every handler lives next to its card's comment.
func registerCast(slug string, fn handlerFunc)      { castHandlers[slug] = fn }
func registerSacrifice(slug string, fn handlerFunc) { sacrificeHandlers[slug] = fn }
func registerCycle(slug string, fn handlerFunc)     { cycleHandlers[slug] = fn }
func registerPlay(slug string, fn handlerFunc)      { playHandlers[slug] = fn }
func registerCheck(slug string, fn checkFunc)       { checkHandlers[slug] = fn }

// dispatchMandatory looks up c's handler in table and runs it. A missing
// handler is a programmer error (ErrMissingHandler), since cast and
// sacrifice always require card-specific resolution.
func (e *Engine) dispatchMandatory(table map[string]handlerFunc, c card.Card, s gamestate.GameState) gamestate.StateSet {
	fn, ok := table[c.Slug()]
	if !ok {
		panic(ErrMissingHandler)
	}
	return fn(e, s)
}

// dispatchOptional looks up c's handler in table and runs it, or returns s
// unchanged if no handler is registered — the safe-dispatch rule.
func (e *Engine) dispatchOptional(table map[string]handlerFunc, c card.Card, s gamestate.GameState) gamestate.StateSet {
	fn, ok := table[c.Slug()]
	if !ok {
		return singleton(s)
	}
	return fn(e, s)
}
