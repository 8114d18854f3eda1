package gamestate

// StateSet is an unordered collection of GameState with set semantics,
// keyed by canonical equality so that equivalent positions reached via
// different play sequences collapse into one member.
type StateSet map[string]GameState

// NewStateSet builds a StateSet from the given states.
func NewStateSet(states ...GameState) StateSet {
	ss := make(StateSet, len(states))
	for _, s := range states {
		ss[s.CanonicalKey()] = s
	}
	return ss
}

// Add returns a new StateSet with s inserted (replacing any canonically
// equal member).
func (ss StateSet) Add(s GameState) StateSet {
	next := ss.clone()
	next[s.CanonicalKey()] = s
	return next
}

// Union returns a new StateSet containing every member of ss and other.
func (ss StateSet) Union(other StateSet) StateSet {
	next := ss.clone()
	for k, v := range other {
		next[k] = v
	}
	return next
}

func (ss StateSet) clone() StateSet {
	next := make(StateSet, len(ss))
	for k, v := range ss {
		next[k] = v
	}
	return next
}

// Apply invokes fn on every member and unions the results — the "batch
// application" mode of StateSet.
func (ss StateSet) Apply(fn func(GameState) StateSet) StateSet {
	result := StateSet{}
	for _, s := range ss {
		for k, v := range fn(s) {
			result[k] = v
		}
	}
	return result
}

// Len returns the number of distinct members.
func (ss StateSet) Len() int { return len(ss) }

// Slice returns the members in no particular order.
func (ss StateSet) Slice() []GameState {
	out := make([]GameState, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}
	return out
}

// Any returns an arbitrary member — the "property projection" mode of
// StateSet, safe only when every member agrees on the attribute being
// read or exactly one member is expected.
func (ss StateSet) Any() (GameState, bool) {
	for _, s := range ss {
		return s, true
	}
	return GameState{}, false
}

// Longest returns the member with the most narrative lines, used to
// promote a diagnostic state when the search overflows.
func (ss StateSet) Longest() (GameState, bool) {
	var best GameState
	found := false
	for _, s := range ss {
		if !found || s.TraceLength() > best.TraceLength() {
			best = s
			found = true
		}
	}
	return best, found
}

// Done returns the first member with Done set, if any.
func (ss StateSet) Done() (GameState, bool) {
	for _, s := range ss {
		if s.Done {
			return s, true
		}
	}
	return GameState{}, false
}

// AnyOverflowed returns the first member with Overflowed set, if any.
func (ss StateSet) AnyOverflowed() (GameState, bool) {
	for _, s := range ss {
		if s.Overflowed {
			return s, true
		}
	}
	return GameState{}, false
}
