// Package cardset implements Cards, the ordered multiset of card.Card used
// for hands, battlefields, and decks. Filtered views are built with
// samber/lo rather than hand-rolled loops, matching how the teacher's
// analysis packages reach for the same library for slice transforms.
package cardset

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/oracle"
)

// Cards is an immutable ordered multiset of card.Card. All mutating
// operations return a new Cards; the receiver is never modified.
type Cards struct {
	items []card.Card
}

// Of builds a Cards from the given cards, in order.
func Of(cards ...card.Card) Cards {
	return Cards{items: append([]card.Card(nil), cards...)}
}

// OfNames builds a Cards from card names.
func OfNames(names ...string) Cards {
	items := make([]card.Card, 0, len(names))
	for _, n := range names {
		items = append(items, card.New(n))
	}
	return Cards{items: items}
}

// Len returns the number of cards (with multiplicity).
func (c Cards) Len() int { return len(c.items) }

// Items returns the underlying cards in insertion order. Callers must not
// mutate the returned slice.
func (c Cards) Items() []card.Card { return c.items }

// Add returns a new Cards with card appended.
func (c Cards) Add(one card.Card) Cards {
	next := make([]card.Card, len(c.items), len(c.items)+1)
	copy(next, c.items)
	next = append(next, one)
	return Cards{items: next}
}

// AddAll returns a new Cards with every card of other appended.
func (c Cards) AddAll(other Cards) Cards {
	next := make([]card.Card, len(c.items), len(c.items)+len(other.items))
	copy(next, c.items)
	next = append(next, other.items...)
	return Cards{items: next}
}

// Remove returns a new Cards with the first occurrence of one removed, and
// whether it was present.
func (c Cards) Remove(one card.Card) (Cards, bool) {
	for i, item := range c.items {
		if item.Name() == one.Name() {
			next := make([]card.Card, 0, len(c.items)-1)
			next = append(next, c.items[:i]...)
			next = append(next, c.items[i+1:]...)
			return Cards{items: next}, true
		}
	}
	return c, false
}

// RemoveAll returns a new Cards with every card in other removed (one copy
// per occurrence in other), and whether all were present.
func (c Cards) RemoveAll(other Cards) (Cards, bool) {
	result := c
	ok := true
	for _, one := range other.items {
		var removed bool
		result, removed = result.Remove(one)
		ok = ok && removed
	}
	return result, ok
}

// Contains reports whether name appears at least once.
func (c Cards) Contains(name string) bool {
	return lo.ContainsBy(c.items, func(item card.Card) bool { return item.Name() == name })
}

// Count returns the number of copies of name.
func (c Cards) Count(name string) int {
	return lo.CountBy(c.items, func(item card.Card) bool { return item.Name() == name })
}

// Names returns the distinct card names present, sorted, for deterministic
// iteration ("for each distinct card in hand").
func (c Cards) Names() []string {
	names := lo.Uniq(lo.Map(c.items, func(item card.Card, _ int) string { return item.Name() }))
	sort.Strings(names)
	return names
}

// filter returns a new Cards containing only items for which pred is true.
func (c Cards) filter(pred func(card.Card) bool) Cards {
	return Cards{items: lo.Filter(c.items, func(item card.Card, _ int) bool { return pred(item) })}
}

// best collapses a filtered view to a single canonical representative,
// the oracle's most-preferred card among those present, to prune symmetric
// grab/fetch choices that differ only in which interchangeable copy was
// picked.
func best(o *oracle.Oracle, items []card.Card) Cards {
	if len(items) == 0 {
		return Cards{}
	}
	sorted := append([]card.Card(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := o.BestRank(sorted[i].Name()), o.BestRank(sorted[j].Name())
		if ri != rj {
			return ri < rj
		}
		return sorted[i].Name() < sorted[j].Name()
	})
	return Cards{items: sorted[:1]}
}

// Lands returns the lands in c; best=true collapses to the oracle's
// preferred single land.
func (c Cards) Lands(o *oracle.Oracle, bestOnly bool) Cards {
	f := c.filter(func(card card.Card) bool { return o.IsLand(card.Name()) })
	if bestOnly {
		return best(o, f.items)
	}
	return f
}

// Creatures returns the creatures in c.
func (c Cards) Creatures(o *oracle.Oracle, bestOnly bool) Cards {
	f := c.filter(func(card card.Card) bool { return o.IsCreature(card.Name()) })
	if bestOnly {
		return best(o, f.items)
	}
	return f
}

// GreenCreatures returns the green creatures in c.
func (c Cards) GreenCreatures(o *oracle.Oracle, bestOnly bool) Cards {
	f := c.filter(func(card card.Card) bool { return o.IsCreature(card.Name()) && o.IsGreen(card.Name()) })
	if bestOnly {
		return best(o, f.items)
	}
	return f
}

// Forests returns the cards named "Forest" in c — the "best" land to
// fetch when any basic Forest will do.
func (c Cards) Forests(o *oracle.Oracle, bestOnly bool) Cards {
	f := c.filter(func(card card.Card) bool { return card.Name() == "Forest" })
	if bestOnly {
		return best(o, f.items)
	}
	return f
}

// Permanents returns the lands, creatures, artifacts, enchantments, and
// planeswalkers in c.
func (c Cards) Permanents(o *oracle.Oracle, bestOnly bool) Cards {
	f := c.filter(func(card card.Card) bool {
		return o.IsLand(card.Name()) || o.IsCreature(card.Name()) || o.HasType(card.Name(), "artifact") || o.HasType(card.Name(), "enchantment") || o.HasType(card.Name(), "planeswalker")
	})
	if bestOnly {
		return best(o, f.items)
	}
	return f
}

// Colorless returns the colorless cards in c.
func (c Cards) Colorless(o *oracle.Oracle, bestOnly bool) Cards {
	f := c.filter(func(card card.Card) bool { return o.IsColorless(card.Name()) })
	if bestOnly {
		return best(o, f.items)
	}
	return f
}

// CreaturesLands returns the union of creatures and lands in c.
func (c Cards) CreaturesLands(o *oracle.Oracle, bestOnly bool) Cards {
	f := c.filter(func(card card.Card) bool { return o.IsLand(card.Name()) || o.IsCreature(card.Name()) })
	if bestOnly {
		return best(o, f.items)
	}
	return f
}

// Zeros returns the zero-mana-cost cards in c.
func (c Cards) Zeros(o *oracle.Oracle, bestOnly bool) Cards {
	f := c.filter(func(card card.Card) bool { return o.Cost(card.Name()).Total() == 0 })
	if bestOnly {
		return best(o, f.items)
	}
	return f
}

// Canonical returns a string that is equal for any two multisets containing
// the same cards regardless of insertion order, suitable for hashing.
func (c Cards) Canonical() string {
	names := make([]string, len(c.items))
	for i, item := range c.items {
		names[i] = item.Name()
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// Equal reports multiset equality, ignoring order.
func (c Cards) Equal(other Cards) bool {
	return c.Canonical() == other.Canonical()
}

// Combinations returns every distinct n-card sub-multiset of c (by
// position, so two physically distinct copies of the same name are still
// distinguished as combinations, matching pitch(n, options)'s semantics of
// choosing among options rather than among names).
func (c Cards) Combinations(n int) []Cards {
	if n < 0 || n > len(c.items) {
		return nil
	}
	if n == 0 {
		return []Cards{{}}
	}
	var out []Cards
	var rec func(start int, chosen []card.Card)
	rec = func(start int, chosen []card.Card) {
		if len(chosen) == n {
			out = append(out, Cards{items: append([]card.Card(nil), chosen...)})
			return
		}
		remaining := n - len(chosen)
		for i := start; i <= len(c.items)-remaining; i++ {
			rec(i+1, append(chosen, c.items[i]))
		}
	}
	rec(0, nil)
	return dedupCombinations(out)
}

// dedupCombinations collapses combinations that are multiset-identical
// (e.g. choosing "Forest #1, Forest #2" vs "Forest #2, Forest #1" already
// can't happen since rec only picks increasing indices, but two Forests at
// different positions still produce canonically-equal combinations that
// the search should treat as one branch).
func dedupCombinations(combos []Cards) []Cards {
	seen := make(map[string]bool, len(combos))
	out := make([]Cards, 0, len(combos))
	for _, combo := range combos {
		key := combo.Canonical()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, combo)
	}
	return out
}
