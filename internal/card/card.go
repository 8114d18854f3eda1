// Package card defines the identity-only Card value: a name plus its
// memoized dispatch slug. All behavioral properties live in the oracle.
package card

import "strings"

// Card is a value identified by name. It carries no behavioral data —
// cost, types, and every other static attribute are resolved through the
// oracle by name.
type Card struct {
	name string
	slug string
}

// New returns the Card for the given name, memoizing its slug.
func New(name string) Card {
	return Card{name: name, slug: Slug(name)}
}

// Name returns the card's display/lookup name.
func (c Card) Name() string { return c.name }

// Slug returns the card's dispatch key: its name lowercased with spaces,
// apostrophes, hyphens, and parentheses removed.
func (c Card) Slug() string { return c.slug }

// Slug transforms a card name into its dispatch key.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return s
}

// Less orders cards by name, used to bring multisets into canonical order
// before hashing.
func Less(a, b Card) bool { return a.name < b.name }
