// Package oracle is the read-only static card database: a pure function
// from card name to a record of behavioral attributes, loaded once from a
// YAML data file (the same format the original Python implementation used
// for data/cards.yaml).
package oracle

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ramonehamilton/amulet-titan-search/internal/mana"
)

// EntersTapped describes how a land enters the battlefield.
type EntersTapped int

const (
	// EntersUntapped is the default: the land enters ready to tap.
	EntersUntapped EntersTapped = iota
	// EntersAlwaysTapped always enters tapped.
	EntersAlwaysTapped
	// EntersCheck defers to a card-specific predicate registered in
	// the transitions package (the "check" sentinel of spec section 6).
	EntersCheck
)

// UnmarshalYAML accepts either a bool or the literal string "check".
func (e *EntersTapped) UnmarshalYAML(value *yaml.Node) error {
	var asBool bool
	if err := value.Decode(&asBool); err == nil {
		if asBool {
			*e = EntersAlwaysTapped
		} else {
			*e = EntersUntapped
		}
		return nil
	}
	var asString string
	if err := value.Decode(&asString); err != nil {
		return fmt.Errorf("enters_tapped: expected bool or \"check\", got %v", value.Value)
	}
	if asString != "check" {
		return fmt.Errorf("enters_tapped: unsupported sentinel %q", asString)
	}
	*e = EntersCheck
	return nil
}

// Data is the static record of a card's behavioral attributes. Unknown
// YAML fields are ignored.
type Data struct {
	Cost          string       `yaml:"cost"`
	TapsFor       []string     `yaml:"taps_for"`
	CycleCost     string       `yaml:"cycle_cost"`
	CycleVerb     string       `yaml:"cycle_verb"`
	SacrificeCost string       `yaml:"sacrifice_cost"`
	Types         []string     `yaml:"types"`
	EntersTapped  EntersTapped `yaml:"enters_tapped"`
	Dies          bool         `yaml:"dies"`
	IsGreen       bool         `yaml:"is_green"`
	IsColorless   bool         `yaml:"is_colorless"`
	IsCreature    bool         `yaml:"is_creature"`
	IsLand        bool         `yaml:"is_land"`
	Display       string       `yaml:"display"`

	// BestRank breaks ties among interchangeable cards of a filtered
	// view (e.g. which land a "best" selector should prefer). Lower
	// ranks sort first; an unset rank is zero and so sorts ahead of every
	// positive rank. Equal ranks fall back to alphabetical order.
	BestRank int `yaml:"best_rank"`

	// LandDropBonus generalizes the hardcoded Azusa/Dryad/"Sakura-Scout"
	// land-drop formula of spec section 4.3 into oracle data: each copy
	// on the battlefield grants this many additional land drops per
	// turn. Azusa: 2, Dryad of the Illysian Grove: 1.
	LandDropBonus int `yaml:"land_drop_bonus"`
}

//go:embed data/cards.yaml
var defaultData embed.FS

// Oracle is the loaded, read-only card database.
type Oracle struct {
	byName map[string]Data
	log    *slog.Logger
}

// Default loads the card database embedded in the binary.
func Default() (*Oracle, error) {
	raw, err := defaultData.ReadFile("data/cards.yaml")
	if err != nil {
		return nil, fmt.Errorf("oracle: read embedded data: %w", err)
	}
	return load(raw, slog.Default())
}

// Load reads the card database from the given YAML file path.
func Load(path string, logger *slog.Logger) (*Oracle, error) {
	if logger == nil {
		logger = slog.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oracle: read %s: %w", path, err)
	}
	return load(raw, logger)
}

func load(raw []byte, logger *slog.Logger) (*Oracle, error) {
	var byName map[string]Data
	if err := yaml.Unmarshal(raw, &byName); err != nil {
		return nil, fmt.Errorf("oracle: parse card data: %w", err)
	}
	logger.Debug("oracle loaded", "cards", len(byName))
	return &Oracle{byName: byName, log: logger}, nil
}

// Get returns the static data for name, and whether it was found.
func (o *Oracle) Get(name string) (Data, bool) {
	d, ok := o.byName[name]
	return d, ok
}

// Cost returns the mana cost of name, or zero mana if unset/unknown.
func (o *Oracle) Cost(name string) mana.Mana {
	d, ok := o.Get(name)
	if !ok || d.Cost == "" {
		return mana.Mana{}
	}
	return mana.MustParse(d.Cost)
}

// TapsFor returns the distinct mana options name taps for. A card with no
// taps_for entries returns nil.
func (o *Oracle) TapsFor(name string) []mana.Mana {
	d, ok := o.Get(name)
	if !ok {
		return nil
	}
	out := make([]mana.Mana, 0, len(d.TapsFor))
	for _, s := range d.TapsFor {
		out = append(out, mana.MustParse(s))
	}
	return out
}

// CycleCost returns the cycling cost of name and whether it can be cycled.
func (o *Oracle) CycleCost(name string) (mana.Mana, bool) {
	d, ok := o.Get(name)
	if !ok || d.CycleCost == "" {
		return mana.Mana{}, false
	}
	return mana.MustParse(d.CycleCost), true
}

// CycleVerb returns the display verb for cycling name, defaulting to
// "cycle".
func (o *Oracle) CycleVerb(name string) string {
	d, ok := o.Get(name)
	if !ok || d.CycleVerb == "" {
		return "cycle"
	}
	return d.CycleVerb
}

// SacrificeCost returns the sacrifice cost of name and whether it has one.
func (o *Oracle) SacrificeCost(name string) (mana.Mana, bool) {
	d, ok := o.Get(name)
	if !ok || d.SacrificeCost == "" {
		return mana.Mana{}, false
	}
	return mana.MustParse(d.SacrificeCost), true
}

// HasType reports whether name carries the given type ("land", "creature",
// ...).
func (o *Oracle) HasType(name, typ string) bool {
	d, ok := o.Get(name)
	if !ok {
		return false
	}
	for _, t := range d.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// IsLand, IsCreature, IsGreen, IsColorless, and Dies answer the
// corresponding boolean flags in a card's data record.
func (o *Oracle) IsLand(name string) bool {
	d, ok := o.Get(name)
	return ok && (d.IsLand || o.HasType(name, "land"))
}

func (o *Oracle) IsCreature(name string) bool {
	d, ok := o.Get(name)
	return ok && (d.IsCreature || o.HasType(name, "creature"))
}

func (o *Oracle) IsGreen(name string) bool {
	d, ok := o.Get(name)
	return ok && d.IsGreen
}

func (o *Oracle) IsColorless(name string) bool {
	d, ok := o.Get(name)
	return ok && d.IsColorless
}

func (o *Oracle) Dies(name string) bool {
	d, ok := o.Get(name)
	return ok && d.Dies
}

// EntersTapped returns the raw enters-tapped disposition of name.
func (o *Oracle) EntersTapped(name string) EntersTapped {
	d, ok := o.Get(name)
	if !ok {
		return EntersUntapped
	}
	return d.EntersTapped
}

// LandDropBonus returns the additional land drops a single copy of name on
// the battlefield grants per turn.
func (o *Oracle) LandDropBonus(name string) int {
	d, ok := o.Get(name)
	if !ok {
		return 0
	}
	return d.LandDropBonus
}

// BestRank returns the tie-break rank used by "best" selectors; unknown
// cards sort last.
func (o *Oracle) BestRank(name string) int {
	d, ok := o.Get(name)
	if !ok {
		return 1 << 30
	}
	return d.BestRank
}

// Display returns the pretty-printed name of name, falling back to the
// name itself, unchanged, when no display name is recorded.
func (o *Oracle) Display(name string) string {
	d, ok := o.Get(name)
	if ok && d.Display != "" {
		return d.Display
	}
	return name
}

// Names returns every card name known to the oracle, sorted.
func (o *Oracle) Names() []string {
	out := make([]string, 0, len(o.byName))
	for name := range o.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
