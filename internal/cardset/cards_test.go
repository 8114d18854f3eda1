package cardset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/oracle"
)

func testOracle(t *testing.T) *oracle.Oracle {
	t.Helper()
	o, err := oracle.Default()
	require.NoError(t, err)
	return o
}

func TestAddRemoveRoundTrip(t *testing.T) {
	hand := OfNames("Forest", "Primeval Titan")
	withCard := hand.Add(card.New("Amulet of Vigor"))
	back, ok := withCard.Remove(card.New("Amulet of Vigor"))
	require.True(t, ok)
	assert.True(t, hand.Equal(back))
}

func TestCountAndContains(t *testing.T) {
	hand := OfNames("Forest", "Forest", "Primeval Titan")
	assert.Equal(t, 2, hand.Count("Forest"))
	assert.True(t, hand.Contains("Primeval Titan"))
	assert.False(t, hand.Contains("Island"))
}

func TestNamesDeduplicatesAndSorts(t *testing.T) {
	hand := OfNames("Forest", "Forest", "Amulet of Vigor")
	assert.Equal(t, []string{"Amulet of Vigor", "Forest"}, hand.Names())
}

func TestLandsFilter(t *testing.T) {
	o := testOracle(t)
	hand := OfNames("Forest", "Primeval Titan", "Simic Growth Chamber")
	lands := hand.Lands(o, false)
	assert.Equal(t, 2, lands.Len())
}

func TestBestSelectorCollapsesToSingleton(t *testing.T) {
	o := testOracle(t)
	hand := OfNames("Forest", "Simic Growth Chamber", "Gemstone Mine")
	best := hand.Lands(o, true)
	require.Equal(t, 1, best.Len())
	assert.Equal(t, "Gemstone Mine", best.Items()[0].Name())
}

func TestCombinationsCount(t *testing.T) {
	hand := OfNames("Forest", "Island", "Primeval Titan")
	combos := hand.Combinations(2)
	assert.Len(t, combos, 3)
}

func TestCombinationsDedupesEquivalentMultisets(t *testing.T) {
	hand := OfNames("Forest", "Forest", "Forest")
	combos := hand.Combinations(2)
	assert.Len(t, combos, 1)
}
