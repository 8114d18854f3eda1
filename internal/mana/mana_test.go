package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		cost     string
		expected Mana
	}{
		{"{2}{G}{G}", Mana{G: 2, Generic: 2}},
		{"{G}{G}{G}{G}{G}{G}{G}{G}", Mana{G: 8}},
		{"{W}{U}{B}{R}{G}", Mana{W: 1, U: 1, B: 1, R: 1, G: 1}},
		{"{C}{C}", Mana{Generic: 2}},
		{"", Mana{}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.cost)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, tt.cost)
	}
}

func TestParseUnknownSymbol(t *testing.T) {
	_, err := Parse("{Q}")
	assert.Error(t, err)
}

func TestGreaterEqual(t *testing.T) {
	pool := Mana{R: 1, G: 1}
	assert.True(t, pool.GreaterEqual(MustParse("{1}")))
	assert.True(t, pool.GreaterEqual(MustParse("{R}")))
	assert.True(t, pool.GreaterEqual(MustParse("{G}")))
	assert.False(t, pool.GreaterEqual(MustParse("{U}")))
	assert.False(t, pool.GreaterEqual(MustParse("{3}")))
}

func TestSubtractGenericChoice(t *testing.T) {
	pool := Mana{R: 1, G: 1}
	cost := MustParse("{1}")
	residues := pool.Subtract(cost)
	assert.ElementsMatch(t, []Mana{{G: 1}, {R: 1}}, residues)
}

func TestSubtractUnpayable(t *testing.T) {
	pool := Mana{R: 1}
	assert.Nil(t, pool.Subtract(MustParse("{U}")))
	assert.Nil(t, pool.Subtract(MustParse("{3}")))
}

func TestSubtractResidueRoundTrips(t *testing.T) {
	pool := Mana{R: 2, G: 1, Generic: 1}
	cost := MustParse("{2}{R}")
	residues := pool.Subtract(cost)
	assert.ElementsMatch(t, []Mana{{Generic: 1}, {G: 1}, {R: 1}}, residues)
	for _, residue := range residues {
		assert.Equal(t, pool.Total(), residue.Add(cost).Total())
	}
}

func TestAddCommutative(t *testing.T) {
	a := Mana{W: 1, Generic: 2}
	b := Mana{G: 3}
	assert.Equal(t, a.Add(b), b.Add(a))
}

func TestStringCanonical(t *testing.T) {
	m := Mana{Generic: 2, G: 2}
	assert.Equal(t, "{2}{G}{G}", m.String())
	assert.Equal(t, "{0}", Mana{}.String())
}

func TestTrackedColorsCollapseToGeneric(t *testing.T) {
	SetTrackedColors([]Color{Red, Green})
	defer SetTrackedColors(nil)

	m, err := Parse("{U}{R}")
	require.NoError(t, err)
	assert.Equal(t, Mana{R: 1, Generic: 1}, m)
}
