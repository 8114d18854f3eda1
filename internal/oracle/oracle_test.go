package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoadsEmbeddedData(t *testing.T) {
	o, err := Default()
	require.NoError(t, err)

	assert.True(t, o.IsLand("Forest"))
	assert.Equal(t, "{G}", o.TapsFor("Forest")[0].String())
	assert.False(t, o.IsLand("Primeval Titan"))
	assert.True(t, o.IsCreature("Primeval Titan"))
}

func TestEntersTappedSentinel(t *testing.T) {
	o, err := Default()
	require.NoError(t, err)

	assert.Equal(t, EntersCheck, o.EntersTapped("Castle Garenbrig"))
	assert.Equal(t, EntersAlwaysTapped, o.EntersTapped("Simic Growth Chamber"))
	assert.Equal(t, EntersUntapped, o.EntersTapped("Forest"))
}

func TestLandDropBonus(t *testing.T) {
	o, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 2, o.LandDropBonus("Azusa, Lost but Seeking"))
	assert.Equal(t, 1, o.LandDropBonus("Dryad of the Illysian Grove"))
	assert.Equal(t, 0, o.LandDropBonus("Forest"))
}

func TestUnknownCardIsZeroValue(t *testing.T) {
	o, err := Default()
	require.NoError(t, err)

	_, ok := o.Get("Not A Real Card")
	assert.False(t, ok)
	assert.False(t, o.IsLand("Not A Real Card"))
	assert.Equal(t, "Not A Real Card", o.Display("Not A Real Card"))
}

func TestCycleCost(t *testing.T) {
	o, err := Default()
	require.NoError(t, err)

	cost, ok := o.CycleCost("Once Upon a Time")
	require.True(t, ok)
	assert.Equal(t, 0, cost.Total())
	assert.Equal(t, "cast", o.CycleVerb("Once Upon a Time"))

	_, ok = o.CycleCost("Forest")
	assert.False(t, ok)
}
