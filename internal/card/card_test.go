package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMemoizesSlug(t *testing.T) {
	c := New("Sakura-Tribe Elder")

	assert.Equal(t, "Sakura-Tribe Elder", c.Name())
	assert.Equal(t, "sakuratribeelder", c.Slug())
}

func TestSlugStripsApostrophesHyphensSpacesAndParens(t *testing.T) {
	assert.Equal(t, "summonerspact", Slug("Summoner's Pact"))
	assert.Equal(t, "onceuponatime", Slug("Once Upon a Time"))
	assert.Equal(t, "primevaltitan", Slug("Primeval Titan"))
	assert.Equal(t, "primevaltitandebug", Slug("Primeval Titan (debug)"))
}

func TestLessOrdersByName(t *testing.T) {
	forest := New("Forest")
	island := New("Island")

	assert.True(t, Less(forest, island))
	assert.False(t, Less(island, forest))
}
