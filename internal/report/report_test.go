package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/amulet-titan-search/internal/storage"
)

func TestSummarizeRendersOneLinePerTrial(t *testing.T) {
	goalTurn := 2
	overflowTurn := 5
	trials := []storage.Trial{
		{OnThePlay: true, GoalTurn: &goalTurn},
		{OnThePlay: false, MaxTurns: 6},
		{OnThePlay: true, OverflowTurn: &overflowTurn},
	}

	out := Summarize(trials)
	assert.Contains(t, out, "turn 2: success (on the play)")
	assert.Contains(t, out, "turn 6: no solution found (on the draw)")
	assert.Contains(t, out, "turn 5: overflow (on the play)")
}

func TestRenderTurnHistogramWritesAnHTMLFile(t *testing.T) {
	goalTurn := 2
	trials := []storage.Trial{
		{OnThePlay: true, GoalTurn: &goalTurn},
		{OnThePlay: false, MaxTurns: 3},
	}

	outputPath := filepath.Join(t.TempDir(), "histogram.html")
	require.NoError(t, RenderTurnHistogram(trials, 3, outputPath))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
