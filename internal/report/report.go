// Package report renders human-readable trial summaries and a turn
// histogram chart over a batch of stored results.
package report

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/amulet-titan-search/internal/storage"
)

// Summarize renders a one-line, human-readable summary per trial, in the
// order given: "turn 2: success (on the play)", "turn 6: no solution found
// (on the draw)", or "turn 4: overflow (on the play)".
func Summarize(trials []storage.Trial) string {
	var b strings.Builder
	for _, t := range trials {
		b.WriteString(summarizeOne(t))
		b.WriteByte('\n')
	}
	return b.String()
}

func summarizeOne(t storage.Trial) string {
	onThePlay := "on the draw"
	if t.OnThePlay {
		onThePlay = "on the play"
	}
	switch {
	case t.GoalTurn != nil:
		return fmt.Sprintf("turn %d: success (%s)", *t.GoalTurn, onThePlay)
	case t.OverflowTurn != nil:
		return fmt.Sprintf("turn %d: overflow (%s)", *t.OverflowTurn, onThePlay)
	default:
		return fmt.Sprintf("turn %d: no solution found (%s)", t.MaxTurns, onThePlay)
	}
}

// RenderTurnHistogram writes an HTML bar chart to outputPath showing, for
// each turn from 1 to maxTurns, the fraction of trials that had reached
// the goal by that turn.
func RenderTurnHistogram(trials []storage.Trial, maxTurns int, outputPath string) error {
	solvedByTurn := make([]int, maxTurns+1)
	for _, t := range trials {
		if t.GoalTurn == nil {
			continue
		}
		for turn := *t.GoalTurn; turn <= maxTurns; turn++ {
			solvedByTurn[turn]++
		}
	}

	data := make([]DataPoint, 0, maxTurns)
	total := len(trials)
	for turn := 1; turn <= maxTurns; turn++ {
		fraction := 0.0
		if total > 0 {
			fraction = float64(solvedByTurn[turn]) / float64(total)
		}
		data = append(data, DataPoint{Label: fmt.Sprintf("T%d", turn), Value: fraction})
	}

	return renderBarChart(data, DefaultChartConfig(), "Solved fraction", outputPath)
}
