package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartConfig holds rendering configuration for a turn-histogram chart.
type ChartConfig struct {
	Title      string
	Subtitle   string
	Width      string
	Height     string
	Theme      string
	ShowLegend bool
	Colors     []string
}

// DefaultChartConfig returns sensible defaults for the turn-histogram
// chart rendered by RenderTurnHistogram.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:      "Goal turn distribution",
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666"},
	}
}

// DataPoint is one labeled bar in the histogram.
type DataPoint struct {
	Label string
	Value float64
}

// renderBarChart writes an interactive bar-chart HTML file to outputPath.
func renderBarChart(data []DataPoint, config ChartConfig, seriesName, outputPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{config.Colors[0]}),
	)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("report: create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("report: render chart: %w", err)
	}
	return nil
}
