package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/dashboard"
)

// featureCounts is the number of features of a column by outcome.
type featureCounts struct {
	Passed int
	Failed int
	Other  int
}

// countFeatures splits the features of col into passed, failed and any other
// status such as skipped or undefined.
func countFeatures(col *dashboard.Column) featureCounts {
	counts := featureCounts{Failed: col.FailedFeatures}
	for _, feature := range col.Report.Features() {
		if col.Report.LineFor(feature).Status == cucumber.StatusPassed {
			counts.Passed++
		}
	}
	counts.Other = len(col.Report.Features()) - counts.Passed - counts.Failed
	if counts.Other < 0 {
		counts.Other = 0
	}
	return counts
}

// Chart renders a stacked bar chart of passed, failed and other features per
// build.
func Chart(w io.Writer, d *dashboard.Dashboard) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Features per build",
			Subtitle: d.Job,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	builds := make([]string, 0, len(d.Columns))
	passed := make([]opts.BarData, 0, len(d.Columns))
	failed := make([]opts.BarData, 0, len(d.Columns))
	other := make([]opts.BarData, 0, len(d.Columns))
	for _, col := range d.Columns {
		builds = append(builds, col.BuildNumber())
		counts := countFeatures(col)
		passed = append(passed, opts.BarData{Value: counts.Passed})
		failed = append(failed, opts.BarData{Value: counts.Failed})
		other = append(other, opts.BarData{Value: counts.Other})
	}

	bar.SetXAxis(builds).
		AddSeries("Passed", passed).
		AddSeries("Failed", failed).
		AddSeries("Other", other).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "features"}))

	if err := bar.Render(w); err != nil {
		return errors.Wrap(err, "unable to render chart")
	}
	return nil
}
