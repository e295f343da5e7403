package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kreyling/cragg/internal/dashboard"
)

// Table writes the feature by build matrix followed by one summary row per
// build.
func Table(w io.Writer, d *dashboard.Dashboard) {
	tb := table.NewWriter()
	tb.SetOutputMirror(w)
	tb.SetStyle(table.StyleLight)

	header := table.Row{"Feature"}
	for _, col := range d.Columns {
		header = append(header, col.BuildNumber())
	}
	tb.AppendHeader(header)

	for _, row := range d.Rows {
		r := table.Row{row.Feature.Name}
		for _, cell := range row.Cells {
			r = append(r, cellText(cell))
		}
		tb.AppendRow(r)
	}

	tb.AppendSeparator()
	failed := table.Row{"Failed features"}
	system := table.Row{"System failure"}
	for _, col := range d.Columns {
		failed = append(failed, col.FailedFeatures)
		system = append(system, yesNo(col.SystemFailure))
	}
	tb.AppendFooter(failed)
	tb.AppendFooter(system)
	tb.Render()
}

// Builds writes the provenance of every build.
func Builds(w io.Writer, d *dashboard.Dashboard) {
	tb := table.NewWriter()
	tb.SetOutputMirror(w)
	tb.AppendHeader(table.Row{"Build", "Started", "Duration", "Started by", "Upstreams", "Changes", "Failure tags"})
	for _, col := range d.Columns {
		b := col.Build
		started, duration := "", ""
		if !b.Missing {
			started = b.StartedAt.Format(timeLayout)
			duration = b.Duration.String()
		}
		tb.AppendRow(table.Row{
			col.BuildNumber(),
			started,
			duration,
			b.StartedBy(),
			len(b.UpstreamBuilds),
			len(b.ScmChanges),
			col.FailureTags.String(),
		})
	}
	tb.Render()

	if d.Durations != nil {
		fmt.Fprintf(w, "Durations (s): min %.0f, median %.0f, mean %.0f, p90 %.0f, max %.0f\n",
			d.Durations.Min, d.Durations.Median, d.Durations.Mean, d.Durations.P90, d.Durations.Max)
	}
}

func cellText(cell dashboard.Cell) string {
	if cell.Line.IsAbsent() {
		return "-"
	}
	if cell.Line.IsFailed() {
		return fmt.Sprintf("%s (%d/%d)", cell.Line.Status, cell.Line.FailedSteps, cell.Line.TotalSteps)
	}
	return cell.Line.Status
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
