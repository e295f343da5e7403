// Package dashboard joins build metadata with cucumber reports into a
// feature by build matrix.
package dashboard

import (
	"sort"
	"time"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/jenkins"
	"github.com/kreyling/cragg/internal/metrics"
)

// BuildReport is a build with its report.
type BuildReport struct {
	Build  *jenkins.Build
	Report *cucumber.TestReport
}

// Column is one build of the matrix.
type Column struct {
	Build  *jenkins.Build       `json:"build"`
	Report *cucumber.TestReport `json:"report"`

	FailedFeatures    int      `json:"failedFeatures"`
	LongestFailureRun int      `json:"longestFailureRun"`
	SystemFailure     bool     `json:"systemFailure"`
	FailureTags       TagRanks `json:"failureTags,omitempty"`
}

// BuildNumber returns the number the report was published for.
func (c *Column) BuildNumber() string {
	return c.Report.BuildNumber
}

// Cell is the result of a feature in one build.
type Cell struct {
	Line   cucumber.TestReportLine `json:"line"`
	Report *cucumber.TestReport    `json:"-"`
}

// Row holds one cell per column, in column order.
type Row struct {
	Feature cucumber.Feature `json:"feature"`
	Cells   []Cell           `json:"cells"`
}

type Dashboard struct {
	Job         string          `json:"job"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Threshold   float64         `json:"systemFailureThreshold"`
	Columns     []*Column       `json:"columns"`
	Rows        []Row           `json:"rows"`
	Durations   *DurationStats  `json:"durations,omitempty"`
	Timers      *metrics.Timers `json:"timers,omitempty"`
}

// Aggregate builds the matrix of the given build reports. Columns are
// ordered by build number, rows by feature name, and every row has exactly
// one cell per column.
func Aggregate(reports []BuildReport, threshold float64) *Dashboard {
	sorted := append([]BuildReport(nil), reports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return jenkins.CompareBuildNumbers(sorted[i].Report.BuildNumber, sorted[j].Report.BuildNumber) < 0
	})

	d := &Dashboard{
		Threshold: threshold,
		Columns:   make([]*Column, 0, len(sorted)),
	}

	features := map[string]cucumber.Feature{}
	for _, br := range sorted {
		d.Columns = append(d.Columns, newColumn(br, threshold))
		for _, f := range br.Report.Features() {
			if _, ok := features[f.Name]; !ok {
				features[f.Name] = f
			}
		}
	}

	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	d.Rows = make([]Row, 0, len(names))
	for _, name := range names {
		row := Row{Feature: features[name], Cells: make([]Cell, 0, len(d.Columns))}
		for _, col := range d.Columns {
			row.Cells = append(row.Cells, Cell{
				Line:   col.Report.LineFor(features[name]),
				Report: col.Report,
			})
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}

func newColumn(br BuildReport, threshold float64) *Column {
	statuses := br.Report.SortedStatuses()
	col := &Column{
		Build:             br.Build,
		Report:            br.Report,
		LongestFailureRun: LongestConsecutiveFailureRun(statuses),
		SystemFailure:     IsSystemFailure(statuses, threshold),
	}
	failed := []string{}
	for _, f := range br.Report.Features() {
		if br.Report.LineFor(f).IsFailed() {
			failed = append(failed, f.Name)
		}
	}
	col.FailedFeatures = len(failed)
	col.FailureTags = NewFeatureTags(failed).Ranked()
	return col
}

// SystemFailures returns the columns flagged as system failure.
func (d *Dashboard) SystemFailures() []*Column {
	cols := []*Column{}
	for _, c := range d.Columns {
		if c.SystemFailure {
			cols = append(cols, c)
		}
	}
	return cols
}
