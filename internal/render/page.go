// Package render turns a dashboard into documents: an HTML page, a terminal
// table, a spreadsheet and a chart.
package render

import (
	"fmt"
	"time"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
)

const timeLayout = "2006-01-02 15:04"

// Page is the view of a dashboard used by the HTML template.
type Page struct {
	Title       string
	JobURL      string
	GeneratedAt string
	Threshold   string
	Columns     []PageColumn
	Rows        []PageRow
	Durations   *dashboard.DurationStats
}

type PageColumn struct {
	Number            string
	BuildURL          string
	ReportURL         string
	StartedAt         string
	Duration          string
	StartedBy         string
	SystemFailure     bool
	LongestFailureRun int
	FailedFeatures    int
	FailureTags       string
	Upstreams         []PageUpstream
	Changes           []PageChange
}

// PageUpstream is a flattened node of the upstream tree.
type PageUpstream struct {
	Label   string
	URL     string
	Depth   int
	Missing bool
}

type PageChange struct {
	CommitID string
	User     string
	Heading  string
	Details  []string
}

type PageRow struct {
	Feature string
	Cells   []PageCell
}

type PageCell struct {
	Status string
	Class  string
	URL    string
	Steps  string
}

// NewPage builds the view of d. Links resolve against job.
func NewPage(d *dashboard.Dashboard, job jenkins.Job) *Page {
	p := &Page{
		Title:       "Regression dashboard " + job.Path,
		JobURL:      job.URL(),
		GeneratedAt: d.GeneratedAt.Format(timeLayout),
		Threshold:   fmt.Sprintf("%.0f%%", d.Threshold*100),
		Durations:   d.Durations,
	}

	for _, col := range d.Columns {
		p.Columns = append(p.Columns, newPageColumn(col, job))
	}

	for _, row := range d.Rows {
		pr := PageRow{Feature: row.Feature.Name}
		for i, cell := range row.Cells {
			pr.Cells = append(pr.Cells, newPageCell(cell.Line, d.Columns[i].Build.Reference, job))
		}
		p.Rows = append(p.Rows, pr)
	}
	return p
}

func newPageColumn(col *dashboard.Column, job jenkins.Job) PageColumn {
	ref := col.Build.Reference
	pc := PageColumn{
		Number:            col.BuildNumber(),
		BuildURL:          job.BuildURL(ref),
		ReportURL:         job.ReportURL(ref),
		StartedBy:         col.Build.StartedBy(),
		SystemFailure:     col.SystemFailure,
		LongestFailureRun: col.LongestFailureRun,
		FailedFeatures:    col.FailedFeatures,
		FailureTags:       col.FailureTags.String(),
	}
	if !col.Build.Missing {
		pc.StartedAt = col.Build.StartedAt.Format(timeLayout)
		pc.Duration = col.Build.Duration.Round(time.Second).String()
	}
	pc.Upstreams = flattenUpstreams(col.Build.UpstreamBuilds, job, 1)
	for _, change := range col.Build.ScmChanges {
		pc.Changes = append(pc.Changes, PageChange{
			CommitID: change.CommitID,
			User:     change.User,
			Heading:  change.Heading(),
			Details:  change.Details(),
		})
	}
	return pc
}

// flattenUpstreams lists the upstream tree depth first.
func flattenUpstreams(builds []*jenkins.Build, job jenkins.Job, depth int) []PageUpstream {
	var ups []PageUpstream
	for _, b := range builds {
		ups = append(ups, PageUpstream{
			Label:   b.Reference.JobPath + b.Reference.Number,
			URL:     job.BuildURL(b.Reference),
			Depth:   depth,
			Missing: b.Missing,
		})
		ups = append(ups, flattenUpstreams(b.UpstreamBuilds, job, depth+1)...)
	}
	return ups
}

func newPageCell(line cucumber.TestReportLine, ref jenkins.BuildReference, job jenkins.Job) PageCell {
	if line.IsAbsent() {
		return PageCell{Class: "absent"}
	}
	cell := PageCell{
		Status: line.Status,
		Class:  statusClass(line.Status),
		Steps:  fmt.Sprintf("%d failed, %d skipped of %d steps", line.FailedSteps, line.SkippedSteps, line.TotalSteps),
	}
	if line.Feature.Link != "" {
		cell.URL = job.FeatureURL(ref, line.Feature.Link)
	}
	return cell
}

func statusClass(status string) string {
	switch status {
	case cucumber.StatusPassed:
		return "passed"
	case cucumber.StatusFailed:
		return "failed"
	}
	return "other"
}
