package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/jenkins"
)

func line(name, status string) cucumber.TestReportLine {
	return cucumber.TestReportLine{
		Feature: cucumber.Feature{Name: name, Link: name + ".html"},
		Status:  status,
	}
}

func buildReport(number string, lines ...cucumber.TestReportLine) BuildReport {
	return BuildReport{
		Build:  &jenkins.Build{Reference: jenkins.BuildReference{Number: number}},
		Report: cucumber.NewTestReport(number, lines),
	}
}

func TestAggregate(t *testing.T) {
	reports := []BuildReport{
		buildReport("10", line("Search", passed), line("Login", failed)),
		buildReport("9", line("Login", passed), line("Checkout", passed)),
		buildReport("11", line("Admin", failed), line("Search", passed), line("Login", passed)),
	}

	d := Aggregate(reports, SystemFailureThreshold)

	require.Len(t, d.Columns, 3)
	assert.Equal(t, "9", d.Columns[0].BuildNumber())
	assert.Equal(t, "10", d.Columns[1].BuildNumber())
	assert.Equal(t, "11", d.Columns[2].BuildNumber())

	names := []string{}
	for _, row := range d.Rows {
		names = append(names, row.Feature.Name)
		assert.Len(t, row.Cells, len(d.Columns))
		for i, cell := range row.Cells {
			assert.Same(t, d.Columns[i].Report, cell.Report)
		}
	}
	assert.Equal(t, []string{"Admin", "Checkout", "Login", "Search"}, names)

	admin := d.Rows[0]
	assert.True(t, admin.Cells[0].Line.IsAbsent())
	assert.True(t, admin.Cells[1].Line.IsAbsent())
	assert.Equal(t, failed, admin.Cells[2].Line.Status)
	assert.Equal(t, "Admin.html", admin.Feature.Link)

	login := d.Rows[2]
	assert.Equal(t, []string{passed, failed, passed}, []string{
		login.Cells[0].Line.Status, login.Cells[1].Line.Status, login.Cells[2].Line.Status,
	})

	assert.False(t, d.Columns[0].SystemFailure)
	assert.True(t, d.Columns[1].SystemFailure)
	assert.Equal(t, 1, d.Columns[1].LongestFailureRun)
	assert.Equal(t, 1, d.Columns[1].FailedFeatures)
	assert.Equal(t, TagRanks{{Tag: "login", Count: 1}}, d.Columns[1].FailureTags)
	assert.Len(t, d.SystemFailures(), 2)
}

func TestAggregateEveryFeatureOnce(t *testing.T) {
	reports := []BuildReport{
		buildReport("1", line("A", passed), line("B", passed), line("A", failed)),
		buildReport("2", line("C", failed)),
		buildReport("3"),
	}

	d := Aggregate(reports, SystemFailureThreshold)

	seen := map[string]int{}
	for _, row := range d.Rows {
		seen[row.Feature.Name]++
		assert.Len(t, row.Cells, 3)
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, seen)
	assert.Equal(t, passed, d.Rows[0].Cells[0].Line.Status)
}

func TestAggregateEmpty(t *testing.T) {
	d := Aggregate(nil, SystemFailureThreshold)
	assert.Empty(t, d.Columns)
	assert.Empty(t, d.Rows)
}
