// Package cucumber reads the feature overview page published by the
// cucumber reports plugin for a build.
package cucumber

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/kreyling/cragg/internal/document"
	"github.com/kreyling/cragg/internal/jenkins"
)

const (
	StatusPassed = "Passed"
	StatusFailed = "Failed"

	reportDocument = "cucumber report"
)

// Positions of the feature overview columns.
const (
	columnFeature = 0
	columnTotal   = 4
	columnFailed  = 6
	columnSkipped = 7
	columnStatus  = 11

	minColumns = columnStatus + 1
)

// expectedHeader maps column positions to a fragment of their header text.
var expectedHeader = map[int]string{
	columnFeature: "feature",
	columnTotal:   "total",
	columnFailed:  "failed",
	columnSkipped: "skipped",
	columnStatus:  "status",
}

var buildNumberPattern = regexp.MustCompile(`\(no (\d+)\)`)

// absentMarkers identify pages without a report to show.
var absentMarkers = []string{
	"Not found",
	"You have no features in your cucumber report",
}

// Feature is identified by its name only.
type Feature struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// TestReportLine is the result of one feature in one report.
type TestReportLine struct {
	Feature      Feature `json:"feature"`
	FailedSteps  int     `json:"failedSteps"`
	SkippedSteps int     `json:"skippedSteps"`
	TotalSteps   int     `json:"totalSteps"`
	Status       string  `json:"status"`
}

// AbsentLine is the placeholder for a feature missing from a report.
func AbsentLine(feature Feature) TestReportLine {
	return TestReportLine{Feature: feature}
}

func (l TestReportLine) IsAbsent() bool {
	return l.Status == ""
}

func (l TestReportLine) IsFailed() bool {
	return l.Status == StatusFailed
}

// TestReport is the parsed feature overview of a build.
type TestReport struct {
	// BuildNumber is read from the report title.
	BuildNumber string           `json:"buildNumber"`
	Lines       []TestReportLine `json:"lines"`

	linesByFeature map[string]TestReportLine
}

// NewTestReport indexes lines by feature name. The first line of a feature
// wins over later duplicates.
func NewTestReport(buildNumber string, lines []TestReportLine) *TestReport {
	r := &TestReport{
		BuildNumber:    buildNumber,
		Lines:          lines,
		linesByFeature: make(map[string]TestReportLine, len(lines)),
	}
	for _, line := range lines {
		if _, ok := r.linesByFeature[line.Feature.Name]; ok {
			continue
		}
		r.linesByFeature[line.Feature.Name] = line
	}
	return r
}

// LineFor returns the line of feature, or the absent line.
func (r *TestReport) LineFor(feature Feature) TestReportLine {
	if line, ok := r.linesByFeature[feature.Name]; ok {
		return line
	}
	return AbsentLine(feature)
}

// Features returns the distinct features of the report in line order.
func (r *TestReport) Features() []Feature {
	features := make([]Feature, 0, len(r.linesByFeature))
	seen := map[string]struct{}{}
	for _, line := range r.Lines {
		if _, ok := seen[line.Feature.Name]; ok {
			continue
		}
		seen[line.Feature.Name] = struct{}{}
		features = append(features, line.Feature)
	}
	return features
}

// SortedStatuses returns the status of every line, ordered by feature name.
func (r *TestReport) SortedStatuses() []string {
	lines := append([]TestReportLine(nil), r.Lines...)
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Feature.Name < lines[j].Feature.Name
	})
	statuses := make([]string, 0, len(lines))
	for _, line := range lines {
		statuses = append(statuses, line.Status)
	}
	return statuses
}

// IsAbsent reports if the page states there is no report for the build.
func IsAbsent(text string) bool {
	for _, marker := range absentMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// ParseReport repairs and parses the feature overview page of ref. Errors
// carry an excerpt of body as it was served.
func ParseReport(body string, ref jenkins.BuildReference) (*TestReport, error) {
	doc, err := document.ParseString(Repair(body))
	if err != nil {
		return nil, jenkins.NewMalformedDocumentError(ref, reportDocument, body, err)
	}

	match := buildNumberPattern.FindStringSubmatch(document.Title(doc))
	if match == nil {
		return nil, jenkins.NewMalformedDocumentError(ref, reportDocument, body,
			errors.Errorf("no build number in title %q", document.Title(doc)))
	}

	headerChecked := false
	lines := []TestReportLine{}
	for _, row := range document.FindAll(doc, "tr") {
		if headers := document.Children(row, "th"); len(headers) >= minColumns {
			if err := checkHeader(headers); err != nil {
				return nil, jenkins.NewMalformedDocumentError(ref, reportDocument, body, err)
			}
			headerChecked = true
			continue
		}

		cells := document.Children(row, "td")
		if len(cells) == 0 {
			continue
		}
		anchor := document.Find(cells[columnFeature], "a")
		if anchor == nil {
			continue
		}
		if len(cells) < minColumns {
			return nil, jenkins.NewMalformedDocumentError(ref, reportDocument, body,
				errors.Errorf("feature row %q has %d columns, expected %d", document.Text(anchor), len(cells), minColumns))
		}
		lines = append(lines, parseLine(anchor, cells))
	}
	if !headerChecked {
		log.Warnf("Report of build %s has no column header, trusting column positions", ref.Number)
	}

	return NewTestReport(match[1], lines), nil
}

func checkHeader(headers []*html.Node) error {
	for pos, want := range expectedHeader {
		got := strings.ToLower(document.Text(headers[pos]))
		if !strings.Contains(got, want) {
			return errors.Errorf("column %d is %q, expected %q", pos, got, want)
		}
	}
	return nil
}

func parseLine(anchor *html.Node, cells []*html.Node) TestReportLine {
	return TestReportLine{
		Feature: Feature{
			Name: document.Text(anchor),
			Link: document.Attr(anchor, "href"),
		},
		TotalSteps:   parseCount(document.Text(cells[columnTotal])),
		FailedSteps:  parseCount(document.Text(cells[columnFailed])),
		SkippedSteps: parseCount(document.Text(cells[columnSkipped])),
		Status:       document.Text(cells[columnStatus]),
	}
}

// parseCount returns 0 for text that is not a non-negative integer.
func parseCount(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
