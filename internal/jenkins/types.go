package jenkins

import (
	"strconv"
	"strings"
	"time"
)

// BuildReference identifies a build within a job. JobPath is relative to the
// Jenkins base URL (e.g. "job/some-other-project/"); an empty JobPath refers
// to the job the dashboard was requested for.
type BuildReference struct {
	Number  string `json:"number"`
	JobPath string `json:"jobPath,omitempty"`
}

// Less orders references by job path, then numerically by build number.
func (r BuildReference) Less(o BuildReference) bool {
	if r.JobPath != o.JobPath {
		return r.JobPath < o.JobPath
	}
	return CompareBuildNumbers(r.Number, o.Number) < 0
}

// CompareBuildNumbers compares two build numbers numerically, falling back to
// a lexical comparison when either is not an integer.
func CompareBuildNumbers(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return ai - bi
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ScmChange is a single source control change included in a build.
type ScmChange struct {
	CommitID string `json:"commitId"`
	User     string `json:"user"`
	// Comment is kept verbatim: the first line is the heading, the following
	// lines may be list items.
	Comment string `json:"comment"`
}

// Heading returns the first line of the comment.
func (c ScmChange) Heading() string {
	heading, _, _ := strings.Cut(c.Comment, "\n")
	return strings.TrimSpace(heading)
}

// Details returns the non empty comment lines after the heading, with list
// markers removed.
func (c ScmChange) Details() []string {
	_, rest, _ := strings.Cut(c.Comment, "\n")
	details := []string{}
	for _, line := range strings.Split(rest, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "-*"))
		if line != "" {
			details = append(details, line)
		}
	}
	return details
}

// Build holds the metadata of a single build.
type Build struct {
	Reference BuildReference `json:"reference"`

	// Missing marks the build as not found on the CI server. A missing build
	// carries only its reference.
	Missing bool `json:"missing,omitempty"`

	Duration      time.Duration `json:"duration"`
	StartedAt     time.Time     `json:"startedAt"`
	StartedByUser *string       `json:"startedByUser,omitempty"`

	UpstreamReferences []BuildReference `json:"upstreamReferences,omitempty"`
	UpstreamBuilds     []*Build         `json:"upstreamBuilds,omitempty"`
	ScmChanges         []ScmChange      `json:"scmChanges,omitempty"`
}

// NewMissingBuild returns the placeholder used for builds the CI server
// reports as not found.
func NewMissingBuild(ref BuildReference) *Build {
	return &Build{Reference: ref, Missing: true}
}

// WithUpstreamBuilds returns a copy of b with the resolved upstream builds set.
// b is not modified.
func (b *Build) WithUpstreamBuilds(upstreams []*Build) *Build {
	nb := *b
	nb.UpstreamBuilds = append([]*Build(nil), upstreams...)
	return &nb
}

// StartedBy returns a short description of what triggered the build.
func (b *Build) StartedBy() string {
	switch {
	case b.Missing:
		return "unknown (build not found)"
	case b.StartedByUser != nil:
		return *b.StartedByUser
	case len(b.UpstreamReferences) > 0:
		return "upstream " + b.UpstreamReferences[0].JobPath + b.UpstreamReferences[0].Number
	case len(b.ScmChanges) > 0:
		return "scm change"
	}
	return ""
}
