package jenkins

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"k8s.io/utils/ptr"
)

const (
	buildInfoDocument = "build information"

	// externalUserSuffix marks identities synced from an external directory.
	externalUserSuffix = " (ext)"
)

// buildNotFoundMarkers identify error pages served with a success status by
// proxies in front of the CI server.
var buildNotFoundMarkers = []string{
	"Error 404 Not Found",
	"Not Found</title>",
}

type buildCause struct {
	Class         string `xml:"_class,attr"`
	UserName      string `xml:"userName"`
	UpstreamBuild string `xml:"upstreamBuild"`
	UpstreamURL   string `xml:"upstreamUrl"`
}

type buildAction struct {
	Causes []buildCause `xml:"cause"`
}

type changeSetItem struct {
	CommitID string `xml:"commitId"`
	Author   struct {
		FullName string `xml:"fullName"`
	} `xml:"author"`
	Comment string `xml:"comment"`
}

type changeSet struct {
	Items []changeSetItem `xml:"item"`
}

// buildInfo is the subset of the build api/xml document used by the dashboard.
type buildInfo struct {
	Duration  string        `xml:"duration"`
	Timestamp string        `xml:"timestamp"`
	Actions   []buildAction `xml:"action"`
	// Freestyle jobs report a single changeSet, pipelines a changeSets list.
	ChangeSet  []changeSet `xml:"changeSet"`
	ChangeSets []changeSet `xml:"changeSets"`
}

// IsBuildNotFound reports if the response signals a build that does not exist.
// The error page markers are only looked for in bodies that are not an XML
// document or whose root is html, so a build document quoting them in a
// commit message still counts as found.
func IsBuildNotFound(res *Response) bool {
	if res.NotFound() {
		return true
	}
	if root, ok := rootElement(res.Body); ok && !strings.EqualFold(root, "html") {
		return false
	}
	for _, marker := range buildNotFoundMarkers {
		if strings.Contains(res.Body, marker) {
			return true
		}
	}
	return false
}

// ParseBuildInfo parses a build metadata document for ref. Upstream
// references keep the order of the causes in the document; a cause repeating
// an already listed upstream build is dropped.
func ParseBuildInfo(body string, ref BuildReference) (*Build, error) {
	doc := buildInfo{}
	if err := decodeXML(body, &doc); err != nil {
		return nil, NewMalformedDocumentError(ref, buildInfoDocument, body, err)
	}

	durationMs, err := strconv.ParseInt(strings.TrimSpace(doc.Duration), 10, 64)
	if err != nil {
		return nil, NewMalformedDocumentError(ref, buildInfoDocument, body,
			errors.Wrap(err, "invalid duration"))
	}
	startedAtMs, err := strconv.ParseInt(strings.TrimSpace(doc.Timestamp), 10, 64)
	if err != nil {
		return nil, NewMalformedDocumentError(ref, buildInfoDocument, body,
			errors.Wrap(err, "invalid timestamp"))
	}

	build := &Build{
		Reference: ref,
		Duration:  time.Duration(durationMs) * time.Millisecond,
		StartedAt: time.UnixMilli(startedAtMs).UTC(),
	}

	seen := map[BuildReference]struct{}{}
	for _, action := range doc.Actions {
		for _, cause := range action.Causes {
			if cause.UserName != "" && build.StartedByUser == nil {
				build.StartedByUser = ptr.To(normalizeUser(cause.UserName))
			}
			if cause.UpstreamBuild == "" {
				continue
			}
			upstream := BuildReference{
				Number:  strings.TrimSpace(cause.UpstreamBuild),
				JobPath: strings.TrimSpace(cause.UpstreamURL),
			}
			if _, ok := seen[upstream]; ok {
				continue
			}
			seen[upstream] = struct{}{}
			build.UpstreamReferences = append(build.UpstreamReferences, upstream)
		}
	}

	for _, cs := range append(doc.ChangeSet, doc.ChangeSets...) {
		for _, item := range cs.Items {
			build.ScmChanges = append(build.ScmChanges, ScmChange{
				CommitID: strings.TrimSpace(item.CommitID),
				User:     normalizeUser(item.Author.FullName),
				Comment:  item.Comment,
			})
		}
	}

	return build, nil
}

// normalizeUser strips the external identity marker from a user name.
func normalizeUser(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), externalUserSuffix)
}
