package jenkins

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const buildListDocument = "build list"

type buildListAnchor struct {
	Number string `xml:"number"`
}

// buildList is the subset of the job api/xml document used to resolve builds.
type buildList struct {
	Builds              []buildListAnchor `xml:"build"`
	FirstBuild          *buildListAnchor  `xml:"firstBuild"`
	LastSuccessfulBuild *buildListAnchor  `xml:"lastSuccessfulBuild"`
}

// ParseBuildList returns the build numbers listed in the job document, in
// document order, excluding the first build and the last successful build.
// Both anchors must be present.
func ParseBuildList(body string) ([]string, error) {
	doc := buildList{}
	if err := decodeXML(body, &doc); err != nil {
		return nil, NewMalformedDocumentError(BuildReference{}, buildListDocument, body, err)
	}
	if doc.FirstBuild == nil || strings.TrimSpace(doc.FirstBuild.Number) == "" {
		return nil, NewMalformedDocumentError(BuildReference{}, buildListDocument, body,
			errors.New("missing firstBuild anchor"))
	}
	if doc.LastSuccessfulBuild == nil || strings.TrimSpace(doc.LastSuccessfulBuild.Number) == "" {
		return nil, NewMalformedDocumentError(BuildReference{}, buildListDocument, body,
			errors.New("missing lastSuccessfulBuild anchor"))
	}

	first := strings.TrimSpace(doc.FirstBuild.Number)
	lastSuccessful := strings.TrimSpace(doc.LastSuccessfulBuild.Number)

	numbers := make([]string, 0, len(doc.Builds))
	for _, b := range doc.Builds {
		n := strings.TrimSpace(b.Number)
		if n == "" || n == first || n == lastSuccessful {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// ResolveBuilds fetches the job build list and returns the references of the
// window most recent builds, highest number first. A window <= 0 keeps every
// build.
func ResolveBuilds(ctx context.Context, f Fetcher, job Job, window int) ([]BuildReference, error) {
	url := job.BuildListURL()
	res, err := f.Get(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to resolve builds of job %s", job.URL())
	}
	if res.NotFound() {
		return nil, &TransportError{URL: url, StatusCode: res.StatusCode}
	}

	numbers, err := ParseBuildList(res.Body)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(numbers, func(i, j int) bool {
		return CompareBuildNumbers(numbers[i], numbers[j]) > 0
	})
	if window > 0 && len(numbers) > window {
		numbers = numbers[:window]
	}
	log.Debugf("Resolved %d builds of job %s", len(numbers), job.URL())

	refs := make([]BuildReference, 0, len(numbers))
	for _, n := range numbers {
		refs = append(refs, BuildReference{Number: n})
	}
	return refs, nil
}
