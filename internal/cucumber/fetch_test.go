package cucumber_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/jenkins"
	"github.com/kreyling/cragg/internal/jenkins/jenkinstest"
)

const brokenPage = `<html><title>Cucumber Reports</title><body>Line one<br>Line two</body></html>`

func TestFetchReport(t *testing.T) {
	fixture, err := os.ReadFile("testdata/feature-overview.html")
	require.NoError(t, err)

	job := jenkins.NewJob("http://ci/", "job/kwb2b-tests")
	present := jenkins.BuildReference{Number: "1322"}
	empty := jenkins.BuildReference{Number: "1321"}
	deleted := jenkins.BuildReference{Number: "1320"}
	broken := jenkins.BuildReference{Number: "1319"}
	offline := jenkins.BuildReference{Number: "1318"}

	fetcher := jenkinstest.NewFetcher().
		Add(job.ReportURL(present), string(fixture)).
		Add(job.ReportURL(empty), "<html><h2>You have no features in your cucumber report</h2></html>").
		AddStatus(job.ReportURL(broken), http.StatusOK, brokenPage).
		AddError(job.ReportURL(offline), errors.New("connection reset"))
	ctx := context.Background()

	report, found, err := cucumber.FetchReport(ctx, fetcher, job, present)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1322", report.BuildNumber)

	for _, ref := range []jenkins.BuildReference{empty, deleted} {
		report, found, err = cucumber.FetchReport(ctx, fetcher, job, ref)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, report)
	}

	_, _, err = cucumber.FetchReport(ctx, fetcher, job, broken)
	var malformed *jenkins.MalformedDocumentError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, brokenPage, malformed.Excerpt, "excerpt keeps the body as served")

	_, _, err = cucumber.FetchReport(ctx, fetcher, job, offline)
	var transport *jenkins.TransportError
	assert.True(t, errors.As(err, &transport))
}
