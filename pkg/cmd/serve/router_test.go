package serve

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
)

type fakeCollector struct {
	d     *dashboard.Dashboard
	err   error
	calls int
}

func (f *fakeCollector) Collect(ctx context.Context) (*dashboard.Dashboard, error) {
	f.calls++
	return f.d, f.err
}

var testJob = jenkins.NewJob("http://ci/", "job/kwb2b-tests")

func testDashboard() *dashboard.Dashboard {
	return dashboard.Aggregate([]dashboard.BuildReport{{
		Build: &jenkins.Build{Reference: jenkins.BuildReference{Number: "8"}},
		Report: cucumber.NewTestReport("8", []cucumber.TestReportLine{
			{Feature: cucumber.Feature{Name: "Login"}, Status: cucumber.StatusPassed},
		}),
	}}, dashboard.SystemFailureThreshold)
}

func serveRequest(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter(t *testing.T) {
	collector := &fakeCollector{d: testDashboard()}
	h := NewRouter(collector, testJob, []byte("<p>[[ range .Rows ]][[ .Feature ]][[ end ]]</p>"))

	rec := serveRequest(h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>Login</p>", rec.Body.String())

	rec = serveRequest(h, "/api/v1/dashboard")
	assert.Equal(t, http.StatusOK, rec.Code)
	d := dashboard.Dashboard{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Len(t, d.Rows, 1)

	rec = serveRequest(h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, collector.calls)

	rec = serveRequest(h, "/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "transport", err: &jenkins.TransportError{URL: "http://ci/job/a/api/xml", StatusCode: 503}, want: http.StatusBadGateway},
		{name: "malformed", err: jenkins.NewMalformedDocumentError(jenkins.BuildReference{Number: "1"}, "build information", "<x", errors.New("eof")), want: http.StatusBadGateway},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRouter(&fakeCollector{err: tc.err}, testJob, nil)
			rec := serveRequest(h, "/api/v1/dashboard")
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}
