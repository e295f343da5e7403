package publish

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
)

func testDashboard() *dashboard.Dashboard {
	d := dashboard.Aggregate([]dashboard.BuildReport{{
		Build: &jenkins.Build{Reference: jenkins.BuildReference{Number: "3"}, Duration: time.Minute},
		Report: cucumber.NewTestReport("3", []cucumber.TestReportLine{
			{Feature: cucumber.Feature{Name: "Login"}, TotalSteps: 4, FailedSteps: 1, Status: cucumber.StatusFailed},
		}),
	}}, dashboard.SystemFailureThreshold)
	d.Job = "http://ci/job/kwb2b-tests/"
	return d
}

func TestArchive(t *testing.T) {
	buf := bytes.Buffer{}
	require.NoError(t, WriteArchive(&buf, testDashboard()))

	d, err := ReadArchive(&buf)
	require.NoError(t, err)
	assert.Equal(t, "http://ci/job/kwb2b-tests/", d.Job)
	require.Len(t, d.Columns, 1)
	assert.Equal(t, "3", d.Columns[0].BuildNumber())
	assert.True(t, d.Columns[0].SystemFailure)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, cucumber.StatusFailed, d.Rows[0].Cells[0].Line.Status)
}

func TestSaveArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cragg-dashboard"+ArchiveExtension)
	require.NoError(t, SaveArchive(path, testDashboard()))

	d, err := LoadArchive(path)
	require.NoError(t, err)
	assert.Len(t, d.Rows, 1)

	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))
	_, err = LoadArchive(path)
	assert.Error(t, err)
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseAfter(t *testing.T) {
	closeErr := errors.New("disk full")
	writeErr := errors.New("write failed")

	assert.NoError(t, closeAfter(failingCloser{}, "a.json.xz", nil))
	assert.ErrorIs(t, closeAfter(failingCloser{err: closeErr}, "a.json.xz", nil), closeErr)
	assert.ErrorIs(t, closeAfter(failingCloser{err: closeErr}, "a.json.xz", writeErr), writeErr)
	assert.ErrorIs(t, closeAfter(failingCloser{}, "a.json.xz", writeErr), writeErr)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "dashboards/cragg.json.xz", ObjectKey("", "/tmp/out/cragg.json.xz"))
	assert.Equal(t, "team/a/cragg.html", ObjectKey("team/a/", "cragg.html"))
}

func TestUploaderDryRun(t *testing.T) {
	_, err := NewUploader(UploaderConfig{})
	assert.Error(t, err)

	u, err := NewUploader(UploaderConfig{Bucket: "results", Region: "eu-central-1", DryRun: true})
	require.NoError(t, err)
	uri, err := u.Upload(context.Background(), "/tmp/cragg.json.xz", nil)
	require.NoError(t, err)
	assert.Equal(t, "s3://results/dashboards/cragg.json.xz", uri)
}
