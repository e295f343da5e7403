package data

import (
	"bytes"
	"embed"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	efs "github.com/kreyling/cragg/internal/assets"
	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
	"github.com/kreyling/cragg/internal/render"
)

//go:embed templates
var testTemplates embed.FS

// TestDataTemplates asserts the embedded templates are present and render.
func TestDataTemplates(t *testing.T) {
	efs.UpdateData(&testTemplates)

	t.Run("templates-present", func(t *testing.T) {
		got, err := efs.GetAllFilenames(efs.GetData(), "templates")
		require.NoError(t, err)
		assert.Equal(t, []string{"templates/dashboard.html"}, got)
	})

	t.Run("dashboard-renders", func(t *testing.T) {
		tmpl, err := efs.GetData().ReadFile("templates/dashboard.html")
		require.NoError(t, err)

		build := &jenkins.Build{
			Reference:      jenkins.BuildReference{Number: "1322"},
			Duration:       time.Minute,
			StartedAt:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			ScmChanges:     []jenkins.ScmChange{{CommitID: "abc", User: "Mustermann, Max", Comment: "Fix <login>\n- keep cookie"}},
			UpstreamBuilds: []*jenkins.Build{jenkins.NewMissingBuild(jenkins.BuildReference{Number: "5", JobPath: "job/deploy/"})},
		}
		d := dashboard.Aggregate([]dashboard.BuildReport{{
			Build: build,
			Report: cucumber.NewTestReport("1322", []cucumber.TestReportLine{
				{Feature: cucumber.Feature{Name: "Login", Link: "login.html"}, TotalSteps: 5, FailedSteps: 2, Status: cucumber.StatusFailed},
			}),
		}}, dashboard.SystemFailureThreshold)
		d.Durations = dashboard.NewDurationStats([]*jenkins.Build{build})

		buf := bytes.Buffer{}
		job := jenkins.NewJob("http://ci/", "job/kwb2b-tests")
		require.NoError(t, render.HTML(&buf, tmpl, d, job))

		out := buf.String()
		assert.Contains(t, out, `href="http://ci/job/kwb2b-tests/1322/cucumber-html-reports/login.html"`)
		assert.Contains(t, out, "system-failure")
		assert.Contains(t, out, "upstream-missing")
		assert.Contains(t, out, "Fix &lt;login&gt;")
		assert.Contains(t, out, "<li>keep cookie</li>")
	})
}
