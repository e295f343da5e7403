package jenkins

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobURLs(t *testing.T) {
	job := NewJob("http://ci.example.com/", "/view/tests/job/acceptance")
	ref := BuildReference{Number: "12"}
	upstream := BuildReference{Number: "1518", JobPath: "job/some-other-project/"}

	assert.Equal(t, "http://ci.example.com/view/tests/job/acceptance/", job.URL())
	assert.Equal(t, "http://ci.example.com/view/tests/job/acceptance/api/xml", job.BuildListURL())
	assert.Equal(t, "http://ci.example.com/view/tests/job/acceptance/12/", job.BuildURL(ref))
	assert.Equal(t, "http://ci.example.com/view/tests/job/acceptance/12/api/xml", job.BuildInfoURL(ref))
	assert.Equal(t, "http://ci.example.com/view/tests/job/acceptance/12/cucumber-html-reports/feature-overview.html", job.ReportURL(ref))
	assert.Equal(t, "http://ci.example.com/view/tests/job/acceptance/12/cucumber-html-reports/report-feature_login.html",
		job.FeatureURL(ref, "report-feature_login.html"))
	assert.Equal(t, "http://ci.example.com/job/some-other-project/1518/api/xml", job.BuildInfoURL(upstream))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short"))
	long := strings.Repeat("ä", 300)
	assert.Equal(t, strings.Repeat("ä", maxExcerptLength), Excerpt(long))
}
