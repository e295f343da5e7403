package jenkins

import "strings"

const (
	apiXMLPath        = "api/xml"
	reportBasePath    = "/cucumber-html-reports/"
	reportOverviewURL = reportBasePath + "feature-overview.html"
)

// Job addresses a Jenkins job. BaseURL is the Jenkins root and Path the job
// location below it, e.g. "view/tests/job/acceptance-tests/".
type Job struct {
	BaseURL string
	Path    string
}

// NewJob normalizes the slashes of the base URL and the job path.
func NewJob(baseURL, path string) Job {
	baseURL = strings.TrimRight(baseURL, "/") + "/"
	path = strings.Trim(path, "/")
	if path != "" {
		path += "/"
	}
	return Job{BaseURL: baseURL, Path: path}
}

// URL returns the job base URL.
func (j Job) URL() string {
	return j.BaseURL + j.Path
}

// BuildListURL returns the document listing the builds of the job.
func (j Job) BuildListURL() string {
	return j.URL() + apiXMLPath
}

// jobURL returns the base URL of the job owning ref.
func (j Job) jobURL(ref BuildReference) string {
	if ref.JobPath == "" {
		return j.URL()
	}
	return j.BaseURL + strings.TrimLeft(ref.JobPath, "/")
}

// BuildURL returns the human facing page of the build.
func (j Job) BuildURL(ref BuildReference) string {
	return j.jobURL(ref) + ref.Number + "/"
}

// BuildInfoURL returns the build metadata document.
func (j Job) BuildInfoURL(ref BuildReference) string {
	return j.jobURL(ref) + ref.Number + "/" + apiXMLPath
}

// ReportURL returns the cucumber feature overview page of the build.
func (j Job) ReportURL(ref BuildReference) string {
	return j.jobURL(ref) + ref.Number + reportOverviewURL
}

// FeatureURL returns the detail page of a feature in the build report.
func (j Job) FeatureURL(ref BuildReference, link string) string {
	return j.jobURL(ref) + ref.Number + reportBasePath + link
}
