package cucumber

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/kreyling/cragg/internal/jenkins"
)

// FetchReport fetches, repairs and parses the report of ref. found is false
// when the build has no report to show; that is not an error.
func FetchReport(ctx context.Context, f jenkins.Fetcher, job jenkins.Job, ref jenkins.BuildReference) (report *TestReport, found bool, err error) {
	res, err := f.Get(ctx, job.ReportURL(ref))
	if err != nil {
		return nil, false, err
	}
	if res.NotFound() {
		log.Warnf("No report for build %s", ref.Number)
		return nil, false, nil
	}

	if IsAbsent(res.Body) {
		log.Warnf("Report of build %s has no features", ref.Number)
		return nil, false, nil
	}

	report, err = ParseReport(res.Body, ref)
	if err != nil {
		return nil, false, err
	}
	if report.BuildNumber != ref.Number {
		log.Debugf("Report requested for build %s is titled as build %s", ref.Number, report.BuildNumber)
	}
	return report, true, nil
}
