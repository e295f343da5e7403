package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/jenkins"
	"github.com/kreyling/cragg/internal/metrics"
)

const (
	stageResolve   = "resolve"
	stageFetch     = "fetch"
	stageAggregate = "aggregate"
)

// Collector gathers the dashboard of a job.
type Collector struct {
	fetcher   jenkins.Fetcher
	job       jenkins.Job
	window    int
	threshold float64
}

// NewCollector creates a collector over the window most recent builds of job.
func NewCollector(f jenkins.Fetcher, job jenkins.Job, window int) *Collector {
	return &Collector{
		fetcher:   f,
		job:       job,
		window:    window,
		threshold: SystemFailureThreshold,
	}
}

// Collect resolves the builds of the job, fetches the metadata and report of
// each build concurrently, drops builds without a report and aggregates the
// rest. Any error other than a missing build or an absent report fails the
// whole collection.
func (c *Collector) Collect(ctx context.Context) (*Dashboard, error) {
	timers := metrics.NewTimers()

	timers.Set(stageResolve)
	refs, err := jenkins.ResolveBuilds(ctx, c.fetcher, c.job, c.window)
	if err != nil {
		return nil, err
	}
	log.Infof("Collecting %d builds of %s", len(refs), c.job.URL())

	timers.Set(stageFetch)
	reports, err := c.fetchAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	timers.Set(stageAggregate)
	present := make([]BuildReport, 0, len(reports))
	builds := make([]*jenkins.Build, 0, len(reports))
	for _, br := range reports {
		if br == nil {
			continue
		}
		present = append(present, *br)
		builds = append(builds, br.Build)
	}
	d := Aggregate(present, c.threshold)
	d.Job = c.job.URL()
	d.GeneratedAt = time.Now().UTC()
	d.Durations = NewDurationStats(builds)
	timers.Stop()
	d.Timers = timers

	log.Infof("Collected %d of %d builds with a report, %d features, %d system failures",
		len(d.Columns), len(refs), len(d.Rows), len(d.SystemFailures()))
	return d, nil
}

// fetchAll returns one entry per reference, nil where the build has no report.
func (c *Collector) fetchAll(ctx context.Context, refs []jenkins.BuildReference) ([]*BuildReport, error) {
	builds := jenkins.NewBuildFetcher(c.fetcher, c.job)
	reports := make([]*BuildReport, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			br, err := c.fetchBuild(gctx, builds, ref)
			if err != nil {
				return errors.Wrapf(err, "unable to collect build %s", ref.Number)
			}
			reports[i] = br
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// fetchBuild fetches the metadata and the report of ref concurrently.
func (c *Collector) fetchBuild(ctx context.Context, builds *jenkins.BuildFetcher, ref jenkins.BuildReference) (*BuildReport, error) {
	var (
		build  *jenkins.Build
		report *cucumber.TestReport
		found  bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		build, err = builds.Fetch(gctx, ref)
		return err
	})
	g.Go(func() (err error) {
		report, found, err = cucumber.FetchReport(gctx, c.fetcher, c.job, ref)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !found {
		log.Debugf("Skipping build %s without report", ref.Number)
		return nil, nil
	}
	return &BuildReport{Build: build, Report: report}, nil
}
