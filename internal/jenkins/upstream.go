package jenkins

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MaxUpstreamDepth is the number of upstream hops resolved beyond the
// requested build.
const MaxUpstreamDepth = 2

// BuildFetcher fetches build metadata together with its upstream chain.
type BuildFetcher struct {
	fetcher Fetcher
	job     Job
}

func NewBuildFetcher(f Fetcher, job Job) *BuildFetcher {
	return &BuildFetcher{fetcher: f, job: job}
}

// Fetch returns the metadata of ref with its upstream builds resolved up to
// MaxUpstreamDepth hops. A build the server does not know is returned as a
// missing build, never as an error.
func (bf *BuildFetcher) Fetch(ctx context.Context, ref BuildReference) (*Build, error) {
	return bf.fetch(ctx, ref, MaxUpstreamDepth)
}

// fetch resolves ref and, while depth allows, its upstream references. The
// upstream builds of one level are fetched concurrently.
func (bf *BuildFetcher) fetch(ctx context.Context, ref BuildReference, depth int) (*Build, error) {
	build, err := bf.FetchOne(ctx, ref)
	if err != nil {
		return nil, err
	}
	if depth <= 0 || len(build.UpstreamReferences) == 0 {
		return build, nil
	}

	upstreams := make([]*Build, len(build.UpstreamReferences))
	g, gctx := errgroup.WithContext(ctx)
	for i, upstreamRef := range build.UpstreamReferences {
		i, upstreamRef := i, upstreamRef
		g.Go(func() error {
			upstream, err := bf.fetch(gctx, upstreamRef, depth-1)
			if err != nil {
				return err
			}
			upstreams[i] = upstream
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrapf(err, "unable to resolve upstream builds of %s%s", ref.JobPath, ref.Number)
	}
	return build.WithUpstreamBuilds(upstreams), nil
}

// FetchOne fetches and parses the metadata of ref only.
func (bf *BuildFetcher) FetchOne(ctx context.Context, ref BuildReference) (*Build, error) {
	res, err := bf.fetcher.Get(ctx, bf.job.BuildInfoURL(ref))
	if err != nil {
		return nil, err
	}
	if IsBuildNotFound(res) {
		log.Warnf("Build %s%s not found, using an empty placeholder", ref.JobPath, ref.Number)
		return NewMissingBuild(ref), nil
	}
	return ParseBuildInfo(res.Body, ref)
}
