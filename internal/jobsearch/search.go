package jobsearch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is one external job-listing provider. Search returns the listings
// matching the role and location, each tagged with the source name.
type Source interface {
	Name() string
	Search(ctx context.Context, role, location string) ([]Listing, error)
}

// Multi fans a search out to all configured sources. Sources are independent:
// a failing or empty source only degrades result completeness, it never
// aborts the search.
type Multi struct {
	sources []Source
	logger  *zap.Logger
}

func NewMulti(logger *zap.Logger, sources ...Source) *Multi {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Multi{sources: sources, logger: logger}
}

// Search queries every source concurrently and merges the results with a
// round-robin interleave. The per-source order is stable so the interleave is
// deterministic for a given set of responses.
func (m *Multi) Search(ctx context.Context, role, location string) ([]Listing, error) {
	groups := make([][]Listing, len(m.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range m.sources {
		g.Go(func() error {
			listings, err := src.Search(gctx, role, location)
			if err != nil {
				// Source failures are logged, not surfaced: the other
				// sources still contribute their results.
				m.logger.Warn("job source failed",
					zap.String("source", src.Name()),
					zap.String("role", role),
					zap.String("location", location),
					zap.Error(err),
				)
				return nil
			}

			m.logger.Debug("job source answered",
				zap.String("source", src.Name()),
				zap.Int("listings", len(listings)),
			)
			groups[i] = listings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Interleave(groups), nil
}
