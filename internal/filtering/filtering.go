// Package filtering applies configurable cleanup steps to raw search results
// before they reach deduplication and the user.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/jobsearch"
)

// Filter represents a single filtering step applied to listings.
type Filter interface {
	Name() string
	Apply(ctx context.Context, listings []jobsearch.Listing) ([]jobsearch.Listing, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, listings []jobsearch.Listing) ([]jobsearch.Listing, error) {
	for _, step := range steps {
		next, info, err := step.Apply(ctx, listings)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if logger != nil {
			logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		listings = next
	}

	return listings, nil
}
