package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/jobsearch"
)

// searcher wraps an inner search with the filter pipeline.
type searcher struct {
	inner  Searchable
	steps  []Filter
	logger *zap.Logger
}

// Searchable is the search being decorated.
type Searchable interface {
	Search(ctx context.Context, role, location string) ([]jobsearch.Listing, error)
}

// NewSearcher decorates inner so every search result passes through steps.
func NewSearcher(inner Searchable, steps []Filter, logger *zap.Logger) Searchable {
	if len(steps) == 0 {
		return inner
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &searcher{inner: inner, steps: steps, logger: logger}
}

func (s *searcher) Search(ctx context.Context, role, location string) ([]jobsearch.Listing, error) {
	listings, err := s.inner.Search(ctx, role, location)
	if err != nil {
		return nil, err
	}
	return Run(ctx, s.logger, s.steps, listings)
}
