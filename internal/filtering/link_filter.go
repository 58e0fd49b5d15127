package filtering

import (
	"context"

	"github.com/calab/jobscout/internal/jobsearch"
)

type linkFilter struct{}

// NewRequireLink creates a filter that removes listings without a link. The
// sent-listing ledger keys on links, so a listing without one could be
// delivered over and over.
func NewRequireLink() Filter {
	return &linkFilter{}
}

func (f *linkFilter) Name() string { return "require_link" }

func (f *linkFilter) Apply(_ context.Context, listings []jobsearch.Listing) ([]jobsearch.Listing, Step, error) {
	initial := len(listings)

	kept := make([]jobsearch.Listing, 0, initial)
	for _, l := range listings {
		if l.Link == "" {
			continue
		}
		kept = append(kept, l)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
