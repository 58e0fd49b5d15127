package filtering

import (
	"context"
	"strings"

	"github.com/calab/jobscout/internal/jobsearch"
)

type companiesFilter struct {
	companies map[string]struct{}
}

// NewExcludedCompanies creates a filter that removes listings from the
// configured companies. Matching is case-insensitive.
func NewExcludedCompanies(companies []string) Filter {
	set := make(map[string]struct{}, len(companies))
	for _, c := range companies {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return &companiesFilter{companies: set}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Apply(_ context.Context, listings []jobsearch.Listing) ([]jobsearch.Listing, Step, error) {
	initial := len(listings)
	if len(f.companies) == 0 {
		return listings, Step{Initial: initial, Left: initial}, nil
	}

	kept := make([]jobsearch.Listing, 0, initial)
	for _, l := range listings {
		if _, excluded := f.companies[strings.ToLower(strings.TrimSpace(l.Company))]; excluded {
			continue
		}
		kept = append(kept, l)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
