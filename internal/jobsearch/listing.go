// Package jobsearch finds job listings across independent external sources.
package jobsearch

// Listing is one job posting candidate. Listings are transient: they are
// produced by a source, filtered against the sent-listing ledger and shown to
// the user, but never persisted beyond their link.
type Listing struct {
	Title    string
	Company  string
	Location string
	Link     string
	Source   string
}

// Interleave combines per-source result slices round-robin so the first few
// listings shown to the user include variety instead of being dominated by a
// single source.
func Interleave(groups [][]Listing) []Listing {
	total := 0
	for _, g := range groups {
		total += len(g)
	}

	combined := make([]Listing, 0, total)
	for i := 0; len(combined) < total; i++ {
		for _, g := range groups {
			if i < len(g) {
				combined = append(combined, g[i])
			}
		}
	}

	return combined
}
