package dedup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/jobsearch"
)

type fakeLedger struct {
	sent    map[string]bool
	failOn  string
	records int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{sent: make(map[string]bool)}
}

func (f *fakeLedger) key(userID int64, link string) string {
	return fmt.Sprintf("%d|%s", userID, link)
}

func (f *fakeLedger) WasListingSent(_ context.Context, userID int64, link string) (bool, error) {
	if link == f.failOn {
		return false, errors.New("ledger unavailable")
	}
	return f.sent[f.key(userID, link)], nil
}

func (f *fakeLedger) RecordListingSent(_ context.Context, userID int64, link string) error {
	f.records++
	f.sent[f.key(userID, link)] = true
	return nil
}

func listings(links ...string) []jobsearch.Listing {
	out := make([]jobsearch.Listing, 0, len(links))
	for _, l := range links {
		out = append(out, jobsearch.Listing{Title: "t", Link: l})
	}
	return out
}

func TestTakeCapsAndRecords(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	f := NewFilter(ledger, zap.NewNop())

	in := listings("l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8")
	res, err := f.Take(context.Background(), 1, in, DefaultLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Listings) != 5 {
		t.Fatalf("expected 5 listings, got %d", len(res.Listings))
	}
	if res.AllSeen {
		t.Fatal("AllSeen must be false when listings were delivered")
	}
	if ledger.records != 5 {
		t.Fatalf("each delivered listing must be recorded, got %d records", ledger.records)
	}
}

func TestTakeNeverRepeatsAcrossCalls(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	f := NewFilter(ledger, zap.NewNop())
	ctx := context.Background()

	first, err := f.Take(ctx, 1, listings("a", "b", "c"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := f.Take(ctx, 1, listings("a", "b", "c"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, l := range first.Listings {
		seen[l.Link] = true
	}
	for _, l := range second.Listings {
		if seen[l.Link] {
			t.Fatalf("link %q delivered twice", l.Link)
		}
	}
}

func TestTakeAllSeenDistinguishedFromNoResults(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	f := NewFilter(ledger, zap.NewNop())
	ctx := context.Background()

	if _, err := f.Take(ctx, 1, listings("x", "y"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same results again: everything was already delivered.
	res, err := f.Take(ctx, 1, listings("x", "y"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AllSeen {
		t.Fatal("expected AllSeen for a fully filtered non-empty input")
	}
	if len(res.Listings) != 0 {
		t.Fatalf("expected no listings, got %v", res.Listings)
	}

	// Empty input is a different condition.
	res, err = f.Take(ctx, 1, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AllSeen {
		t.Fatal("AllSeen must stay false for an empty search result")
	}
}

func TestTakeIsScopedPerUser(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	f := NewFilter(ledger, zap.NewNop())
	ctx := context.Background()

	if _, err := f.Take(ctx, 1, listings("shared"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := f.Take(ctx, 2, listings("shared"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Listings) != 1 {
		t.Fatal("another user must still receive the listing")
	}
}

func TestTakePropagatesLedgerFailure(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	ledger.failOn = "bad"
	f := NewFilter(ledger, zap.NewNop())

	if _, err := f.Take(context.Background(), 1, listings("bad"), 0); err == nil {
		t.Fatal("expected ledger failure to propagate")
	}
}
