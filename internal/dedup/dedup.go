// Package dedup filters job listings already delivered to a user against the
// persistent sent-listing ledger.
package dedup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/jobsearch"
)

// DefaultLimit caps how many listings a single delivery may contain.
const DefaultLimit = 5

// Ledger is the persisted set of (user, link) pairs already delivered.
type Ledger interface {
	WasListingSent(ctx context.Context, userID int64, link string) (bool, error)
	RecordListingSent(ctx context.Context, userID int64, link string) error
}

// Result is the outcome of one dedup pass. AllSeen distinguishes "every
// search result was already delivered" from "the search matched nothing" so
// the caller can word the two messages differently.
type Result struct {
	Listings []jobsearch.Listing
	AllSeen  bool
}

// Filter retains only listings not yet recorded in the ledger.
type Filter struct {
	ledger Ledger
	logger *zap.Logger
}

func NewFilter(ledger Ledger, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{ledger: ledger, logger: logger}
}

// Take returns up to limit unseen listings for the user and records each one
// as sent before returning it. Recording ahead of confirmed delivery means a
// crash mid-delivery loses a listing rather than repeating it: the ledger
// guarantees at-least-once filtering, not at-most-once delivery.
func (f *Filter) Take(ctx context.Context, userID int64, listings []jobsearch.Listing, limit int) (Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	fresh := make([]jobsearch.Listing, 0, limit)
	for _, l := range listings {
		if len(fresh) == limit {
			break
		}
		if l.Link == "" {
			continue
		}

		sent, err := f.ledger.WasListingSent(ctx, userID, l.Link)
		if err != nil {
			return Result{}, fmt.Errorf("dedup check: %w", err)
		}
		if sent {
			continue
		}

		if err := f.ledger.RecordListingSent(ctx, userID, l.Link); err != nil {
			return Result{}, fmt.Errorf("dedup record: %w", err)
		}
		fresh = append(fresh, l)
	}

	f.logger.Debug("dedup pass",
		zap.Int64("user_id", userID),
		zap.Int("initial", len(listings)),
		zap.Int("delivered", len(fresh)),
	)

	return Result{
		Listings: fresh,
		AllSeen:  len(listings) > 0 && len(fresh) == 0,
	}, nil
}
