// Package alerts runs recurring job searches for a stored profile and pushes
// only listings the user has not seen yet.
package alerts

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/dedup"
	"github.com/calab/jobscout/internal/jobsearch"
	"github.com/calab/jobscout/internal/profile"
)

// Searcher runs one job search across the configured sources.
type Searcher interface {
	Search(ctx context.Context, role, location string) ([]jobsearch.Listing, error)
}

// Deduper filters listings already delivered to the user.
type Deduper interface {
	Take(ctx context.Context, userID int64, listings []jobsearch.Listing, limit int) (dedup.Result, error)
}

// NotifyFunc delivers a batch of fresh listings to the user.
type NotifyFunc func(userID int64, listings []jobsearch.Listing)

// Watcher wraps robfig/cron and re-runs the search for one user on a fixed
// interval. Each cycle goes through the same dedup ledger as interactive
// searches, so the user never sees a listing twice across both paths.
type Watcher struct {
	cron     *cron.Cron
	store    profile.Storage
	searcher Searcher
	deduper  Deduper
	notify   NotifyFunc
	logger   *zap.Logger

	userID   int64
	location string
	spec     string
	limit    int
}

// Config holds the per-watch parameters.
type Config struct {
	UserID   int64
	Location string
	Every    string // cron interval, e.g. "6h"
	Limit    int
}

func New(store profile.Storage, searcher Searcher, deduper Deduper, notify NotifyFunc, cfg Config, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = dedup.DefaultLimit
	}

	return &Watcher{
		cron:     cron.New(),
		store:    store,
		searcher: searcher,
		deduper:  deduper,
		notify:   notify,
		logger:   logger,
		userID:   cfg.UserID,
		location: cfg.Location,
		spec:     fmt.Sprintf("@every %s", cfg.Every),
		limit:    limit,
	}
}

// Start registers the cron entry and runs one cycle immediately so the user
// does not wait a full interval for the first batch.
func (w *Watcher) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.spec, func() {
		w.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule watch: %w", err)
	}

	w.cron.Start()
	w.logger.Info("watch started",
		zap.Int64("user_id", w.userID),
		zap.String("location", w.location),
		zap.String("spec", w.spec),
	)

	go w.RunOnce(ctx)
	return nil
}

// Stop shuts the scheduler down. Already-running cycles finish on their own.
func (w *Watcher) Stop() {
	w.cron.Stop()
	w.logger.Info("watch stopped", zap.Int64("user_id", w.userID))
}

// RunOnce executes a single watch cycle: load the profile, search, filter out
// everything already sent, notify if anything fresh remains.
func (w *Watcher) RunOnce(ctx context.Context) {
	stored, found, err := w.store.LoadProfile(ctx, w.userID)
	if err != nil {
		w.logger.Error("load profile for watch", zap.Int64("user_id", w.userID), zap.Error(err))
		return
	}
	if !found || stored.TargetRole == "" {
		w.logger.Warn("watch cycle skipped, no usable profile", zap.Int64("user_id", w.userID))
		return
	}

	listings, err := w.searcher.Search(ctx, stored.TargetRole, w.location)
	if err != nil {
		w.logger.Error("watch search failed", zap.Int64("user_id", w.userID), zap.Error(err))
		return
	}

	res, err := w.deduper.Take(ctx, w.userID, listings, w.limit)
	if err != nil {
		w.logger.Error("watch dedup failed", zap.Int64("user_id", w.userID), zap.Error(err))
		return
	}

	w.logger.Info("watch cycle complete",
		zap.Int64("user_id", w.userID),
		zap.String("role", stored.TargetRole),
		zap.Int("found", len(listings)),
		zap.Int("fresh", len(res.Listings)),
	)

	if len(res.Listings) > 0 && w.notify != nil {
		w.notify(w.userID, res.Listings)
	}
}
