package profile

import (
	"context"
	"fmt"
)

// Storage is the subset of the profile store the resolver depends on.
type Storage interface {
	LoadProfile(ctx context.Context, userID int64) (Profile, bool, error)
	SaveProfile(ctx context.Context, userID int64, patch Patch) error
}

// Resolver combines freshly extracted profile fields with the stored record.
type Resolver struct {
	store Storage
}

func NewResolver(store Storage) *Resolver {
	return &Resolver{store: store}
}

// Resolve loads the stored profile for userID, merges the patch on top of it
// and returns the result. Exactly one load is performed; nothing is written.
func (r *Resolver) Resolve(ctx context.Context, userID int64, patch Patch) (Profile, error) {
	stored, found, err := r.store.LoadProfile(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("resolve profile: %w", err)
	}
	if !found {
		stored = Profile{UserID: userID}
	}

	return Merge(stored, patch), nil
}

// ResolveAndSave merges like Resolve and additionally persists the patch with
// exactly one save.
func (r *Resolver) ResolveAndSave(ctx context.Context, userID int64, patch Patch) (Profile, error) {
	merged, err := r.Resolve(ctx, userID, patch)
	if err != nil {
		return Profile{}, err
	}

	if err := r.store.SaveProfile(ctx, userID, patch); err != nil {
		return Profile{}, fmt.Errorf("persist profile: %w", err)
	}

	return merged, nil
}
