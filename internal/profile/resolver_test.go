package profile

import (
	"context"
	"errors"
	"testing"
)

type stubStorage struct {
	stored    Profile
	found     bool
	loadErr   error
	saveErr   error
	loads     int
	saves     int
	lastPatch Patch
}

func (s *stubStorage) LoadProfile(_ context.Context, _ int64) (Profile, bool, error) {
	s.loads++
	return s.stored, s.found, s.loadErr
}

func (s *stubStorage) SaveProfile(_ context.Context, _ int64, patch Patch) error {
	s.saves++
	s.lastPatch = patch
	return s.saveErr
}

func TestResolveMergesOverStored(t *testing.T) {
	t.Parallel()

	store := &stubStorage{
		stored: Profile{UserID: 9, FirstName: "Ana", TargetRole: "QA Engineer"},
		found:  true,
	}
	r := NewResolver(store)

	merged, err := r.Resolve(context.Background(), 9, Patch{TargetRole: "Backend Developer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if merged.TargetRole != "Backend Developer" {
		t.Fatalf("expected fresh role to win, got %q", merged.TargetRole)
	}
	if merged.FirstName != "Ana" {
		t.Fatalf("expected stored name to be kept, got %q", merged.FirstName)
	}
	if store.loads != 1 || store.saves != 0 {
		t.Fatalf("expected exactly one load and no save, got %d/%d", store.loads, store.saves)
	}
}

func TestResolveNewUserStartsEmpty(t *testing.T) {
	t.Parallel()

	r := NewResolver(&stubStorage{})

	merged, err := r.Resolve(context.Background(), 42, Patch{TargetRole: "Designer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.UserID != 42 || merged.TargetRole != "Designer" {
		t.Fatalf("unexpected merged profile: %+v", merged)
	}
}

func TestResolveAndSavePersistsThePatch(t *testing.T) {
	t.Parallel()

	store := &stubStorage{found: true, stored: Profile{UserID: 1}}
	r := NewResolver(store)

	if _, err := r.ResolveAndSave(context.Background(), 1, Patch{FirstName: "Jo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saves != 1 || store.lastPatch.FirstName != "Jo" {
		t.Fatalf("expected one save with the patch, got %d (%+v)", store.saves, store.lastPatch)
	}
}

func TestResolvePropagatesStorageFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	r := NewResolver(&stubStorage{loadErr: boom})

	if _, err := r.Resolve(context.Background(), 1, Patch{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}
