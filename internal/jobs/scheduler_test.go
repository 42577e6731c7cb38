// internal/jobs/scheduler_test.go
package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

type fakeJobStore struct {
	ratingIDs  []uuid.UUID
	recomputed []uuid.UUID
	failRating uuid.UUID

	recentCalls int
	clubCalls   int
	statsCalls  int
}

func (f *fakeJobStore) ListRatingIDs(_ context.Context) ([]uuid.UUID, error) {
	return f.ratingIDs, nil
}

func (f *fakeJobStore) RecomputeRatingResults(_ context.Context, ratingID uuid.UUID) error {
	if ratingID == f.failRating {
		return errors.New("recompute failed")
	}
	f.recomputed = append(f.recomputed, ratingID)
	return nil
}

func (f *fakeJobStore) RecentGames(_ context.Context, _ int) ([]models.Game, error) {
	f.recentCalls++
	return []models.Game{{ID: uuid.New()}}, nil
}

func (f *fakeJobStore) TopClubs(_ context.Context, _ int) ([]database.ClubStanding, error) {
	f.clubCalls++
	return nil, nil
}

func (f *fakeJobStore) CountSiteStats(_ context.Context) (*database.SiteStats, error) {
	f.statsCalls++
	return &database.SiteStats{}, nil
}

func TestRecomputeAllContinuesPastFailure(t *testing.T) {
	bad := uuid.New()
	good := uuid.New()
	store := &fakeJobStore{ratingIDs: []uuid.UUID{bad, good}, failRating: bad}

	s := NewScheduler(store, nil)
	s.RecomputeAll(context.Background())

	if len(store.recomputed) != 1 || store.recomputed[0] != good {
		t.Fatalf("expected only %v recomputed, got %v", good, store.recomputed)
	}
}

func TestWarmDashboardCacheLoadsAllAggregates(t *testing.T) {
	store := &fakeJobStore{}

	// nil cache is valid: every SetJSON is a no-op, but all three
	// aggregates must still be loaded from the store.
	s := NewScheduler(store, nil)
	s.WarmDashboardCache(context.Background())

	if store.recentCalls != 1 || store.clubCalls != 1 || store.statsCalls != 1 {
		t.Fatalf("expected each aggregate loaded once, got recent=%d clubs=%d stats=%d",
			store.recentCalls, store.clubCalls, store.statsCalls)
	}
}
