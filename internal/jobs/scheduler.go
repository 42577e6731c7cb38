// Package jobs runs the background work: the nightly rating_results
// recompute that turns raw game records into leaderboards, and the
// hourly warm of the dashboard aggregates.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/cache"
	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"

	"github.com/google/uuid"
)

// warmSpec is the dashboard warm schedule. warmTTL must outlive the
// interval between ticks or the warmed entries expire before the next
// run and the first dashboard hit of each hour pays a DB round trip.
const (
	warmSpec = "0 * * * *"
	warmTTL  = 65 * time.Minute
)

// Store is the slice of the datastore the background jobs need.
type Store interface {
	ListRatingIDs(ctx context.Context) ([]uuid.UUID, error)
	RecomputeRatingResults(ctx context.Context, ratingID uuid.UUID) error
	RecentGames(ctx context.Context, limit int) ([]models.Game, error)
	TopClubs(ctx context.Context, limit int) ([]database.ClubStanding, error)
	CountSiteStats(ctx context.Context) (*database.SiteStats, error)
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron  *cron.Cron
	store Store
	cache *cache.Cache
}

// NewScheduler builds the scheduler around the datastore. cache may be
// nil, in which case the warm job is skipped.
func NewScheduler(store Store, c *cache.Cache) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		store: store,
		cache: c,
	}
}

// Start registers the rating recompute on the given cron spec, plus the
// hourly dashboard warm when a cache is present, and begins running.
// Each rating tick recomputes every rating from scratch; a failure on
// one rating is logged and does not stop the rest.
func (s *Scheduler) Start(ratingSpec string) error {
	_, err := s.cron.AddFunc(ratingSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		s.RecomputeAll(ctx)
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		_, err = s.cron.AddFunc(warmSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			s.WarmDashboardCache(ctx)
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	log.Infof("Scheduler started, rating recompute at %q", ratingSpec)
	return nil
}

// RecomputeAll rebuilds rating_results for every rating.
func (s *Scheduler) RecomputeAll(ctx context.Context) {
	ids, err := s.store.ListRatingIDs(ctx)
	if err != nil {
		log.WithError(err).Error("rating recompute: list ratings")
		return
	}
	for _, id := range ids {
		if err := s.store.RecomputeRatingResults(ctx, id); err != nil {
			log.WithError(err).Errorf("rating recompute: rating %v", id)
			continue
		}
	}
	log.Infof("Recomputed results for %d ratings", len(ids))
}

// WarmDashboardCache refreshes the dashboard aggregates in Redis so the
// read-through handlers serve hits. A failing aggregate is logged and
// skipped; the stale entry stays until its TTL runs out.
func (s *Scheduler) WarmDashboardCache(ctx context.Context) {
	if games, err := s.store.RecentGames(ctx, 10); err != nil {
		log.WithError(err).Error("dashboard warm: recent games")
	} else {
		s.cache.SetJSON(ctx, cache.KeyRecentGames, games, warmTTL)
	}

	if clubs, err := s.store.TopClubs(ctx, 10); err != nil {
		log.WithError(err).Error("dashboard warm: top clubs")
	} else {
		s.cache.SetJSON(ctx, cache.KeyTopClubs, clubs, warmTTL)
	}

	if stats, err := s.store.CountSiteStats(ctx); err != nil {
		log.WithError(err).Error("dashboard warm: site stats")
	} else {
		s.cache.SetJSON(ctx, cache.KeySiteStats, stats, warmTTL)
	}
}

// Stop halts the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}
