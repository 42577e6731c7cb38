package handlers

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/cache"
	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

// DashboardStore is the slice of the datastore the dashboard handlers need.
type DashboardStore interface {
	RecentGames(ctx context.Context, limit int) ([]models.Game, error)
	TopClubs(ctx context.Context, limit int) ([]database.ClubStanding, error)
	CountSiteStats(ctx context.Context) (*database.SiteStats, error)
}

// Dashboard serves the availability-first shell endpoints: on a datastore
// error they log and return an empty payload with 200 rather than break
// the page. Results are cached in Redis for a short TTL; a cold or down
// cache just means a DB round trip.
type Dashboard struct {
	store DashboardStore
	cache *cache.Cache
	ttl   time.Duration
}

// NewDashboard wires the dashboard handlers. cache may be nil.
func NewDashboard(store DashboardStore, c *cache.Cache, ttl time.Duration) *Dashboard {
	return &Dashboard{store: store, cache: c, ttl: ttl}
}

// RecentGames returns the latest recorded games, or [] on error.
func (d *Dashboard) RecentGames(w http.ResponseWriter, r *http.Request) {
	const key = cache.KeyRecentGames

	var games []models.Game
	if !d.cache.GetJSON(r.Context(), key, &games) {
		var err error
		games, err = d.store.RecentGames(r.Context(), 10)
		if err != nil {
			log.WithError(err).Error("recent games")
			writeJSON(w, http.StatusOK, []models.Game{})
			return
		}
		d.cache.SetJSON(r.Context(), key, games, d.ttl)
	}
	if games == nil {
		games = []models.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}

// TopClubs returns clubs ranked by recorded games, or [] on error.
func (d *Dashboard) TopClubs(w http.ResponseWriter, r *http.Request) {
	const key = cache.KeyTopClubs

	var clubs []database.ClubStanding
	if !d.cache.GetJSON(r.Context(), key, &clubs) {
		var err error
		clubs, err = d.store.TopClubs(r.Context(), 10)
		if err != nil {
			log.WithError(err).Error("top clubs")
			writeJSON(w, http.StatusOK, []database.ClubStanding{})
			return
		}
		d.cache.SetJSON(r.Context(), key, clubs, d.ttl)
	}
	if clubs == nil {
		clubs = []database.ClubStanding{}
	}
	writeJSON(w, http.StatusOK, clubs)
}

// SiteStats returns the headline counters, or zeros on error.
func (d *Dashboard) SiteStats(w http.ResponseWriter, r *http.Request) {
	const key = cache.KeySiteStats

	var stats database.SiteStats
	if !d.cache.GetJSON(r.Context(), key, &stats) {
		loaded, err := d.store.CountSiteStats(r.Context())
		if err != nil {
			log.WithError(err).Error("site stats")
			writeJSON(w, http.StatusOK, database.SiteStats{})
			return
		}
		stats = *loaded
		d.cache.SetJSON(r.Context(), key, stats, d.ttl)
	}
	writeJSON(w, http.StatusOK, stats)
}
