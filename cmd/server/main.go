// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/auth"
	"github.com/foundermafstat/mafstat2-sub002/internal/cache"
	"github.com/foundermafstat/mafstat2-sub002/internal/config"
	"github.com/foundermafstat/mafstat2-sub002/internal/database"
	"github.com/foundermafstat/mafstat2-sub002/internal/handlers"
	"github.com/foundermafstat/mafstat2-sub002/internal/jobs"
	"github.com/foundermafstat/mafstat2-sub002/internal/middleware"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
		logrus.SetLevel(level)
	}

	if cfg.JWTPrivateKeyPath != "" {
		err = auth.InitFromPath(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.TokenExpire)
	} else {
		err = auth.Init(cfg.TokenExpire)
	}
	if err != nil {
		logger.Fatalf("auth init: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	defer store.Close()

	// Redis is optional: the dashboard degrades to direct DB reads.
	cch, err := cache.Connect(ctx, cfg)
	if err != nil {
		logger.WithError(err).Warn("redis unavailable, dashboard caching disabled")
		cch = nil
	}
	defer cch.Close()

	scheduler := jobs.NewScheduler(store, cch)
	if err := scheduler.Start(cfg.RatingCronSpec); err != nil {
		logger.Fatalf("scheduler: %v", err)
	}
	defer scheduler.Stop()

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)
	authed := middleware.Require()
	admin := middleware.Require(models.RoleAdmin)
	premium := middleware.Require(models.RolePremium, models.RoleAdmin)
	dashboard := handlers.NewDashboard(store, cch, cfg.DashboardCacheTTL)

	// user endpoints
	mux.Handle("/user/create", logged(handlers.CreateUserHandler(store)))
	mux.Handle("/user/login", logged(handlers.LoginHandler(store)))
	mux.Handle("/user/me", logged(authed(handlers.MeHandler(store))))
	mux.Handle("/user/profile", logged(authed(handlers.UpdateProfileHandler(store))))

	// game endpoints
	mux.Handle("/games/create", logged(authed(handlers.CreateGameHandler(store))))
	mux.Handle("/games/get", logged(handlers.GetGameHandler(store)))
	mux.Handle("/games/search", logged(handlers.SearchGamesHandler(store)))
	mux.Handle("/games/best-move", logged(authed(handlers.BestMoveHandler(store))))

	// player endpoints
	mux.Handle("/players/stats", logged(handlers.PlayerStatsHandler(store)))
	mux.Handle("/players/history", logged(premium(handlers.PlayerHistoryHandler(store))))
	mux.Handle("/players/search", logged(handlers.SearchPlayersHandler(store)))

	// club endpoints
	mux.Handle("/clubs/create", logged(admin(handlers.CreateClubHandler(store))))
	mux.Handle("/clubs/search", logged(handlers.SearchClubsHandler(store)))
	mux.Handle("/clubs/top", logged(http.HandlerFunc(dashboard.TopClubs)))

	// federation endpoints
	mux.Handle("/federations/create", logged(admin(handlers.CreateFederationHandler(store))))
	mux.Handle("/federations/list", logged(handlers.ListFederationsHandler(store)))
	mux.Handle("/federations/players", logged(handlers.FederationPlayersHandler(store)))

	// rating endpoints
	mux.Handle("/ratings/create", logged(admin(handlers.CreateRatingHandler(store))))
	mux.Handle("/ratings/leaderboard", logged(handlers.LeaderboardHandler(store)))

	// dashboard shell endpoints
	mux.Handle("/dashboard/recent-games", logged(http.HandlerFunc(dashboard.RecentGames)))
	mux.Handle("/dashboard/top-clubs", logged(http.HandlerFunc(dashboard.TopClubs)))
	mux.Handle("/dashboard/stats", logged(http.HandlerFunc(dashboard.SiteStats)))

	// payment endpoints
	mux.Handle("/payments/checkout", logged(authed(handlers.CheckoutHandler(store))))
	mux.Handle("/payments/status", logged(authed(handlers.PaymentStatusHandler(store))))
	mux.Handle("/payments/webhook", logged(handlers.PaymentWebhookHandler(store)))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Infof("Running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server exited: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
}
