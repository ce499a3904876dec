// cmd/server/server.go
package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/futplan/internal/api"
	"github.com/codr1/futplan/internal/api/auth"
	"github.com/codr1/futplan/internal/api/dashboard"
	"github.com/codr1/futplan/internal/api/matches"
	"github.com/codr1/futplan/internal/api/teams"
	"github.com/codr1/futplan/internal/api/venues"
	"github.com/codr1/futplan/internal/cache"
	"github.com/codr1/futplan/internal/config"
	"github.com/codr1/futplan/internal/db"
	"github.com/codr1/futplan/internal/events"
	"github.com/codr1/futplan/internal/futapi"
	"github.com/codr1/futplan/internal/ratelimit"
	"github.com/codr1/futplan/internal/scheduler"
	"github.com/codr1/futplan/internal/session"
)

// app owns the HTTP server and everything that must be stopped with it.
type app struct {
	server    *http.Server
	scheduler *scheduler.Service
	lists     *cache.Store
	database  *db.DB
}

func newApp(cfg *config.Config) (*app, error) {
	clock := clockwork.NewRealClock()

	store, database, err := newSessionStore(cfg)
	if err != nil {
		return nil, err
	}

	manager := session.NewManager(store,
		session.WithClock(clock),
		session.WithTTL(cfg.Session.TTL),
		session.WithSecureCookie(!cfg.IsDevelopment()),
	)

	bus := events.NewBus()
	lists := cache.New(bus, clock, cfg.Cache.StaleTime)
	manager.OnEnd(lists.Drop)

	upstream, err := futapi.New(cfg.Upstream.BaseURL, futapi.WithTimeout(cfg.Upstream.Timeout))
	if err != nil {
		return nil, fmt.Errorf("upstream client: %w", err)
	}

	limiter := ratelimit.New(&ratelimit.Config{
		PerMinute: cfg.RateLimit.LoginPerMinute,
		Burst:     cfg.RateLimit.LoginBurst,
		Clock:     clock,
	})

	sched, err := scheduler.New(clock)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	if err := scheduler.RegisterMaintenanceJobs(sched, scheduler.MaintenanceJobs{
		Sessions:    manager,
		SessionCron: cfg.Session.CleanupCron,
		Sweepers: map[string]scheduler.Sweeper{
			"list_cache":   lists,
			"rate_limiter": scheduler.SweepFunc(limiter.Cleanup),
		},
		SweepCron: cfg.Cache.SweepCron,
	}); err != nil {
		return nil, err
	}

	auth.InitHandlers(upstream, manager, limiter)
	dashboard.InitHandlers(cfg.Features.DemoMode)
	teams.InitHandlers(upstream, lists, bus, cfg.Features.DemoMode)
	venues.InitHandlers(upstream, lists, bus)
	matches.InitHandlers(upstream, lists, bus, cfg.Features.DemoMode)

	router := http.NewServeMux()
	registerRoutes(router)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithSession(manager),
		api.WithCORS(cfg.CORS.AllowedOrigins),
		api.WithRequestID,
		api.WithContentType,
	)

	return &app{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.App.Port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15*time.Second + cfg.Upstream.Timeout,
			IdleTimeout:  60 * time.Second,
		},
		scheduler: sched,
		lists:     lists,
		database:  database,
	}, nil
}

func newSessionStore(cfg *config.Config) (session.Store, *db.DB, error) {
	switch cfg.Session.Driver {
	case config.SessionDriverSQLite:
		database, err := db.NewFromConfig(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("session database: %w", err)
		}
		return session.NewSQLiteStore(database), database, nil
	default:
		return session.NewMemoryStore(), nil, nil
	}
}

// Close stops background work and releases the session database.
func (a *app) Close() error {
	var errs []error
	if err := a.scheduler.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
	}
	a.lists.Close()
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close session database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func registerRoutes(mux *http.ServeMux) {
	gated := func(h http.HandlerFunc) http.Handler {
		return api.RequireSession(h)
	}

	// Landing page and authentication
	mux.HandleFunc("GET /{$}", auth.HandleLandingPage)
	mux.HandleFunc("POST /auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /auth/signup", auth.HandleSignup)
	mux.HandleFunc("POST /auth/logout", auth.HandleLogout)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write health response")
		}
	})

	mux.Handle("GET /dashboard", gated(dashboard.HandleDashboardPage))

	// Team routes
	mux.Handle("GET /api/v1/teams", gated(teams.HandleTeamsList))
	mux.Handle("GET /api/v1/teams/new", gated(teams.HandleNewTeamForm))
	mux.Handle("POST /api/v1/teams", gated(teams.HandleCreateTeam))
	mux.Handle("DELETE /api/v1/teams/{id}", gated(teams.HandleDeleteTeam))

	// Venue routes
	mux.Handle("GET /api/v1/venues", gated(venues.HandleVenuesList))
	mux.Handle("GET /api/v1/venues/new", gated(venues.HandleNewVenueForm))
	mux.Handle("POST /api/v1/venues", gated(venues.HandleCreateVenue))

	// Match routes
	mux.Handle("GET /api/v1/matches", gated(matches.HandleMatchesList))
	mux.Handle("GET /api/v1/matches/new", gated(matches.HandleNewMatchForm))
	mux.Handle("POST /api/v1/matches", gated(matches.HandleCreateMatch))
	mux.Handle("DELETE /api/v1/matches/{id}", gated(matches.HandleDeleteMatch))
}
