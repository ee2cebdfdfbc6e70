package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/addresses"
	"github.com/EmpoweredVote/roster-backend/internal/auth"
	"github.com/EmpoweredVote/roster-backend/internal/config"
	"github.com/EmpoweredVote/roster-backend/internal/db"
	"github.com/EmpoweredVote/roster-backend/internal/designations"
	"github.com/EmpoweredVote/roster-backend/internal/httpserver"
	"github.com/EmpoweredVote/roster-backend/internal/logutil"
	"github.com/EmpoweredVote/roster-backend/internal/metrics"
	"github.com/EmpoweredVote/roster-backend/internal/middleware"
	"github.com/EmpoweredVote/roster-backend/internal/sampleusers"
	"github.com/EmpoweredVote/roster-backend/internal/schema"
	"github.com/EmpoweredVote/roster-backend/internal/users"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Logger = logutil.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logutil.WithLogger(ctx, log.Logger)

	conn, err := db.Connect(cfg, log.Logger)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	if err := schema.Migrate(conn); err != nil {
		return err
	}

	sessions, closeSessions, err := openSessions(ctx, cfg, conn)
	if err != nil {
		return err
	}
	defer closeSessions()
	log.Info().Str("backend", cfg.SessionBackend).Msg("Session store ready")

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	router := newRouter(cfg, conn, sessions, m, log.Logger)
	return httpserver.Serve(ctx, cfg.Addr(), router)
}

// openSessions returns the configured session store and a func that releases
// it.
func openSessions(ctx context.Context, cfg *config.Config, conn *gorm.DB) (auth.SessionStore, func() error, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		store, err := auth.NewMemorySessionStore(ctx, cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.SessionBackendRedis:
		client, err := auth.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return auth.NewRedisSessionStore(client), client.Close, nil
	default:
		store := auth.NewDBSessionStore(conn)
		go store.PurgeLoop(ctx, time.Hour)
		return store, func() error { return nil }, nil
	}
}

// newRouter assembles the full API. m may be nil to disable metrics.
func newRouter(cfg *config.Config, conn *gorm.DB, sessions auth.SessionStore, m *metrics.Metrics, logger zerolog.Logger) http.Handler {
	svc := auth.NewService(auth.NewCredentialStore(conn), sessions, cfg.SessionTTL)
	gate := middleware.SessionMiddleware(auth.SessionInfo{Service: svc})
	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(logutil.Middleware(logger))
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		auth.RegisterRoutes(r, auth.NewHandler(svc, cfg.CookieSecure), gate, limiter.Middleware)
		r.Mount("/users", users.SetupRoutes(users.NewHandler(users.NewRepository(conn)), gate))
		r.Mount("/sample-users", sampleusers.SetupRoutes(sampleusers.NewHandler(sampleusers.NewRepository(conn)), gate))
		r.Mount("/designation", designations.SetupRoutes(designations.NewHandler(designations.NewRepository(conn)), gate))
		r.Mount("/address", addresses.SetupRoutes(addresses.NewHandler(addresses.NewRepository(conn)), gate))
	})

	return r
}
