// Package main is the entry point for the TravelXplore web server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/travelxplore/site/internal/config"
	"github.com/travelxplore/site/internal/handler"
	"github.com/travelxplore/site/internal/media"
	"github.com/travelxplore/site/internal/middleware"
	"github.com/travelxplore/site/internal/repo"
	"github.com/travelxplore/site/internal/service"
	"github.com/travelxplore/site/internal/telemetry"
	"github.com/travelxplore/site/migrations"
	"github.com/travelxplore/site/web"
)

// sessionSweepInterval is how often expired session rows are purged.
const sessionSweepInterval = time.Hour

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// --- Logger -----------------------------------------------------------
	logger, err := telemetry.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Telemetry --------------------------------------------------------
	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	stopProfiling, err := telemetry.InitProfiling(cfg.Profiling, cfg.Tracing.ServiceName)
	if err != nil {
		return err
	}
	defer stopProfiling()

	// --- Database ---------------------------------------------------------
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(ctx, sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			return err
		}
		logger.Info("migrations applied", zap.Int("count", n))
	}

	// --- Services ---------------------------------------------------------
	store := media.NewStore(cfg.Media.Root, cfg.Media.URL)
	users := repo.NewUserRepo(pool)

	accounts := service.NewAccountService(users, repo.NewProfileRepo(pool), repo.NewTransactor(pool), store)
	travelers := service.NewTravelerService(repo.NewTravelerRepo(pool))
	messages := service.NewMessageService(repo.NewMessageRepo(pool))
	destinations := service.NewDestinationService(repo.NewDestinationRepo(pool))

	// --- Sessions ---------------------------------------------------------
	sessionStore := repo.NewSessionStore(pool)
	sessions := scs.New()
	sessions.Store = sessionStore
	sessions.Lifetime = cfg.Session.Lifetime
	sessions.Cookie.Name = cfg.Session.CookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.Session.Secure
	sessions.ErrorFunc = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("session error",
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
	go sweepSessions(ctx, sessionStore, logger)

	// --- Handlers ---------------------------------------------------------
	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, logger)
	site, err := handler.NewServer(handler.Deps{
		Accounts:       accounts,
		Travelers:      travelers,
		Messages:       messages,
		Destinations:   destinations,
		Sessions:       sessions,
		Logger:         logger,
		DB:             pool,
		Media:          store,
		LoginLimiter:   limiter.Handler,
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
	})
	if err != nil {
		return err
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Tracing → Logger →
	// Metrics → Recoverer → SecurityHeaders → MaxBodySize.
	// Recoverer sits inside the logger so a panic is still logged as a 500.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTracing(telemetry.Tracer()))
	r.Use(middleware.NewZapLogger(logger))
	r.Use(middleware.NewMetrics())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	// Multipart overhead on top of the picture itself.
	r.Use(middleware.NewMaxBodySizeHandler(cfg.Media.MaxUploadBytes + 1<<20))

	r.Handle("/metrics", promhttp.Handler())

	assets := middleware.NewCORSHandler(cfg.CORSOrigins)
	r.With(assets).Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
	if cfg.Debug {
		prefix := store.URL
		r.With(assets).Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Media.Root))))
		logger.Info("serving uploaded media", zap.String("root", cfg.Media.Root), zap.String("url", prefix))
	}

	r.Mount("/", site.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	// Give in-flight requests up to ShutdownTimeout to complete.
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// sweepSessions deletes expired sessions until ctx is cancelled.
func sweepSessions(ctx context.Context, s *repo.SessionStore, log *zap.Logger) {
	t := time.NewTicker(sessionSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.DeleteExpired(ctx)
			if err != nil {
				log.Warn("session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
