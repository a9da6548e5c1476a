// Package main is the entry point for the Flavortown dashboard server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/flavortown/internal/config"
	"github.com/pkordes/flavortown/internal/handler"
	"github.com/pkordes/flavortown/internal/layout"
	"github.com/pkordes/flavortown/internal/middleware"
	"github.com/pkordes/flavortown/internal/repo"
	"github.com/pkordes/flavortown/internal/service"
	"github.com/pkordes/flavortown/internal/session"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		slog.Error("profile error", "error", err)
		os.Exit(1)
	}

	// --- Datasets ---------------------------------------------------------
	// Both datasets are read once. A missing or malformed file means there
	// is nothing to serve, so startup stops here.
	ctx := context.Background()
	datasets, closeDatasets, err := openDatasets(ctx, cfg)
	if err != nil {
		slog.Error("failed to open datasets", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}
	dashboard, err := service.LoadDashboard(ctx, datasets, profile.HiddenColumns, profile.Map)
	closeDatasets()
	if err != nil {
		slog.Error("failed to load datasets", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}
	slog.Info("datasets loaded",
		"source", cfg.DataSource,
		"features", len(dashboard.Universe()),
		"locations", len(dashboard.Locations()),
		"regions", len(dashboard.Options().Regions),
		"seasons", len(dashboard.Options().Seasons),
	)

	// --- Sessions ---------------------------------------------------------
	sessions := session.NewManager(dashboard.Universe(), profile.DefaultSelection(), cfg.SessionTTL,
		session.WithLogger(logger))

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go sessions.Run(janitorCtx, janitorInterval(cfg.SessionTTL))

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	server := handler.NewServer(dashboard, service.NewSessionService(sessions), chrome(profile), logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	stopJanitor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openDatasets returns the configured DatasetRepo and a func releasing
// whatever it holds open.
func openDatasets(ctx context.Context, cfg config.Config) (repo.DatasetRepo, func(), error) {
	if cfg.DataSource != config.SourcePostgres {
		return repo.NewCSVDatasetRepo(cfg.FeaturesPath, cfg.LocationsPath), func() {}, nil
	}

	// New() does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("database connection established")
	return repo.NewPostgresDatasetRepo(pool), pool.Close, nil
}

// janitorInterval sweeps a few times per TTL so sessions never outlive it
// by much.
func janitorInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Second)
}

func chrome(p config.Profile) layout.Chrome {
	credits := make([]layout.Credit, 0, len(p.Credits))
	for _, c := range p.Credits {
		credits = append(credits, layout.Credit{Heading: c.Heading, Text: c.Text, URL: c.URL})
	}
	return layout.Chrome{
		Title:       p.Title,
		Heading:     p.Heading,
		Intro:       p.Intro,
		LogoURL:     p.LogoURL,
		Credits:     credits,
		FrameWidth:  p.Frame.Width,
		FrameHeight: p.Frame.Height,
		PageSize:    p.PageSize,
	}
}
