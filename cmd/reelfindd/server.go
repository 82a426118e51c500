package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/reelfind/internal/api/v1"
	"github.com/vmunix/reelfind/internal/cache"
	"github.com/vmunix/reelfind/internal/config"
	"github.com/vmunix/reelfind/internal/favorites"
	"github.com/vmunix/reelfind/internal/migrations"
	"github.com/vmunix/reelfind/internal/omdb"
	"github.com/vmunix/reelfind/internal/session"
	"github.com/vmunix/reelfind/internal/state"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// authSecret returns the configured HMAC secret, or a fresh random one.
// With an ephemeral secret, tokens minted before a restart stop
// validating, which simply logs those sessions out.
func authSecret(cfg *config.Config, logger *slog.Logger) []byte {
	if cfg.Auth.Secret != "" {
		return []byte(cfg.Auth.Secret)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err == nil {
		logger.Warn("auth.secret not set, using ephemeral secret; sessions won't survive restarts")
		return []byte(hex.EncodeToString(buf))
	}
	return []byte("reelfind-fallback-secret")
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Services ===
	sessions := session.NewManager(
		session.NewSQLiteStore(db),
		authSecret(cfg, logger),
		session.WithTokenTTL(cfg.Auth.TokenTTL),
		session.WithStateStore(state.NewSQLite(db)),
		session.WithLogger(logger),
	)

	omdbOpts := []omdb.Option{
		omdb.WithCache(cache.NewSQLite(db)),
		omdb.WithSearchTTL(cfg.OMDB.SearchTTL),
		omdb.WithDetailTTL(cfg.OMDB.DetailTTL),
		omdb.WithLogger(logger),
	}
	if cfg.OMDB.BaseURL != "" {
		omdbOpts = append(omdbOpts, omdb.WithBaseURL(cfg.OMDB.BaseURL))
	}
	movies := omdb.NewClient(cfg.OMDB.APIKey, omdbOpts...)

	favStore := favorites.NewStore(db)

	// === Background jobs ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runPruner(ctx, cache.NewSQLite(db), logger.With("component", "pruner"))

	// === HTTP setup ===
	mux := http.NewServeMux()
	v1.Version = version
	v1.New(sessions, movies, favStore).RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"omdb_key_set", cfg.OMDB.APIKey != "",
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	cancel()

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// runPruner periodically clears expired rows from the durable cache.
// Entries are never served past their TTL either way; this just keeps
// the table from growing without bound.
func runPruner(ctx context.Context, c *cache.SQLite, log *slog.Logger) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := c.Prune(ctx)
			if err != nil {
				log.Error("prune failed", "error", err)
				continue
			}
			if pruned > 0 {
				log.Info("pruned expired cache entries", "count", pruned)
			}
		}
	}
}
