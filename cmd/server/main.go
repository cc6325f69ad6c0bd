// Command minireddit-server serves the link aggregator JSON API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/minireddit/internal/config"
	"github.com/and161185/minireddit/internal/limiter"
	"github.com/and161185/minireddit/internal/migrate"
	"github.com/and161185/minireddit/internal/repository/postgres"
	"github.com/and161185/minireddit/internal/server/httpapi"
	"github.com/and161185/minireddit/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const shutdownTimeout = 5 * time.Second

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	cfg, err := config.LoadConfig("", os.Args[1:])
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(2)
	}

	logger := newLogger(cfg.Dev)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer db.Close()

	api := service.NewRedditAPI(service.Stores{
		Users:      postgres.NewUserRepo(db),
		Sessions:   postgres.NewSessionRepo(db),
		Subreddits: postgres.NewSubredditRepo(db),
		Posts:      postgres.NewPostRepo(db),
		Votes:      postgres.NewVoteRepo(db),
		Comments:   postgres.NewCommentRepo(db),
	}, cfg.BcryptCost, logger.Named("core"))

	lim := limiter.NewPG(db.Pool, cfg.Login)

	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	app := httpapi.New(api, lim, logger.Named("http"), httpapi.Options{
		CookieSecure: cfg.CookieSecure,
		Health:       db.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Warn("graceful shutdown", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}

func newLogger(dev bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}
