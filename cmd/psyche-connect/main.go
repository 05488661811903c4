package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DyutiRaman/psyche-connect-app/internal/attachments"
	"github.com/DyutiRaman/psyche-connect-app/internal/attachments/disk"
	"github.com/DyutiRaman/psyche-connect-app/internal/attachments/s3store"
	"github.com/DyutiRaman/psyche-connect-app/internal/auth"
	"github.com/DyutiRaman/psyche-connect-app/internal/config"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/router"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/handlers/slogpretty"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/metrics"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/telemetry"
	"github.com/DyutiRaman/psyche-connect-app/internal/mailer"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage/sqlstore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting psyche-connect", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	ctx := context.Background()

	storage, err := sqlstore.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if err = storage.Migrate(ctx); err != nil {
		log.Error("failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	files, uploadsDir, err := setupAttachments(ctx, cfg)
	if err != nil {
		log.Error("failed to init attachment store", sl.Err(err))
		os.Exit(1)
	}

	authenticator, err := auth.New(cfg.Auth)
	if err != nil {
		log.Error("failed to init authenticator", sl.Err(err))
		os.Exit(1)
	}

	sender, err := mailer.NewSender(cfg.Mail)
	if err != nil {
		log.Error("failed to init mail relay", sl.Err(err))
		os.Exit(1)
	}

	notifier, err := mailer.New(cfg.Mail, sender)
	if err != nil {
		log.Error("failed to init mailer", sl.Err(err))
		os.Exit(1)
	}

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.Error("failed to init tracing", sl.Err(err))
		os.Exit(1)
	}

	handler := router.New(router.Options{
		Log:            log,
		Storage:        storage,
		Files:          files,
		Auth:           authenticator,
		Notifier:       notifier,
		Metrics:        metrics.New(),
		UploadsDir:     uploadsDir,
		StaticDir:      cfg.HTTPServer.StaticDir,
		MaxUploadSize:  cfg.Attachments.MaxSize,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
		RateLimit:      cfg.HTTPServer.RateLimit,
		Tracing:        cfg.Telemetry.OTLPEndpoint != "",

		TrustProxyHeaders: cfg.HTTPServer.TrustProxyHeaders,
	})

	log.Info("starting server",
		slog.String("address", cfg.HTTPServer.Address),
		slog.String("db_driver", storage.Driver()),
		slog.String("attachments", cfg.Attachments.Backend),
		slog.String("mail", cfg.Mail.Provider),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = shutdownTracing(shutdownCtx); err != nil {
		log.Error("failed to flush traces", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close database connection", sl.Err(err))
	}

	log.Info("database connection closed")
}

// setupAttachments returns the configured store and, for the disk backend,
// the directory to serve under /uploads/.
func setupAttachments(ctx context.Context, cfg *config.Config) (attachments.Store, string, error) {
	switch cfg.Attachments.Backend {
	case config.BackendS3:
		store, err := s3store.New(ctx, cfg.Attachments.S3)
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	case config.BackendDisk:
		baseURL := strings.TrimSuffix(cfg.HTTPServer.PublicURL, "/") + "/uploads"
		store, err := disk.New(cfg.Attachments.Dir, baseURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	default:
		return nil, "", fmt.Errorf("unsupported attachments backend %q", cfg.Attachments.Backend)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
