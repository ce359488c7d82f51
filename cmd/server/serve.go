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

	"gala/internal/database"
	"gala/internal/middleware"
	"gala/internal/router"
	"gala/internal/schema"
	"gala/internal/ws"
	"gala/pkg/mailer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()
	cfg, log := a.cfg, a.log

	if err := database.AutoMigrate(a.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedAdmin(cmd.Context(), a.db, cfg.Admin, log); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	schemas, err := schema.LoadDefault(cfg.Sections.SchemaFile)
	if err != nil {
		return fmt.Errorf("section schemas: %w", err)
	}
	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("upload store: %w", err)
	}

	hub := ws.NewHub()
	limiter := middleware.NewInMemoryRateLimiter(cfg.Server.ContactRateLimit, 15*time.Minute)
	defer limiter.Stop()

	engine := router.Setup(cfg, a.db, router.Deps{
		Log:            log,
		Schemas:        schemas,
		Store:          store,
		Mailer:         mailer.NewSMTP(cfg.Mail),
		Hub:            hub,
		ContactLimiter: limiter,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
			zap.String("db_driver", cfg.Database.Driver),
			zap.String("upload_driver", cfg.Upload.Driver),
			zap.Strings("schemas", schemas.Names()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	log.Info("shutting down")
	hub.CloseAll()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
