package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/auth"
	"github.com/monocle-dev/taskboard/internal/handlers"
	"github.com/monocle-dev/taskboard/internal/router"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := auth.InitJWTSecret(cfg.Auth.JWTSecret); err != nil {
			return err
		}

		if !skipMigrate {
			if err := db.MigrateDatabase(); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		handlers.CookieDomain = cfg.Auth.CookieDomain

		srv := &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router.NewRouter(cfg.Server.AllowedOrigins, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.App.Environment))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run migrations on startup")
}
