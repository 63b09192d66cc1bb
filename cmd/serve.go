package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lajournal/lajournal/internal/api"
	"github.com/lajournal/lajournal/internal/config"
	"github.com/lajournal/lajournal/internal/database"
	"github.com/lajournal/lajournal/internal/logging"
	"github.com/lajournal/lajournal/internal/services/auth"
	"github.com/lajournal/lajournal/internal/services/entry"
	"github.com/lajournal/lajournal/internal/services/label"
	"github.com/lajournal/lajournal/internal/services/stats"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must be set (or LAJOURNAL_JWT_SECRET)")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := database.NewRepository(db)

	server := api.NewServer(
		entry.NewService(repo),
		label.NewService(repo),
		stats.NewService(repo),
		auth.NewService(repo, auth.Config{
			Secret:     cfg.Auth.JWTSecret,
			AccessTTL:  cfg.AccessTTL(),
			RefreshTTL: cfg.RefreshTTL(),
		}),
		api.Options{RateLimitPerMinute: cfg.Server.RateLimitPerMinute},
	)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Server.Addr)
		errCh <- server.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		return server.Shutdown()
	}
}
