package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfukuda/recall/internal/bootstrap"
	"github.com/mfukuda/recall/internal/config"
	"github.com/mfukuda/recall/internal/database"
	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/review"
	"github.com/mfukuda/recall/internal/server"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "recall-server",
		Short:         "Review scheduling HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("config.Load() > %w", err)
	}

	items, events, err := openStores(app, cfg)
	if err != nil {
		return err
	}

	params := cfg.Scheduler.SchedulerParams()
	handler := server.NewHandler(
		items,
		events,
		review.NewProcessor(items, events, params),
		review.NewQueueManager(items, params, nil),
		cfg.Scheduler.SessionConfig(),
		logger,
	)
	router := server.NewRouter(handler, cfg.Server.CORS.AllowedOrigins, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func openStores(app *bootstrap.App, cfg *config.Config) (item.Store, review.EventStore, error) {
	switch cfg.Storage.Backend {
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		app.AddShutdownHook(func(context.Context) error {
			return db.Close()
		})
		return item.NewDBStore(db), review.NewDBEventStore(db), nil
	default:
		items, err := item.NewFileStore(cfg.Storage.ItemsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("item.NewFileStore() > %w", err)
		}
		events, err := review.NewFileEventStore(cfg.Storage.EventsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("review.NewFileEventStore() > %w", err)
		}
		return items, events, nil
	}
}
