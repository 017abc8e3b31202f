package main

import (
	"fmt"

	"github.com/mfukuda/recall/internal/config"
	"github.com/mfukuda/recall/internal/database"
	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/review"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openStores builds the item and event stores for the configured storage
// backend. The returned close function releases the database connection and
// is a no-op for the file backend.
func openStores(cfg *config.Config) (item.Store, review.EventStore, func() error, error) {
	switch cfg.Storage.Backend {
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		return item.NewDBStore(db), review.NewDBEventStore(db), db.Close, nil
	default:
		items, err := item.NewFileStore(cfg.Storage.ItemsFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("item.NewFileStore() > %w", err)
		}
		events, err := review.NewFileEventStore(cfg.Storage.EventsFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("review.NewFileEventStore() > %w", err)
		}
		return items, events, func() error { return nil }, nil
	}
}
