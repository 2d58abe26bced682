package main

import (
	"github.com/bolovan/nba-stat-attack/internal/config"
	"github.com/bolovan/nba-stat-attack/internal/logging"
	"github.com/bolovan/nba-stat-attack/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid stat attack configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(cfg.DatabasePath, cfg.SeedDemoData)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	// A missing redis is a degradation, not a failure: the repository
	// falls back to direct sqlite reads.
	cache := storage.NewCache(cfg.RedisAddress)
	return storage.NewSQLiteRepository(db, cache)
}
