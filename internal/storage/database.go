package storage

import (
	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, keeps the schema current via
// AutoMigrate and optionally seeds the built-in demo NBA dataset when
// the game-log table is empty.
func OpenAndMigrate(dataSourceName string, seedDemo bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.User{},
		&game.PlayerCard{},
		&game.Gametape{},
		&game.HallOfFameEntry{},
		&game.Battle{},
		&game.NBAPlayer{},
		&game.GameLog{},
		&game.BoxScoreRow{},
	)
	if err != nil {
		return nil, err
	}

	if seedDemo {
		seedDemoDataset(db)
	}
	return db, nil
}

// seedDemoDataset inserts the built-in players, game logs and hustle
// rows when the database holds no logs at all, so a fresh checkout can
// battle without an import step. Failures are logged, not fatal: an
// operator-provided import still works.
func seedDemoDataset(db *gorm.DB) {
	var count int64
	db.Model(&game.GameLog{}).Count(&count)
	if count > 0 {
		return
	}
	players, logs, extras := demoDataset()
	if err := db.Create(&players).Error; err != nil {
		logging.Error("failed to seed demo players", err, nil)
		return
	}
	if err := db.Create(&logs).Error; err != nil {
		logging.Error("failed to seed demo game logs", err, nil)
		return
	}
	if len(extras) > 0 {
		if err := db.Create(&extras).Error; err != nil {
			logging.Error("failed to seed demo box score extras", err, nil)
			return
		}
	}
	logging.Info("seeded demo NBA dataset", logging.Fields{
		"players": len(players), "game_logs": len(logs),
	})
}
