package main

import (
	"time"

	"github.com/bolovan/nba-stat-attack/internal/logging"
	"github.com/bolovan/nba-stat-attack/internal/service"
	"github.com/bolovan/nba-stat-attack/internal/storage"
)

// startTimeoutScanner claims battles whose action deadline passed and
// delegates each to the battle service: auto-play a pending move, or
// expire battles idle past the expiry window.
func startTimeoutScanner(repo storage.Repository, battles *service.BattleService, expiry time.Duration, workerID string) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			codes, err := repo.ClaimTimedOutBattles(now, 20, 2*time.Minute, workerID)
			if err != nil {
				logging.Error("timeout scanner failed to claim battles", err, nil)
				continue
			}
			// process each battle sequentially (keeps DB safe under SQLite)
			for _, code := range codes {
				if err := battles.HandleTimedOutBattle(code, now, expiry); err != nil {
					logging.Error("failed to handle timed-out battle", err, logging.Fields{"battle_code": code})
				}
			}
		}
	}()
}
