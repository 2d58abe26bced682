package storage

import (
	"errors"
	"time"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

// Sentinel errors surfaced to callers. Services translate these into
// retries (resample a candidate) or HTTP status codes.
var (
	// ErrStatsUnavailable means no usable season line exists for the
	// player: either no logged games or a minutes average below the
	// floor. The engine never fabricates stats.
	ErrStatsUnavailable = errors.New("season stats unavailable")
	ErrGameNotFound     = errors.New("game log not found")
	ErrNotFound         = errors.New("record not found")
)

// minMinutesPerGame is the floor under which a season line or a single
// game log is considered unusable for battle derivation.
const minMinutesPerGame = 8

// PoolEntry is one purchasable player+season combination.
type PoolEntry struct {
	PlayerID string `json:"player_id"`
	Season   string `json:"season"`
	FullName string `json:"full_name"`
}

// Repository is the data-access surface consumed by services and HTTP
// handlers. One sqlite-backed implementation exists; tests supply
// hand-rolled mocks of the narrow slices they need.
type Repository interface {
	// Offline NBA statistics database.
	SeasonStats(playerID, season string) (game.SeasonStats, error)
	PlayerGames(playerID, season string) ([]game.GameRecord, error)
	GameLogByID(playerID, gameID string) (*game.GameRecord, error)
	BoxScoreExtras(playerID, gameID string) (game.BoxScoreExtras, error)
	CardPool() ([]PoolEntry, error)
	PlayerName(playerID string) (string, error)

	// Coach profiles.
	GetUserByEmail(email string) (*game.User, error)
	UpsertUser(email, name string) (*game.User, error)
	SaveUser(u *game.User) error
	TopUsers(limit int) ([]game.User, error)

	// Roster: player cards and gametapes.
	CardsForUser(userID uint) ([]game.PlayerCard, error)
	GetCard(userID uint, cardID string) (*game.PlayerCard, error)
	SaveCard(card *game.PlayerCard) error
	DeleteCard(userID uint, cardID string) error
	TapesForUser(userID uint) ([]game.Gametape, error)
	TapesForCard(userID uint, cardID string) ([]game.Gametape, error)
	GetTape(userID uint, tapeID string) (*game.Gametape, error)
	SaveTape(tape *game.Gametape) error
	DeleteTape(userID uint, tapeID string) error

	// Hall of fame.
	AddHallOfFameEntry(entry *game.HallOfFameEntry) error
	HallOfFame(limit int) ([]game.HallOfFameEntry, error)

	// Battle metadata rows.
	CreateBattle(b *game.Battle) error
	GetBattleByCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// ClaimTimedOutBattles atomically stamps up to limit in-progress
	// battles whose action deadline passed with the worker's claim, so
	// concurrent scanners never double-process a battle. Rows already
	// claimed within claimFor are skipped.
	ClaimTimedOutBattles(now time.Time, limit int, claimFor time.Duration, workerID string) ([]string, error)
}
