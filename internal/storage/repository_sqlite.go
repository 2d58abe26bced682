package storage

import (
	"errors"
	"time"

	"github.com/bolovan/nba-stat-attack/internal/dedupe"
	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/keys"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db    *gorm.DB
	cache *cache
}

// NewSQLiteRepository wraps an opened gorm DB. The cache may be nil,
// which disables the redis read-through path.
func NewSQLiteRepository(db *gorm.DB, c *cache) Repository {
	return &sqliteRepository{db: db, cache: c}
}

// seasonAggRow receives the AVG aggregation over game logs.
type seasonAggRow struct {
	GP  int
	Min float64
	Pts float64
	Ast float64
	Tov float64
	Reb float64
	Stl float64
	Blk float64
}

// SeasonStats computes per-game season averages from the stored logs.
// The aggregation is cached in redis and deduped in flight: concurrent
// lookups of the same player+season share one query.
func (r *sqliteRepository) SeasonStats(playerID, season string) (game.SeasonStats, error) {
	key := keys.StatsCacheKey(playerID, season)
	var cached game.SeasonStats
	if r.cache.get(key, &cached) {
		return cached, nil
	}

	v, err, _ := dedupe.StatsGroup.Do(key, func() (any, error) {
		var row seasonAggRow
		err := r.db.Model(&game.GameLog{}).
			Select("COUNT(*) as gp, AVG(min) as min, AVG(pts) as pts, AVG(ast) as ast, AVG(tov) as tov, AVG(reb) as reb, AVG(stl) as stl, AVG(blk) as blk").
			Where("player_id = ? AND season = ?", playerID, season).
			Scan(&row).Error
		if err != nil {
			return game.SeasonStats{}, err
		}
		if row.GP == 0 || row.Min < minMinutesPerGame {
			return game.SeasonStats{}, ErrStatsUnavailable
		}
		stats := game.SeasonStats{
			Points:      row.Pts,
			Assists:     row.Ast,
			Turnovers:   row.Tov,
			Rebounds:    row.Reb,
			Steals:      row.Stl,
			Blocks:      row.Blk,
			Minutes:     row.Min,
			GamesPlayed: row.GP,
		}
		r.cache.set(key, stats, StatsCacheTTL)
		return stats, nil
	})
	if err != nil {
		return game.SeasonStats{}, err
	}
	return v.(game.SeasonStats), nil
}

// PlayerGames lists one player's usable games for a season, newest
// first. Garbage-time lines under the minutes floor are skipped.
func (r *sqliteRepository) PlayerGames(playerID, season string) ([]game.GameRecord, error) {
	var logs []game.GameLog
	err := r.db.
		Where("player_id = ? AND season = ? AND min >= ?", playerID, season, minMinutesPerGame).
		Order("game_date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	out := make([]game.GameRecord, len(logs))
	for i := range logs {
		out[i] = logs[i].ToRecord()
	}
	return out, nil
}

func (r *sqliteRepository) GameLogByID(playerID, gameID string) (*game.GameRecord, error) {
	var log game.GameLog
	err := r.db.Where("player_id = ? AND game_id = ?", playerID, gameID).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	rec := log.ToRecord()
	return &rec, nil
}

// BoxScoreExtras returns the advanced/hustle line for one game, or the
// zero value when the import carried none; label detection falls back to
// box-score proxies in that case.
func (r *sqliteRepository) BoxScoreExtras(playerID, gameID string) (game.BoxScoreExtras, error) {
	var row game.BoxScoreRow
	err := r.db.Where("player_id = ? AND game_id = ?", playerID, gameID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.BoxScoreExtras{}, nil
		}
		return game.BoxScoreExtras{}, err
	}
	return row.ToExtras(), nil
}

// CardPool lists every player+season combination with logged games.
// Cached under a single key and deduped in flight.
func (r *sqliteRepository) CardPool() ([]PoolEntry, error) {
	var cached []PoolEntry
	if r.cache.get(PoolCacheKey, &cached) {
		return cached, nil
	}

	v, err, _ := dedupe.PoolGroup.Do(PoolCacheKey, func() (any, error) {
		var pool []PoolEntry
		err := r.db.Model(&game.GameLog{}).
			Select("DISTINCT game_logs.player_id, game_logs.season, nba_players.full_name").
			Joins("JOIN nba_players ON nba_players.player_id = game_logs.player_id").
			Order("nba_players.full_name, game_logs.season DESC").
			Scan(&pool).Error
		if err != nil {
			return nil, err
		}
		r.cache.set(PoolCacheKey, pool, PoolCacheTTL)
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]PoolEntry), nil
}

func (r *sqliteRepository) PlayerName(playerID string) (string, error) {
	var p game.NBAPlayer
	if err := r.db.Where("player_id = ?", playerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return p.FullName, nil
}

func (r *sqliteRepository) GetUserByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) UpsertUser(email, name string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		u = game.User{Email: email}
	}
	if name != "" {
		u.Name = name
	}
	if err := r.db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

// TopUsers returns the leaderboard ordered by wins, ties broken by
// fewer losses.
func (r *sqliteRepository) TopUsers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("losses ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) CardsForUser(userID uint) ([]game.PlayerCard, error) {
	var cards []game.PlayerCard
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *sqliteRepository) GetCard(userID uint, cardID string) (*game.PlayerCard, error) {
	var card game.PlayerCard
	err := r.db.Where("user_id = ? AND card_id = ?", userID, cardID).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *sqliteRepository) SaveCard(card *game.PlayerCard) error {
	return r.db.Save(card).Error
}

// DeleteCard removes a card and every tape attached to it in one
// transaction, so a failed tape wipe never strands orphan tapes.
func (r *sqliteRepository) DeleteCard(userID uint, cardID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND card_id = ?", userID, cardID).Delete(&game.Gametape{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND card_id = ?", userID, cardID).Delete(&game.PlayerCard{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *sqliteRepository) TapesForUser(userID uint) ([]game.Gametape, error) {
	var tapes []game.Gametape
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&tapes).Error; err != nil {
		return nil, err
	}
	return tapes, nil
}

func (r *sqliteRepository) TapesForCard(userID uint, cardID string) ([]game.Gametape, error) {
	var tapes []game.Gametape
	if err := r.db.Where("user_id = ? AND card_id = ?", userID, cardID).Order("created_at").Find(&tapes).Error; err != nil {
		return nil, err
	}
	return tapes, nil
}

func (r *sqliteRepository) GetTape(userID uint, tapeID string) (*game.Gametape, error) {
	var tape game.Gametape
	err := r.db.Where("user_id = ? AND tape_id = ?", userID, tapeID).First(&tape).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tape, nil
}

func (r *sqliteRepository) SaveTape(tape *game.Gametape) error {
	return r.db.Save(tape).Error
}

func (r *sqliteRepository) DeleteTape(userID uint, tapeID string) error {
	res := r.db.Where("user_id = ? AND tape_id = ?", userID, tapeID).Delete(&game.Gametape{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) AddHallOfFameEntry(entry *game.HallOfFameEntry) error {
	return r.db.Create(entry).Error
}

func (r *sqliteRepository) HallOfFame(limit int) ([]game.HallOfFameEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []game.HallOfFameEntry
	err := r.db.Model(&game.HallOfFameEntry{}).
		Order("wins DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByCode(code string) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Where("battle_code = ?", code).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Save(b).Error
}

// ClaimTimedOutBattles stamps expired in-progress battles with this
// worker's claim, then returns the codes it won. The UPDATE's WHERE
// clause is the claim: rows another worker stamped within claimFor are
// left alone, and sqlite serializes the writers.
func (r *sqliteRepository) ClaimTimedOutBattles(now time.Time, limit int, claimFor time.Duration, workerID string) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	var codes []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var rows []game.Battle
		cutoff := now.Add(-claimFor)
		err := tx.Model(&game.Battle{}).
			Where("status = ? AND action_deadline <= ? AND action_deadline != ?", game.BattleStatusInProgress, now, time.Time{}).
			Where("timeout_claimed_at <= ? OR timeout_claimed_by = ?", cutoff, workerID).
			Order("action_deadline").
			Limit(limit).
			Find(&rows).Error
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].TimeoutClaimedBy = workerID
			rows[i].TimeoutClaimedAt = now
			if err := tx.Save(&rows[i]).Error; err != nil {
				return err
			}
			codes = append(codes, rows[i].BattleCode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}
