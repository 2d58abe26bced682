package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/bolovan/nba-stat-attack/internal/engine"
	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/storage"
)

// ErrNoOpponent means candidate sampling exhausted its budget without a
// valid unit; the caller may simply retry.
var ErrNoOpponent = errors.New("could not generate a valid opponent")

// opponentSampleBudget bounds how many pool candidates one generation
// attempt inspects before giving up.
const opponentSampleBudget = 20

// OpponentRepo is the slice needed for random opponent generation.
type OpponentRepo interface {
	UnitRepo
	CardPool() ([]storage.PoolEntry, error)
	PlayerGames(playerID, season string) ([]game.GameRecord, error)
}

// RandomOpponent samples the card pool for a playable unit: a candidate
// with usable season stats and, among its ten most recent games, one
// whose tape passes validity. Invalid candidates are skipped, never
// fabricated around.
func RandomOpponent(repo OpponentRepo, rng *rand.Rand) (*game.CombatUnit, error) {
	pool, err := repo.CardPool()
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoOpponent
	}

	for attempt := 0; attempt < opponentSampleBudget; attempt++ {
		cand := pool[rng.Intn(len(pool))]

		stats, err := repo.SeasonStats(cand.PlayerID, cand.Season)
		if err != nil {
			continue
		}
		games, err := repo.PlayerGames(cand.PlayerID, cand.Season)
		if err != nil || len(games) == 0 {
			continue
		}
		recent := games
		if len(recent) > 10 {
			recent = recent[:10]
		}
		rec := recent[rng.Intn(len(recent))]

		extras, err := repo.BoxScoreExtras(cand.PlayerID, rec.GameID)
		if err != nil {
			continue
		}
		labels := game.DetectLabels(rec, extras)
		moves := game.ApplyLabelMoveBonuses(game.ExpandMoves(rec), labels)
		if game.ValidateTape(moves) != nil {
			continue
		}

		id := engine.Identity{
			Name:     fmt.Sprintf("%s (%s)", cand.FullName, cand.Season),
			PlayerID: cand.PlayerID,
		}
		return engine.BuildUnit(id, stats, rec, moves, labels), nil
	}
	return nil, ErrNoOpponent
}

// RandomOpponents generates a full squad of independent opponents.
func RandomOpponents(repo OpponentRepo, rng *rand.Rand, n int) ([]*game.CombatUnit, error) {
	out := make([]*game.CombatUnit, 0, n)
	for i := 0; i < n; i++ {
		u, err := RandomOpponent(repo, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
