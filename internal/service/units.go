package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bolovan/nba-stat-attack/internal/engine"
	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/keys"
)

// Orchestration errors. InputUnavailable-class failures tell the caller
// to retry with other inputs; the contract errors map to 4xx replies.
var (
	ErrInputUnavailable = errors.New("season or game data unavailable")
	ErrCardNotOwned     = errors.New("player card not in roster")
	ErrTapeNotOwned     = errors.New("gametape not in inventory")
	ErrTapeMismatch     = errors.New("gametape does not belong to that card")
)

// UnitRepo is the slice of the repository needed to assemble one
// battle-ready unit from stored NBA data.
type UnitRepo interface {
	SeasonStats(playerID, season string) (game.SeasonStats, error)
	GameLogByID(playerID, gameID string) (*game.GameRecord, error)
	BoxScoreExtras(playerID, gameID string) (game.BoxScoreExtras, error)
	PlayerName(playerID string) (string, error)
}

// RosterRepo is the slice covering roster lookups.
type RosterRepo interface {
	GetCard(userID uint, cardID string) (*game.PlayerCard, error)
	GetTape(userID uint, tapeID string) (*game.Gametape, error)
}

// BuildOwnedUnit loads an owned card+tape pair and assembles the combat
// unit it describes. The tape must belong to the card; decks and labels
// are rebuilt from the stored logs every time, so a battle always
// reflects the current dataset.
func BuildOwnedUnit(units UnitRepo, roster RosterRepo, userID uint, cardID, tapeID string) (*game.CombatUnit, error) {
	card, err := roster.GetCard(userID, cardID)
	if err != nil {
		return nil, ErrCardNotOwned
	}
	tape, err := roster.GetTape(userID, tapeID)
	if err != nil {
		return nil, ErrTapeNotOwned
	}
	if tape.CardID != card.CardID {
		return nil, ErrTapeMismatch
	}
	return buildUnit(units, engine.Identity{
		Name:     card.PlayerName,
		PlayerID: card.PlayerID,
		CardID:   card.CardID,
		TapeID:   tape.TapeID,
	}, card.PlayerID, card.Season, tape.GameID)
}

// buildUnit runs the full derivation pipeline: season stats, game log,
// label detection, move expansion with label bonuses, validity check,
// engine build.
func buildUnit(repo UnitRepo, id engine.Identity, playerID, season, gameID string) (*game.CombatUnit, error) {
	stats, err := repo.SeasonStats(playerID, season)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s", ErrInputUnavailable, playerID, season)
	}
	rec, err := repo.GameLogByID(playerID, gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: game %s", ErrInputUnavailable, gameID)
	}
	extras, err := repo.BoxScoreExtras(playerID, gameID)
	if err != nil {
		return nil, err
	}

	labels := game.DetectLabels(*rec, extras)
	moves := game.ApplyLabelMoveBonuses(game.ExpandMoves(*rec), labels)
	if err := game.ValidateTape(moves); err != nil {
		return nil, err
	}
	return engine.BuildUnit(id, stats, *rec, moves, labels), nil
}

// TapeDisplayName renders the human-readable inventory name for one
// gametape: "20241102_BOSvsNYK [31P/7R/6A] [Label, Label]".
func TapeDisplayName(rec game.GameRecord, labels []game.Label) string {
	date := strings.ReplaceAll(rec.Date, "-", "")
	matchup := strings.ReplaceAll(rec.Matchup, " @ ", "vs")
	matchup = strings.ReplaceAll(matchup, " vs. ", "vs")

	name := fmt.Sprintf("%s_%s [%dP/%dR/%dA]", date, matchup, rec.Pts, rec.Reb, rec.Ast)
	if len(labels) > 0 {
		parts := make([]string, len(labels))
		for i, l := range labels {
			parts[i] = string(l)
		}
		name += fmt.Sprintf(" [%s]", strings.Join(parts, ", "))
	}
	return name
}

// newTape assembles the persisted row for a freshly acquired gametape.
func newTape(userID uint, card *game.PlayerCard, rec game.GameRecord, labels []game.Label) *game.Gametape {
	return &game.Gametape{
		UserID:      userID,
		CardID:      card.CardID,
		TapeID:      keys.TapeKey(card.PlayerID, rec.GameID),
		GameID:      rec.GameID,
		DisplayName: TapeDisplayName(rec, labels),
		Labels:      game.JoinLabels(labels),
	}
}
