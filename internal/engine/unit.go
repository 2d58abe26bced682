package engine

import "github.com/bolovan/nba-stat-attack/internal/game"

// Identity names a combat unit and ties it back to the owning assets.
// Opponent units leave CardID/TapeID empty.
type Identity struct {
	Name     string
	PlayerID string
	CardID   string
	TapeID   string
}

// BuildUnit assembles a battle-ready unit from a season line, one game
// and its labels. The move set must already carry its label move
// bonuses (game.ApplyLabelMoveBonuses); label stat bonuses are applied
// here in a fixed order so repeated builds agree: Triple Double scales
// defense, then Bruiser pads max HP and the bar is re-synced.
func BuildUnit(id Identity, season game.SeasonStats, rec game.GameRecord, moves game.MoveSet, labels []game.Label) *game.CombatUnit {
	attack, defense, maxHP := BattleStats(season, rec)
	deck, pool, tovChance, foulChance := BuildDeck(moves)

	u := &game.CombatUnit{
		Name:              id.Name,
		PlayerID:          id.PlayerID,
		CardID:            id.CardID,
		TapeID:            id.TapeID,
		Attack:            attack,
		Defense:           defense,
		MaxHP:             maxHP,
		CurrentHP:         maxHP,
		TimeoutsRemaining: game.InitialTimeouts,
		Deck:              deck,
		MaxDeck:           deck,
		AttackPool:        pool,
		TovChance:         tovChance,
		FoulChance:        foulChance,
		ReboundsPerGame:   season.Rebounds,
		PlusMinus:         rec.PlusMinus,
		Labels:            labels,
	}

	if u.HasLabel(game.LabelTripleDouble) {
		u.Defense *= 1.25
	}
	if u.HasLabel(game.LabelBruiser) {
		u.MaxHP += 30
		u.CurrentHP = u.MaxHP
	}
	u.PowerRating = PowerRating(u.MaxHP, u.Attack, u.Defense, moves)
	return u
}
