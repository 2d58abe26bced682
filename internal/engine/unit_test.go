package engine

import (
	"testing"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

func TestBuildUnitSnapshot(t *testing.T) {
	season := game.SeasonStats{Points: 22, Assists: 5, Turnovers: 2, Rebounds: 7, Steals: 1, Blocks: 1, Minutes: 32}
	rec := game.GameRecord{
		Pts: 24, Ast: 6, Tov: 2, Reb: 8, OReb: 2, DReb: 6, Stl: 1, Blk: 1,
		Fgm: 9, Fga: 17, Fg3m: 2, Fg3a: 5, Ftm: 4, Fta: 5, Pf: 3, PlusMinus: 7,
		Min: 34,
	}
	moves := game.ExpandMoves(rec)
	u := BuildUnit(Identity{Name: "Test Player", PlayerID: "p1"}, season, rec, moves, nil)

	if u.CurrentHP != u.MaxHP {
		t.Fatalf("fresh unit should start at full HP")
	}
	if u.Deck != u.MaxDeck {
		t.Fatalf("max deck must snapshot the built deck")
	}
	if u.TimeoutsRemaining != game.InitialTimeouts {
		t.Fatalf("timeouts = %d, want %d", u.TimeoutsRemaining, game.InitialTimeouts)
	}
	if u.PlusMinus != 7 {
		t.Fatalf("plus/minus = %d, want 7", u.PlusMinus)
	}
	if u.ReboundsPerGame != season.Rebounds {
		t.Fatalf("rebounds per game = %v, want %v", u.ReboundsPerGame, season.Rebounds)
	}
	if len(u.AttackPool) != u.Deck[game.ActionAttack] {
		t.Fatalf("pool size %d must match the attack slot %d", len(u.AttackPool), u.Deck[game.ActionAttack])
	}
}

func TestBuildUnitLabelStatBonuses(t *testing.T) {
	season := game.SeasonStats{Points: 20, Assists: 4, Turnovers: 2, Rebounds: 8, Steals: 1, Blocks: 1, Minutes: 30}
	rec := game.GameRecord{Pts: 20, Ast: 4, Tov: 2, Reb: 8, Stl: 1, Blk: 1, Min: 30}
	moves := game.ExpandMoves(rec)

	plain := BuildUnit(Identity{Name: "Plain"}, season, rec, moves, nil)
	boosted := BuildUnit(Identity{Name: "Boosted"}, season, rec, moves,
		[]game.Label{game.LabelTripleDouble, game.LabelBruiser})

	if !almostEqual(boosted.Defense, plain.Defense*1.25) {
		t.Fatalf("Triple Double defense = %v, want %v", boosted.Defense, plain.Defense*1.25)
	}
	if !almostEqual(boosted.MaxHP, plain.MaxHP+30) {
		t.Fatalf("Bruiser maxHP = %v, want %v", boosted.MaxHP, plain.MaxHP+30)
	}
	if boosted.CurrentHP != boosted.MaxHP {
		t.Fatalf("HP bar must re-sync after the Bruiser bonus")
	}
}

func TestBuildUnitDeterministic(t *testing.T) {
	season := game.SeasonStats{Points: 18, Assists: 7, Turnovers: 3, Rebounds: 5, Steals: 2, Blocks: 0.5, Minutes: 28}
	rec := game.GameRecord{
		Pts: 15, Ast: 9, Tov: 2, Reb: 4, OReb: 1, DReb: 3, Stl: 3, Blk: 0,
		Fgm: 6, Fga: 13, Fg3m: 1, Fg3a: 4, Ftm: 2, Fta: 2, Pf: 2, PlusMinus: 11, Min: 30,
	}
	extras := game.BoxScoreExtras{}
	labels := game.DetectLabels(rec, extras)
	moves := game.ApplyLabelMoveBonuses(game.ExpandMoves(rec), labels)

	a := BuildUnit(Identity{Name: "A"}, season, rec, moves, labels)
	b := BuildUnit(Identity{Name: "B"}, season, rec, moves, labels)

	if a.Deck != b.Deck || a.MaxDeck != b.MaxDeck {
		t.Fatalf("identical inputs must build identical decks")
	}
	if a.TovChance != b.TovChance || a.FoulChance != b.FoulChance {
		t.Fatalf("identical inputs must build identical mistake chances")
	}
	if len(a.AttackPool) != len(b.AttackPool) {
		t.Fatalf("identical inputs must build identical pools")
	}
	for i := range a.AttackPool {
		if a.AttackPool[i] != b.AttackPool[i] {
			t.Fatalf("pool diverges at %d: %s vs %s", i, a.AttackPool[i], b.AttackPool[i])
		}
	}
	if a.PowerRating != b.PowerRating {
		t.Fatalf("identical inputs must rate identically")
	}
}
