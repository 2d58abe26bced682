package engine

import (
	"testing"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

func TestBuildDeckWorkedExample(t *testing.T) {
	rec := game.GameRecord{Fgm: 10, Fg3m: 3, Ftm: 4, Fga: 18, Fta: 5}
	moves := game.ExpandMoves(rec)
	deck, pool, _, _ := BuildDeck(moves)

	// 7 two-point makes + 3 threes + 4 free throws + 9 misses.
	if deck[game.ActionAttack] != 23 {
		t.Fatalf("attack slot = %d, want 23", deck[game.ActionAttack])
	}
	counts := map[game.Outcome]int{}
	for _, o := range pool {
		counts[o]++
	}
	want := map[game.Outcome]int{
		game.OutcomeRegular: 7,
		game.OutcomeStrong:  3,
		game.OutcomeWeak:    4,
		game.OutcomeMiss:    9,
	}
	for o, n := range want {
		if counts[o] != n {
			t.Fatalf("pool has %d %s outcomes, want %d", counts[o], o, n)
		}
	}
	if len(pool) != 23 {
		t.Fatalf("pool size = %d, want 23", len(pool))
	}
}

func TestBuildDeckMistakeChances(t *testing.T) {
	var moves game.MoveSet
	moves[game.MoveAttack] = 5
	moves[game.MoveAssist] = 2
	moves[game.MoveTurnover] = 2
	moves[game.MoveFoul] = 1
	_, _, tovChance, foulChance := BuildDeck(moves)
	if !almostEqual(tovChance, 0.2) {
		t.Fatalf("tovChance = %v, want 0.2", tovChance)
	}
	if !almostEqual(foulChance, 0.1) {
		t.Fatalf("foulChance = %v, want 0.1", foulChance)
	}
}

func TestBuildDeckEmptyMoveSet(t *testing.T) {
	var moves game.MoveSet
	deck, pool, tovChance, foulChance := BuildDeck(moves)
	if !deck.IsEmpty() {
		t.Fatalf("deck should be empty")
	}
	if len(pool) != 0 {
		t.Fatalf("pool should be empty")
	}
	if tovChance != 0 || foulChance != 0 {
		t.Fatalf("empty move set must not divide by zero (got %v / %v)", tovChance, foulChance)
	}
}

func TestBuildDeckNonAttackSlots(t *testing.T) {
	rec := game.GameRecord{Fgm: 5, Fga: 10, DReb: 6, OReb: 2, Ast: 4, Stl: 1, Blk: 3}
	deck, _, _, _ := BuildDeck(game.ExpandMoves(rec))
	if deck[game.ActionDefensiveRebound] != 6 ||
		deck[game.ActionOffensiveRebound] != 2 ||
		deck[game.ActionAssist] != 4 ||
		deck[game.ActionSteal] != 1 ||
		deck[game.ActionBlock] != 3 {
		t.Fatalf("non-attack slots wrong: %+v", deck)
	}
}
