package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

// duelUnit builds a hand-tuned unit whose attacks always land regular
// outcomes and that never commits mistakes, so tests stay predictable.
func duelUnit(name string, plusMinus int) *game.CombatUnit {
	var deck game.ActionDeck
	deck[game.ActionAttack] = 10
	deck[game.ActionDefensiveRebound] = 3
	deck[game.ActionOffensiveRebound] = 2
	deck[game.ActionAssist] = 3
	deck[game.ActionSteal] = 2
	deck[game.ActionBlock] = 2
	return &game.CombatUnit{
		Name:              name,
		Attack:            20,
		Defense:           15,
		MaxHP:             100,
		CurrentHP:         100,
		TimeoutsRemaining: game.InitialTimeouts,
		Deck:              deck,
		MaxDeck:           deck,
		AttackPool:        []game.Outcome{game.OutcomeRegular},
		PlusMinus:         plusMinus,
	}
}

func TestFirstTurnByPlusMinus(t *testing.T) {
	d := NewDuel(duelUnit("A", 5), duelUnit("B", -3), rand.New(rand.NewSource(1)))
	if d.TurnOf != SidePlayer {
		t.Fatalf("unit with +5 should act first")
	}
	if !strings.Contains(d.FirstTurnReason, "5 vs -3") {
		t.Fatalf("reason %q should cite the plus/minus pair", d.FirstTurnReason)
	}

	d = NewDuel(duelUnit("A", -3), duelUnit("B", 5), rand.New(rand.NewSource(1)))
	if d.TurnOf != SideOpponent {
		t.Fatalf("the higher plus/minus wins the first turn regardless of seat")
	}

	d = NewDuel(duelUnit("A", 2), duelUnit("B", 2), rand.New(rand.NewSource(1)))
	if d.TurnOf != SidePlayer {
		t.Fatalf("ties favor unit A")
	}
}

func TestDuelTerminatesAtKnockoutThreshold(t *testing.T) {
	a := duelUnit("A", 5)
	b := duelUnit("B", -3)
	b.CurrentHP = 1
	d := NewDuel(a, b, rand.New(rand.NewSource(1)))

	if err := d.PlayerAction(game.ActionAttack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsTerminal() {
		t.Fatalf("duel must end the step the defender crosses the threshold")
	}
	if d.Winner() != a {
		t.Fatalf("survivor should win")
	}
	if b.IsAlive() {
		t.Fatalf("unit at %.2f HP should be down", b.CurrentHP)
	}
	if err := d.PlayerAction(game.ActionAttack); err != ErrBattleOver {
		t.Fatalf("acting on a decided duel = %v, want ErrBattleOver", err)
	}
}

func TestDuelContractErrors(t *testing.T) {
	a := duelUnit("A", 5)
	a.Deck[game.ActionBlock] = 0
	d := NewDuel(a, duelUnit("B", -3), rand.New(rand.NewSource(1)))

	if err := d.OpponentAction(); err != ErrNotYourTurn {
		t.Fatalf("opponent acting on player turn = %v, want ErrNotYourTurn", err)
	}
	if err := d.PlayerAction(game.ActionBlock); err != ErrIllegalAction {
		t.Fatalf("drained slot = %v, want ErrIllegalAction", err)
	}
	if err := d.CallTimeout(SideOpponent); err != ErrNotYourTurn {
		t.Fatalf("timeout out of turn = %v, want ErrNotYourTurn", err)
	}
}

func TestTimeoutIsAFreeActionWithHalfBackRefill(t *testing.T) {
	a := duelUnit("A", 5)
	a.Deck[game.ActionAttack] = 2 // 8 of 10 spent
	d := NewDuel(a, duelUnit("B", -3), rand.New(rand.NewSource(1)))

	if err := d.CallTimeout(SidePlayer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Deck[game.ActionAttack] != 6 {
		t.Fatalf("attack slot after timeout = %d, want 6 (2 + ceil(8*0.5))", a.Deck[game.ActionAttack])
	}
	if a.Deck[game.ActionAssist] != 3 {
		t.Fatalf("untouched slot must stay at capacity, got %d", a.Deck[game.ActionAssist])
	}
	if a.TimeoutsRemaining != 1 {
		t.Fatalf("timeouts remaining = %d, want 1", a.TimeoutsRemaining)
	}
	if d.TurnOf != SidePlayer {
		t.Fatalf("a timeout must not pass the turn")
	}

	if err := d.CallTimeout(SidePlayer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.CallTimeout(SidePlayer); err != ErrNoTimeoutsLeft {
		t.Fatalf("third timeout = %v, want ErrNoTimeoutsLeft", err)
	}
}

func TestExhaustionRefillRatios(t *testing.T) {
	// Player reshuffles a quarter of capacity, the engine opponent half.
	a := duelUnit("A", 5)
	a.Deck = game.ActionDeck{}
	NewDuel(a, duelUnit("B", -3), rand.New(rand.NewSource(1)))
	if a.Deck[game.ActionAttack] != 3 {
		t.Fatalf("player refill = %d, want ceil(10*0.25) = 3", a.Deck[game.ActionAttack])
	}

	b := duelUnit("B", 9)
	b.Deck = game.ActionDeck{}
	NewDuel(duelUnit("A", 5), b, rand.New(rand.NewSource(1)))
	if b.Deck[game.ActionAttack] != 5 {
		t.Fatalf("opponent refill = %d, want ceil(10*0.5) = 5", b.Deck[game.ActionAttack])
	}
}

func TestTurnoverBenchesTheActor(t *testing.T) {
	a := duelUnit("A", 5)
	a.TovChance = 1.0
	b := duelUnit("B", -3)
	d := NewDuel(a, b, rand.New(rand.NewSource(1)))

	if err := d.PlayerAction(game.ActionAttack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CurrentHP != b.MaxHP {
		t.Fatalf("aborted attack must not deal damage")
	}
	if d.TurnOf != SideOpponent {
		t.Fatalf("turn should pass to the opponent")
	}
	if err := d.OpponentAction(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The player's benched turn burns automatically.
	if d.TurnOf != SideOpponent {
		t.Fatalf("benched player should be skipped, turn back to the opponent")
	}
	if a.SkipNextTurn {
		t.Fatalf("skip flag must be consumed")
	}
}

func TestFoulRecoilStillResolvesTheAttack(t *testing.T) {
	a := duelUnit("A", 5)
	a.FoulChance = 1.0
	b := duelUnit("B", -3)
	d := NewDuel(a, b, rand.New(rand.NewSource(1)))

	if err := d.PlayerAction(game.ActionAttack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantHP := 100 - 100*foulRecoilRatio
	if !almostEqual(a.CurrentHP, wantHP) {
		t.Fatalf("recoil left %v HP, want %v", a.CurrentHP, wantHP)
	}
	if b.CurrentHP >= b.MaxHP {
		t.Fatalf("fouled attack still lands")
	}
}

func TestAttackResetsStacksEvenOnMiss(t *testing.T) {
	a := duelUnit("A", 5)
	a.AttackPool = []game.Outcome{game.OutcomeMiss}
	a.AttackBuffStacks = 3
	b := duelUnit("B", -3)
	b.DefenseBuffStacks = 2
	d := NewDuel(a, b, rand.New(rand.NewSource(1)))

	if err := d.PlayerAction(game.ActionAttack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CurrentHP != b.MaxHP {
		t.Fatalf("a miss deals exactly zero")
	}
	if a.AttackBuffStacks != 0 || b.DefenseBuffStacks != 0 {
		t.Fatalf("the attempt consumes both sides' stacks, got %d / %d",
			a.AttackBuffStacks, b.DefenseBuffStacks)
	}
}

func TestMicrowaveDoublesFirstHitOnly(t *testing.T) {
	a := duelUnit("A", 5)
	a.Labels = []game.Label{game.LabelMicrowave}
	b := duelUnit("B", -3)
	b.MaxHP, b.CurrentHP = 1000, 1000
	// Pin the opponent to self-heals so no stacks move between hits.
	b.Deck = game.ActionDeck{}
	b.Deck[game.ActionOffensiveRebound] = 5
	b.MaxDeck = b.Deck
	d := NewDuel(a, b, rand.New(rand.NewSource(1)))

	if err := d.PlayerAction(game.ActionAttack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := 1000 - b.CurrentHP
	if err := d.OpponentAction(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hpBefore := b.CurrentHP
	if err := d.PlayerAction(game.ActionAttack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := hpBefore - b.CurrentHP
	if !almostEqual(first, 2*second) {
		t.Fatalf("first hit %v should double the later %v", first, second)
	}
	if !a.MicrowaveUsed {
		t.Fatalf("one-shot flag must be spent")
	}
}

// scenarioUnit builds a realistic unit through the full pipeline so the
// determinism test exercises pool sampling and mistake rolls.
func scenarioUnit(name string, plusMinus int) *game.CombatUnit {
	season := game.SeasonStats{Points: 22, Assists: 5, Turnovers: 2, Rebounds: 7, Steals: 1, Blocks: 1, Minutes: 32}
	rec := game.GameRecord{
		Pts: 24, Ast: 6, Tov: 2, Reb: 8, OReb: 2, DReb: 6, Stl: 1, Blk: 1,
		Fgm: 9, Fga: 17, Fg3m: 2, Fg3a: 5, Ftm: 4, Fta: 5, Pf: 3,
		PlusMinus: plusMinus, Min: 34,
	}
	labels := game.DetectLabels(rec, game.BoxScoreExtras{})
	moves := game.ApplyLabelMoveBonuses(game.ExpandMoves(rec), labels)
	return BuildUnit(Identity{Name: name}, season, rec, moves, labels)
}

func playDuelTranscript(t *testing.T, seed int64) ([]string, DuelState) {
	t.Helper()
	d := NewDuel(scenarioUnit("A", 5), scenarioUnit("B", -3), rand.New(rand.NewSource(seed)))
	transcript := append([]string(nil), d.TakeLog()...)
	for steps := 0; !d.IsTerminal(); steps++ {
		if steps > 10000 {
			t.Fatalf("duel did not terminate")
		}
		var err error
		if d.TurnOf == SidePlayer {
			kind, ok := randomAvailable(d.rng, d.UnitA.Deck)
			if !ok {
				t.Fatalf("player has no available actions")
			}
			err = d.PlayerAction(kind)
		} else {
			err = d.OpponentAction()
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		transcript = append(transcript, d.TakeLog()...)
	}
	return transcript, d.State
}

func TestDuelDeterministicBySeed(t *testing.T) {
	log1, state1 := playDuelTranscript(t, 42)
	log2, state2 := playDuelTranscript(t, 42)
	if state1 != state2 {
		t.Fatalf("same seed produced different winners: %s vs %s", state1, state2)
	}
	if len(log1) != len(log2) {
		t.Fatalf("same seed produced different transcript lengths: %d vs %d", len(log1), len(log2))
	}
	for i := range log1 {
		if log1[i] != log2[i] {
			t.Fatalf("transcripts diverge at line %d: %q vs %q", i, log1[i], log2[i])
		}
	}
}
