package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

func deckOf(kind game.ActionKind, n int) game.ActionDeck {
	var d game.ActionDeck
	d[kind] = n
	return d
}

func laneUnit(name string, plusMinus int) *game.CombatUnit {
	deck := game.ActionDeck{}
	deck[game.ActionAttack] = 12
	deck[game.ActionDefensiveRebound] = 4
	deck[game.ActionOffensiveRebound] = 2
	deck[game.ActionAssist] = 4
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

func laneTeam(prefix string, pms [SquadSize]int) [SquadSize]*game.CombatUnit {
	var t [SquadSize]*game.CombatUnit
	for i := range t {
		t[i] = laneUnit(fmt.Sprintf("%s%d", prefix, i+1), pms[i])
	}
	return t
}

func TestLaneInitiativeByPlusMinus(t *testing.T) {
	teamA := laneTeam("A", [SquadSize]int{5, -3, 0, 2, 7})
	teamB := laneTeam("B", [SquadSize]int{4, -2, 0, 3, 7})
	s := NewSquad(teamA, teamB, rand.New(rand.NewSource(1)))

	want := [SquadSize]bool{true, false, true, false, true}
	if s.LaneFirstA != want {
		t.Fatalf("LaneFirstA = %v, want %v", s.LaneFirstA, want)
	}
}

func TestStopperSeedsOpposingLanePools(t *testing.T) {
	teamA := laneTeam("A", [SquadSize]int{0, 0, 0, 0, 0})
	teamB := laneTeam("B", [SquadSize]int{0, 0, 0, 0, 0})
	teamA[2].Labels = []game.Label{game.LabelStopper}
	teamB[4].Labels = []game.Label{game.LabelStopper}
	NewSquad(teamA, teamB, rand.New(rand.NewSource(1)))

	countMisses := func(pool []game.Outcome) int {
		n := 0
		for _, o := range pool {
			if o == game.OutcomeMiss {
				n++
			}
		}
		return n
	}

	if got := countMisses(teamB[2].AttackPool); got != 2 {
		t.Fatalf("lane 2 opponent pool misses = %d, want 2", got)
	}
	if got := countMisses(teamA[4].AttackPool); got != 2 {
		t.Fatalf("lane 4 opponent pool misses = %d, want 2", got)
	}
	if got := countMisses(teamA[2].AttackPool); got != 0 {
		t.Fatalf("the Stopper's own pool gained %d misses", got)
	}
	if got := len(teamB[0].AttackPool); got != 1 {
		t.Fatalf("untouched lane pool length = %d, want 1", got)
	}
}

func TestLaneAttackSpilloverAndEmptyFloor(t *testing.T) {
	teamA := laneTeam("A", [SquadSize]int{0, 0, 0, 0, 0})
	teamB := laneTeam("B", [SquadSize]int{0, 0, 0, 0, 0})
	for i := range teamA {
		teamA[i].Deck = deckOf(game.ActionAttack, 12)
		teamA[i].MaxDeck = teamA[i].Deck
	}
	s := NewSquad(teamA, teamB, rand.New(rand.NewSource(3)))

	// Lane opponent is down: the attack spills onto some living defender.
	teamB[0].CurrentHP = 0
	hpBefore := 0.0
	for _, u := range teamB {
		hpBefore += u.CurrentHP
	}
	s.laneAction(true, 0, OffenseSevenSeconds, DefenseSwitchEverything)
	hpAfter := 0.0
	for _, u := range teamB {
		hpAfter += u.CurrentHP
	}
	if hpAfter >= hpBefore {
		t.Fatalf("spillover attack dealt no damage: %.1f -> %.1f", hpBefore, hpAfter)
	}

	// Whole opposing team down: the card is still spent, nothing resolves.
	for i := range teamB {
		teamB[i].CurrentHP = 0
	}
	before := teamA[1].Deck[game.ActionAttack]
	s.laneAction(true, 1, OffenseSevenSeconds, DefenseSwitchEverything)
	if got := teamA[1].Deck[game.ActionAttack]; got != before-1 {
		t.Fatalf("attack slot = %d after empty-floor attack, want %d", got, before-1)
	}

	// Support plays fizzle against an empty floor too: no buffs land and
	// the chain stays put, but a putback still heals.
	teamA[2].Deck = deckOf(game.ActionAssist, 2)
	teamA[2].MaxDeck = teamA[2].Deck
	s.laneAction(true, 2, OffenseBallMovement, DefenseSwitchEverything)
	if got := teamA[3].AttackBuffStacks; got != 0 {
		t.Fatalf("assist on an empty floor buffed a teammate: %d stacks", got)
	}
	if s.AssistChainA != 0 {
		t.Fatalf("assist chain = %d after a dead-ball assist, want 0", s.AssistChainA)
	}

	teamA[2].Deck = deckOf(game.ActionDefensiveRebound, 2)
	s.laneAction(true, 2, OffenseBallMovement, DefenseBoxOut)
	if got := teamA[2].DefenseBuffStacks; got != 0 {
		t.Fatalf("defensive rebound on an empty floor stacked: %d", got)
	}

	teamA[2].Deck = deckOf(game.ActionOffensiveRebound, 2)
	teamA[2].CurrentHP = teamA[2].MaxHP / 2
	hurt := teamA[2].CurrentHP
	s.laneAction(true, 2, OffenseCrashTheGlass, DefenseBoxOut)
	if teamA[2].CurrentHP <= hurt {
		t.Fatalf("putback on an empty floor did not heal: %.1f -> %.1f", hurt, teamA[2].CurrentHP)
	}
}

func TestQuarterEndsEarlyOnTeamWipe(t *testing.T) {
	teamA := laneTeam("A", [SquadSize]int{5, 5, 5, 5, 5})
	teamB := laneTeam("B", [SquadSize]int{0, 0, 0, 0, 0})
	for i := range teamA {
		teamA[i].Deck = deckOf(game.ActionAttack, 12)
		teamA[i].MaxDeck = teamA[i].Deck
		teamB[i].MaxHP, teamB[i].CurrentHP = 1, 1
		teamB[i].Deck = deckOf(game.ActionDefensiveRebound, 60)
		teamB[i].MaxDeck = teamB[i].Deck
	}
	s := NewSquad(teamA, teamB, rand.New(rand.NewSource(7)))

	if err := s.PlayQuarter(OffenseSevenSeconds, DefenseSwitchEverything, OffenseCrashTheGlass, DefenseBoxOut); err != nil {
		t.Fatalf("PlayQuarter: %v", err)
	}
	if s.State != SquadTeamAWon {
		t.Fatalf("state = %q, want %q", s.State, SquadTeamAWon)
	}
	if !s.IsTerminal() || !s.WinnerIsTeamA() || s.NeedsOvertime() {
		t.Fatalf("terminal flags wrong: terminal=%v winnerA=%v overtime=%v",
			s.IsTerminal(), s.WinnerIsTeamA(), s.NeedsOvertime())
	}
	if s.Quarter != 1 {
		t.Fatalf("Quarter = %d, want 1", s.Quarter)
	}

	if err := s.PlayQuarter(OffenseSevenSeconds, DefenseSwitchEverything, "", ""); err != ErrBattleOver {
		t.Fatalf("PlayQuarter after the battle ended: err = %v, want ErrBattleOver", err)
	}
	if _, err := s.StartOvertime(); err != ErrBattleOver {
		t.Fatalf("StartOvertime on a decided battle: err = %v, want ErrBattleOver", err)
	}
}

func TestRegulationTieHandsOffToOvertimeDuel(t *testing.T) {
	teamA := laneTeam("A", [SquadSize]int{0, 0, 0, 0, 0})
	teamB := laneTeam("B", [SquadSize]int{0, 0, 0, 0, 0})
	for i := range teamA {
		teamA[i].Deck = deckOf(game.ActionDefensiveRebound, 4)
		teamA[i].MaxDeck = teamA[i].Deck
		teamB[i].Deck = deckOf(game.ActionDefensiveRebound, 4)
		teamB[i].MaxDeck = teamB[i].Deck
	}
	teamA[0].CurrentHP = 40
	s := NewSquad(teamA, teamB, rand.New(rand.NewSource(11)))

	for q := 1; q <= QuartersRegulation; q++ {
		if err := s.PlayQuarter(OffenseCrashTheGlass, DefenseBoxOut, OffenseCrashTheGlass, DefenseBoxOut); err != nil {
			t.Fatalf("quarter %d: %v", q, err)
		}
		if q < QuartersRegulation && s.IsTerminal() {
			t.Fatalf("battle ended in quarter %d with nobody down", q)
		}
	}
	if s.State != SquadOvertime || !s.NeedsOvertime() {
		t.Fatalf("state after regulation = %q, want %q", s.State, SquadOvertime)
	}
	if err := s.PlayQuarter(OffenseCrashTheGlass, DefenseBoxOut, "", ""); err != ErrBattleOver {
		t.Fatalf("fifth quarter: err = %v, want ErrBattleOver", err)
	}

	d, err := s.StartOvertime()
	if err != nil {
		t.Fatalf("StartOvertime: %v", err)
	}
	if !d.Overtime {
		t.Fatal("overtime duel not flagged as overtime")
	}
	if d.UnitA != s.TeamA[0] || d.UnitB != s.TeamB[0] {
		t.Fatal("overtime duel does not reuse the first living units")
	}
	if d.UnitA.CurrentHP != 40 {
		t.Fatalf("overtime unit HP = %.1f, want the carried 40", d.UnitA.CurrentHP)
	}

	d.State = DuelPlayerWon
	s.ResolveOvertime(d)
	if s.State != SquadTeamAWon || !s.WinnerIsTeamA() {
		t.Fatalf("state after overtime = %q, want %q", s.State, SquadTeamAWon)
	}
}

func TestActionWeightTables(t *testing.T) {
	cases := []struct {
		name        string
		off         OffenseStrategy
		def         DefenseStrategy
		isStar      bool
		assistChain int
		want        map[game.ActionKind]float64
	}{
		{
			name: "seven seconds", off: OffenseSevenSeconds, def: DefenseSwitchEverything,
			want: map[game.ActionKind]float64{
				game.ActionAttack:           5,
				game.ActionAssist:           0.3,
				game.ActionDefensiveRebound: 0.3,
				game.ActionOffensiveRebound: 0.5,
				game.ActionSteal:            1,
				game.ActionBlock:            1,
			},
		},
		{
			name: "hot hand star", off: OffenseFeedTheHotHand, def: DefenseSwitchEverything, isStar: true,
			want: map[game.ActionKind]float64{
				game.ActionAttack:           5,
				game.ActionAssist:           0.3,
				game.ActionOffensiveRebound: 0.5,
			},
		},
		{
			name: "hot hand role player", off: OffenseFeedTheHotHand, def: DefenseSwitchEverything,
			want: map[game.ActionKind]float64{
				game.ActionAssist: 4,
				game.ActionAttack: 0.3,
			},
		},
		{
			name: "ball movement building", off: OffenseBallMovement, def: DefenseSwitchEverything,
			want: map[game.ActionKind]float64{
				game.ActionAssist: 5,
				game.ActionAttack: 0.2,
			},
		},
		{
			name: "ball movement cashing in", off: OffenseBallMovement, def: DefenseSwitchEverything, assistChain: 2,
			want: map[game.ActionKind]float64{
				game.ActionAttack: 4,
				game.ActionAssist: 0.5,
			},
		},
		{
			name: "crash the glass with box out", off: OffenseCrashTheGlass, def: DefenseBoxOut,
			want: map[game.ActionKind]float64{
				game.ActionOffensiveRebound: 4,
				game.ActionDefensiveRebound: 3,
			},
		},
		{
			name: "lockdown paint", off: OffenseSevenSeconds, def: DefenseLockdownPaint,
			want: map[game.ActionKind]float64{
				game.ActionBlock:            3,
				game.ActionDefensiveRebound: 0.3,
			},
		},
		{
			name: "full court press", off: OffenseCrashTheGlass, def: DefenseFullCourtPress,
			want: map[game.ActionKind]float64{
				game.ActionSteal: 3,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := actionWeights(tc.off, tc.def, tc.isStar, tc.assistChain)
			for kind, want := range tc.want {
				if !almostEqual(w[kind], want) {
					t.Errorf("weight[%s] = %v, want %v", kind, w[kind], want)
				}
			}
		})
	}
}

func TestWeightedChoiceRespectsAvailability(t *testing.T) {
	rng := rand.New(rand.NewSource(21))

	if _, ok := weightedChoice(rng, game.ActionDeck{}, actionWeights(OffenseSevenSeconds, DefenseBoxOut, false, 0)); ok {
		t.Fatal("empty deck produced a choice")
	}

	blockOnly := deckOf(game.ActionBlock, 3)
	w := actionWeights(OffenseSevenSeconds, DefenseSwitchEverything, true, 0)
	for i := 0; i < 25; i++ {
		kind, ok := weightedChoice(rng, blockOnly, w)
		if !ok || kind != game.ActionBlock {
			t.Fatalf("draw %d: got (%v, %v), want the only available kind", i, kind, ok)
		}
	}

	// A zero-weight kind never comes up while another kind carries weight.
	deck := deckOf(game.ActionSteal, 5)
	deck[game.ActionBlock] = 5
	var zeroSteal [game.ActionKindCount]float64
	zeroSteal[game.ActionBlock] = 1
	for i := 0; i < 50; i++ {
		kind, ok := weightedChoice(rng, deck, zeroSteal)
		if !ok || kind != game.ActionBlock {
			t.Fatalf("draw %d picked %v, want block only", i, kind)
		}
	}
}

func TestAssistBuffsNextLivingTeammate(t *testing.T) {
	teamA := laneTeam("A", [SquadSize]int{0, 0, 0, 0, 0})
	teamB := laneTeam("B", [SquadSize]int{0, 0, 0, 0, 0})
	teamA[0].Deck = deckOf(game.ActionAssist, 10)
	teamA[0].MaxDeck = teamA[0].Deck
	s := NewSquad(teamA, teamB, rand.New(rand.NewSource(5)))

	s.laneAction(true, 0, OffenseBallMovement, DefenseSwitchEverything)
	if got := teamA[1].AttackBuffStacks; got != 1 {
		t.Fatalf("next teammate stacks = %d, want 1", got)
	}
	if s.AssistChainA != 1 {
		t.Fatalf("assist chain = %d, want 1", s.AssistChainA)
	}

	// Skip over a downed teammate to the next living one.
	teamA[1].CurrentHP = 0
	s.laneAction(true, 0, OffenseBallMovement, DefenseSwitchEverything)
	if got := teamA[2].AttackBuffStacks; got != 1 {
		t.Fatalf("stacks past the downed teammate = %d, want 1", got)
	}

	// A Floor General doubles the hand-out.
	teamA[0].Labels = []game.Label{game.LabelFloorGeneral}
	s.laneAction(true, 0, OffenseBallMovement, DefenseSwitchEverything)
	if got := teamA[2].AttackBuffStacks; got != 3 {
		t.Fatalf("stacks after Floor General assist = %d, want 3", got)
	}

	// Attacking resets the team's chain.
	teamA[0].Deck = deckOf(game.ActionAttack, 1)
	s.laneAction(true, 0, OffenseSevenSeconds, DefenseSwitchEverything)
	if s.AssistChainA != 0 {
		t.Fatalf("assist chain after attack = %d, want 0", s.AssistChainA)
	}
}

func TestAssistFallsBackToFirstLivingTeammate(t *testing.T) {
	teamA := laneTeam("A", [SquadSize]int{0, 0, 0, 0, 0})
	teamB := laneTeam("B", [SquadSize]int{0, 0, 0, 0, 0})
	teamA[1].Deck = deckOf(game.ActionAssist, 5)
	teamA[1].MaxDeck = teamA[1].Deck
	s := NewSquad(teamA, teamB, rand.New(rand.NewSource(8)))

	// The natural receiver (slot 2) is down; the hand-out restarts at
	// the top of the lineup rather than continuing down the order.
	teamA[2].CurrentHP = 0
	s.laneAction(true, 1, OffenseBallMovement, DefenseSwitchEverything)
	if got := teamA[0].AttackBuffStacks; got != 1 {
		t.Fatalf("slot 0 stacks = %d, want 1", got)
	}
	if got := teamA[3].AttackBuffStacks; got != 0 {
		t.Fatalf("slot 3 stacks = %d, want 0", got)
	}
}

func TestOffensiveReboundHealsMostDamagedAlly(t *testing.T) {
	teamA := laneTeam("A", [SquadSize]int{0, 0, 0, 0, 0})
	teamB := laneTeam("B", [SquadSize]int{0, 0, 0, 0, 0})
	teamA[0].Deck = deckOf(game.ActionOffensiveRebound, 5)
	teamA[0].MaxDeck = teamA[0].Deck
	teamA[3].MaxHP, teamA[3].CurrentHP = 200, 10
	s := NewSquad(teamA, teamB, rand.New(rand.NewSource(9)))

	s.laneAction(true, 0, OffenseCrashTheGlass, DefenseSwitchEverything)
	if got := teamA[3].CurrentHP; !almostEqual(got, 40) {
		t.Fatalf("most damaged ally HP = %.1f, want 40 (15%% of its own max)", got)
	}
	if teamA[0].CurrentHP != 100 {
		t.Fatalf("actor HP = %.1f, want untouched 100", teamA[0].CurrentHP)
	}

	// With everyone else whole the tip-out keeps the actor alive instead.
	s2 := NewSquad(laneTeam("C", [SquadSize]int{0, 0, 0, 0, 0}), laneTeam("D", [SquadSize]int{0, 0, 0, 0, 0}), rand.New(rand.NewSource(9)))
	s2.TeamA[0].Deck = deckOf(game.ActionOffensiveRebound, 5)
	s2.TeamA[0].CurrentHP = 50
	s2.laneAction(true, 0, OffenseCrashTheGlass, DefenseSwitchEverything)
	if got := s2.TeamA[0].CurrentHP; !almostEqual(got, 65) {
		t.Fatalf("self-heal HP = %.1f, want 65", got)
	}
}
