package engine

import (
	"math/rand"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

// OffenseStrategy biases a squad's scoring choices for one quarter.
type OffenseStrategy string

const (
	OffenseFeedTheHotHand OffenseStrategy = "Feed the Hot Hand"
	OffenseBallMovement   OffenseStrategy = "Ball Movement"
	OffenseCrashTheGlass  OffenseStrategy = "Crash the Glass"
	OffenseSevenSeconds   OffenseStrategy = "7 Seconds or Less"
)

// DefenseStrategy biases a squad's defensive choices for one quarter.
type DefenseStrategy string

const (
	DefenseLockdownPaint    DefenseStrategy = "Lockdown Paint"
	DefenseFullCourtPress   DefenseStrategy = "Full Court Press"
	DefenseBoxOut           DefenseStrategy = "Box Out"
	DefenseSwitchEverything DefenseStrategy = "Switch Everything"
)

var (
	OffenseStrategies = []OffenseStrategy{
		OffenseFeedTheHotHand,
		OffenseBallMovement,
		OffenseCrashTheGlass,
		OffenseSevenSeconds,
	}
	DefenseStrategies = []DefenseStrategy{
		DefenseLockdownPaint,
		DefenseFullCourtPress,
		DefenseBoxOut,
		DefenseSwitchEverything,
	}
)

// ParseOffenseStrategy matches a wire value against the offense catalog.
func ParseOffenseStrategy(s string) (OffenseStrategy, bool) {
	for _, o := range OffenseStrategies {
		if string(o) == s {
			return o, true
		}
	}
	return "", false
}

// ParseDefenseStrategy matches a wire value against the defense catalog.
func ParseDefenseStrategy(s string) (DefenseStrategy, bool) {
	for _, d := range DefenseStrategies {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

func randomOffense(rng *rand.Rand) OffenseStrategy {
	return OffenseStrategies[rng.Intn(len(OffenseStrategies))]
}

func randomDefense(rng *rand.Rand) DefenseStrategy {
	return DefenseStrategies[rng.Intn(len(DefenseStrategies))]
}

// actionWeights builds the per-kind weights for one acting unit under
// its team's current strategy pair. Unlisted kinds keep weight 1;
// availability still decides what can actually be drawn.
func actionWeights(off OffenseStrategy, def DefenseStrategy, isStar bool, assistChain int) [game.ActionKindCount]float64 {
	var w [game.ActionKindCount]float64
	for i := range w {
		w[i] = 1
	}

	switch off {
	case OffenseFeedTheHotHand:
		if isStar {
			w[game.ActionAttack] *= 5
			w[game.ActionAssist] *= 0.3
			w[game.ActionOffensiveRebound] *= 0.5
		} else {
			w[game.ActionAssist] *= 4
			w[game.ActionAttack] *= 0.3
		}
	case OffenseBallMovement:
		if assistChain < 2 {
			w[game.ActionAssist] *= 5
			w[game.ActionAttack] *= 0.2
		} else {
			w[game.ActionAttack] *= 4
			w[game.ActionAssist] *= 0.5
		}
	case OffenseCrashTheGlass:
		w[game.ActionOffensiveRebound] *= 4
	case OffenseSevenSeconds:
		w[game.ActionAttack] *= 5
		w[game.ActionAssist] *= 0.3
		w[game.ActionDefensiveRebound] *= 0.3
		w[game.ActionOffensiveRebound] *= 0.5
	}

	switch def {
	case DefenseLockdownPaint:
		w[game.ActionBlock] *= 3
	case DefenseFullCourtPress:
		w[game.ActionSteal] *= 3
	case DefenseBoxOut:
		w[game.ActionDefensiveRebound] *= 3
	case DefenseSwitchEverything:
		// Pure availability, no bias.
	}
	return w
}

// weightedChoice draws one available kind with probability proportional
// to its weight.
func weightedChoice(rng *rand.Rand, deck game.ActionDeck, w [game.ActionKindCount]float64) (game.ActionKind, bool) {
	total := 0.0
	for i, c := range deck {
		if c > 0 {
			total += w[i]
		}
	}
	if total <= 0 {
		return 0, false
	}
	roll := rng.Float64() * total
	for i, c := range deck {
		if c <= 0 {
			continue
		}
		roll -= w[i]
		if roll < 0 {
			return game.ActionKind(i), true
		}
	}
	// Float rounding can leave a sliver; land on the last available kind.
	for i := game.ActionKindCount - 1; i >= 0; i-- {
		if deck[i] > 0 {
			return i, true
		}
	}
	return 0, false
}
