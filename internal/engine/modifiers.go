package engine

import (
	"math"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

// --- Buff stack modifiers ----------------------------------------------

// StackDecay converts signed buff/debuff stacks into a stat multiplier.
// Each extra stack is worth less than the one before it, but the total
// keeps growing with |n|.
func StackDecay(stacks int) float64 {
	if stacks == 0 {
		return 1.0
	}
	n := math.Abs(float64(stacks))
	magnitude := n * 0.3 * math.Pow(0.9, n-1)
	if stacks > 0 {
		return 1 + magnitude
	}
	return 1 / (1 + magnitude)
}

func attackWithStacks(u *game.CombatUnit) float64 {
	return u.Attack * StackDecay(u.AttackBuffStacks)
}

func defenseWithStacks(u *game.CombatUnit) float64 {
	return u.Defense * StackDecay(u.DefenseBuffStacks)
}
