package engine

import (
	"math"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

// Base constants every derived attribute builds on. Floors keep even the
// thinnest stat lines battle-worthy.
const (
	baseAttack  = 10.0
	baseDefense = 10.0
	baseHP      = 100.0

	minAttack  = 5.0
	minDefense = 5.0
	minHP      = 50.0

	// minutesBaseline is the workload pivot for the HP bonus.
	minutesBaseline = 24.0

	damageScale = 1.8
)

// BaseStats derives the display attributes from season averages alone.
// Scorers hit harder, rebounders and defenders absorb more, heavy-minute
// players last longer.
func BaseStats(s game.SeasonStats) (attack, defense, maxHP float64) {
	attack = math.Max(minAttack, baseAttack+s.Points*0.3+s.Assists*0.2-s.Turnovers*0.15)
	defense = math.Max(minDefense, baseDefense+s.Rebounds*0.25+s.Steals*1.5+s.Blocks*1.5)
	maxHP = math.Max(minHP, baseHP+(s.Minutes-minutesBaseline)*2)
	return attack, defense, maxHP
}

// DeviationMultiplier measures how far one game ran above or below the
// season average, clamped to [0.5, 2.0]. A zero season average counts as
// 0.1 so the ratio stays finite.
func DeviationMultiplier(gameValue, seasonAvg float64) float64 {
	if seasonAvg == 0 {
		seasonAvg = 0.1
	}
	return clamp(0.5+(gameValue/seasonAvg)*0.5, 0.5, 2.0)
}

// BattleStats recomputes the attribute trio with every season component
// scaled by its single-game deviation. A career night produces a unit
// well above its season baseline, a dud well below it.
func BattleStats(s game.SeasonStats, rec game.GameRecord) (attack, defense, maxHP float64) {
	devPts := DeviationMultiplier(float64(rec.Pts), s.Points)
	devAst := DeviationMultiplier(float64(rec.Ast), s.Assists)
	devTov := DeviationMultiplier(float64(rec.Tov), s.Turnovers)
	devReb := DeviationMultiplier(float64(rec.Reb), s.Rebounds)
	devStl := DeviationMultiplier(float64(rec.Stl), s.Steals)
	devBlk := DeviationMultiplier(float64(rec.Blk), s.Blocks)
	devMin := DeviationMultiplier(float64(rec.Min), s.Minutes)

	attack = math.Max(minAttack,
		baseAttack+s.Points*0.3*devPts+s.Assists*0.2*devAst-s.Turnovers*0.15*devTov)
	defense = math.Max(minDefense,
		baseDefense+s.Rebounds*0.25*devReb+s.Steals*1.5*devStl+s.Blocks*1.5*devBlk)
	maxHP = math.Max(minHP, baseHP+(s.Minutes-minutesBaseline)*2*devMin)
	return attack, defense, maxHP
}

var outcomeMultipliers = map[game.Outcome]float64{
	game.OutcomeWeak:    0.5,
	game.OutcomeRegular: 1.0,
	game.OutcomeStrong:  1.5,
}

// Damage computes the HP cost of one landed attack. The quotient form
// means defense dampens but never nullifies; every landed hit deals at
// least 1. Misses never reach this function.
func Damage(attack, defense float64, outcome game.Outcome) float64 {
	raw := (attack * attack / (attack + defense)) * damageScale * outcomeMultipliers[outcome]
	return math.Max(1, math.Floor(raw))
}

// OffensiveReboundHeal is the fraction of max HP restored by an
// offensive rebound, growing with the rebounder's season boards up to a
// quarter of the bar.
func OffensiveReboundHeal(reboundsPerGame float64) float64 {
	return math.Min(0.25, 0.15+reboundsPerGame/10*0.01)
}

// PowerRating folds the attribute trio and the deck's shot quality into
// one display number. It has no effect on battle mechanics.
func PowerRating(maxHP, attack, defense float64, moves game.MoveSet) int {
	quality := float64(moves[game.MoveStrongAttack])*3 +
		float64(moves[game.MoveAttack])*2 +
		float64(moves[game.MoveWeakAttack]) +
		float64(moves[game.MoveAssist]+moves[game.MoveDefensiveRebound])*2 -
		float64(moves[game.MoveMiss])*0.5 -
		float64(moves[game.MoveTurnover])*3
	return int(maxHP*0.3 + attack*2 + defense*2 + quality*0.5)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
