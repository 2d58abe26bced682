package engine

import (
	"math/rand"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

// randomAvailable picks uniformly among deck kinds with plays remaining.
func randomAvailable(rng *rand.Rand, deck game.ActionDeck) (game.ActionKind, bool) {
	kinds := make([]game.ActionKind, 0, game.ActionKindCount)
	for i, c := range deck {
		if c > 0 {
			kinds = append(kinds, game.ActionKind(i))
		}
	}
	if len(kinds) == 0 {
		return 0, false
	}
	return kinds[rng.Intn(len(kinds))], true
}

// countAlive tallies the living units on a squad.
func countAlive(team [SquadSize]*game.CombatUnit) int {
	n := 0
	for _, u := range team {
		if u.IsAlive() {
			n++
		}
	}
	return n
}

// firstLiving returns the lowest-slot living unit, or nil.
func firstLiving(team [SquadSize]*game.CombatUnit) *game.CombatUnit {
	for _, u := range team {
		if u.IsAlive() {
			return u
		}
	}
	return nil
}

// randomLiving picks uniformly among a team's living units, or nil.
func randomLiving(rng *rand.Rand, team [SquadSize]*game.CombatUnit) *game.CombatUnit {
	living := make([]*game.CombatUnit, 0, SquadSize)
	for _, u := range team {
		if u.IsAlive() {
			living = append(living, u)
		}
	}
	if len(living) == 0 {
		return nil
	}
	return living[rng.Intn(len(living))]
}

// mostDamagedLiving returns the living unit with the lowest HP ratio,
// the actor included, or nil when the whole team is down.
func mostDamagedLiving(team [SquadSize]*game.CombatUnit) *game.CombatUnit {
	var worst *game.CombatUnit
	worstRatio := 2.0
	for _, u := range team {
		if !u.IsAlive() {
			continue
		}
		ratio := u.CurrentHP / u.MaxHP
		if ratio < worstRatio {
			worst = u
			worstRatio = ratio
		}
	}
	return worst
}

// nextLivingTeammate returns the unit one slot over (wrapping) when it
// is alive; otherwise the lowest-slot living unit other than the actor.
func nextLivingTeammate(team [SquadSize]*game.CombatUnit, slot int) *game.CombatUnit {
	if u := team[(slot+1)%SquadSize]; u.IsAlive() {
		return u
	}
	for i, u := range team {
		if i != slot && u.IsAlive() {
			return u
		}
	}
	return nil
}

// teamStar returns the living unit with the highest attack attribute.
func teamStar(team [SquadSize]*game.CombatUnit) *game.CombatUnit {
	var star *game.CombatUnit
	for _, u := range team {
		if !u.IsAlive() {
			continue
		}
		if star == nil || u.Attack > star.Attack {
			star = u
		}
	}
	return star
}
