package engine

import "github.com/bolovan/nba-stat-attack/internal/game"

// BuildDeck turns a move histogram into the consumable action deck, the
// attack outcome pool and the two mistake probabilities. The four
// attack-related move kinds share the single attack slot; each
// contributes its tag to the pool, so drawing an attack resolves by
// uniform sampling over the pool.
func BuildDeck(moves game.MoveSet) (deck game.ActionDeck, pool []game.Outcome, tovChance, foulChance float64) {
	deck[game.ActionAttack] = moves[game.MoveAttack] + moves[game.MoveStrongAttack] +
		moves[game.MoveWeakAttack] + moves[game.MoveMiss]
	deck[game.ActionDefensiveRebound] = moves[game.MoveDefensiveRebound]
	deck[game.ActionOffensiveRebound] = moves[game.MoveOffensiveRebound]
	deck[game.ActionAssist] = moves[game.MoveAssist]
	deck[game.ActionSteal] = moves[game.MoveSteal]
	deck[game.ActionBlock] = moves[game.MoveBlock]

	pool = make([]game.Outcome, 0, deck[game.ActionAttack])
	pool = appendOutcomes(pool, game.OutcomeRegular, moves[game.MoveAttack])
	pool = appendOutcomes(pool, game.OutcomeStrong, moves[game.MoveStrongAttack])
	pool = appendOutcomes(pool, game.OutcomeWeak, moves[game.MoveWeakAttack])
	pool = appendOutcomes(pool, game.OutcomeMiss, moves[game.MoveMiss])

	// Turnovers and fouls never enter the deck; their share of the raw
	// move count becomes the unit's mistake probabilities.
	total := moves.Total()
	if total < 1 {
		total = 1
	}
	tovChance = float64(moves[game.MoveTurnover]) / float64(total)
	foulChance = float64(moves[game.MoveFoul]) / float64(total)
	return deck, pool, tovChance, foulChance
}

func appendOutcomes(pool []game.Outcome, o game.Outcome, n int) []game.Outcome {
	for i := 0; i < n; i++ {
		pool = append(pool, o)
	}
	return pool
}
