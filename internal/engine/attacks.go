package engine

import (
	"math/rand"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

// stopperExtraMisses is how many miss outcomes a Stopper forces into the
// opposing attack pool at battle start.
const stopperExtraMisses = 2

// applyStopper runs the cross-effect between two paired units: each side
// carrying the Stopper label pollutes the other side's attack pool. Both
// directions apply independently.
func applyStopper(a, b *game.CombatUnit) {
	if a.HasLabel(game.LabelStopper) {
		for i := 0; i < stopperExtraMisses; i++ {
			b.AttackPool = append(b.AttackPool, game.OutcomeMiss)
		}
	}
	if b.HasLabel(game.LabelStopper) {
		for i := 0; i < stopperExtraMisses; i++ {
			a.AttackPool = append(a.AttackPool, game.OutcomeMiss)
		}
	}
}

// resolveAttack plays one attack from attacker into defender: sample the
// outcome pool, compute damage through both sides' decayed stacks, spend
// the Microwave one-shot on the first landed hit. Both the attacker's
// attack stacks and the defender's defense stacks reset afterward, on a
// miss as well; the attempt consumes whatever momentum either side had
// built up.
func resolveAttack(rng *rand.Rand, attacker, defender *game.CombatUnit, log *battleLog) {
	outcome := game.OutcomeRegular
	if len(attacker.AttackPool) > 0 {
		outcome = attacker.AttackPool[rng.Intn(len(attacker.AttackPool))]
	}

	if outcome == game.OutcomeMiss {
		log.addf("%s misses the shot", attacker.Name)
	} else {
		dmg := Damage(attackWithStacks(attacker), defenseWithStacks(defender), outcome)
		if attacker.HasLabel(game.LabelMicrowave) && !attacker.MicrowaveUsed {
			dmg *= 2
			attacker.MicrowaveUsed = true
			log.addf("%s heats up instantly, doubling the hit", attacker.Name)
		}
		defender.ApplyDamage(dmg)
		log.addf("%s lands a %s attack on %s for %.0f damage (%.1f HP left)",
			attacker.Name, outcome, defender.Name, dmg, defender.CurrentHP)
	}

	attacker.AttackBuffStacks = 0
	defender.DefenseBuffStacks = 0
}
