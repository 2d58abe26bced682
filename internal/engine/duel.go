package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

// Contract violations rejected synchronously so callers cannot desync
// deck or HP state.
var (
	ErrBattleOver     = errors.New("battle already decided")
	ErrNotYourTurn    = errors.New("acting out of turn")
	ErrIllegalAction  = errors.New("no copies of that action remain")
	ErrNoTimeoutsLeft = errors.New("no timeouts remaining")
)

// DuelSide names the two seats of a duel. UnitA is the externally driven
// side; UnitB is played by the engine.
type DuelSide string

const (
	SidePlayer   DuelSide = "player"
	SideOpponent DuelSide = "opponent"
)

func otherSide(s DuelSide) DuelSide {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// DuelState is the duel's lifecycle phase.
type DuelState string

const (
	DuelOngoing     DuelState = "ongoing"
	DuelPlayerWon   DuelState = "player_won"
	DuelOpponentWon DuelState = "opponent_won"
)

// Deck refill ratios. The engine-driven opponent gets a deeper reshuffle
// to keep long duels moving.
const (
	playerRefillRatio   = 0.25
	opponentRefillRatio = 0.50

	// foulRecoilRatio is the share of max HP lost to a hard foul.
	foulRecoilRatio = 0.167
)

// Duel is the 1v1 state machine. Exactly one unit acts per step; HP is
// checked immediately after every resolved action, so the first side to
// drive the other under the knockout threshold wins.
type Duel struct {
	UnitA *game.CombatUnit `json:"unit_a"`
	UnitB *game.CombatUnit `json:"unit_b"`

	State           DuelState `json:"state"`
	TurnOf          DuelSide  `json:"turn_of"`
	TurnCount       int       `json:"turn_count"`
	FirstTurnReason string    `json:"first_turn_reason"`
	Overtime        bool      `json:"overtime"`

	rng *rand.Rand
	log *battleLog
}

// NewDuel starts a duel between freshly built units. Stopper labels
// cross-pollute the attack pools before anyone acts, then the first turn
// goes to the better single-game plus/minus, unit A on ties.
func NewDuel(a, b *game.CombatUnit, rng *rand.Rand) *Duel {
	return newDuel(a, b, rng, false)
}

// NewOvertimeDuel is the squad hand-off constructor: the two units carry
// their current HP, deck and stack state straight out of regulation.
func NewOvertimeDuel(a, b *game.CombatUnit, rng *rand.Rand) *Duel {
	return newDuel(a, b, rng, true)
}

func newDuel(a, b *game.CombatUnit, rng *rand.Rand, overtime bool) *Duel {
	d := &Duel{
		UnitA:    a,
		UnitB:    b,
		State:    DuelOngoing,
		Overtime: overtime,
		rng:      rng,
		log:      newBattleLog(),
	}
	applyStopper(a, b)

	d.TurnOf = SidePlayer
	if b.PlusMinus > a.PlusMinus {
		d.TurnOf = SideOpponent
	}
	first := d.active()
	second := d.unitOf(otherSide(d.TurnOf))
	d.FirstTurnReason = fmt.Sprintf("higher +/- (%d vs %d)", first.PlusMinus, second.PlusMinus)
	if overtime {
		d.log.addf("Overtime! %s squares off against %s", a.Name, b.Name)
	}
	d.log.addf("%s gets the first turn: %s", first.Name, d.FirstTurnReason)
	d.beginTurn()
	return d
}

// PlayerAction plays one deck action for unit A and, if the duel is
// still live, hands the turn over.
func (d *Duel) PlayerAction(kind game.ActionKind) error {
	if d.IsTerminal() {
		return ErrBattleOver
	}
	if d.TurnOf != SidePlayer {
		return ErrNotYourTurn
	}
	return d.act(SidePlayer, kind)
}

// OpponentAction plays one engine-chosen action for unit B, uniformly
// random among the kinds with plays remaining.
func (d *Duel) OpponentAction() error {
	if d.IsTerminal() {
		return ErrBattleOver
	}
	if d.TurnOf != SideOpponent {
		return ErrNotYourTurn
	}
	kind, ok := randomAvailable(d.rng, d.UnitB.Deck)
	if !ok {
		return ErrIllegalAction
	}
	return d.act(SideOpponent, kind)
}

// CallTimeout spends one of the side's timeouts to claw back half the
// used deck. It is a free action: the turn does not pass.
func (d *Duel) CallTimeout(side DuelSide) error {
	if d.IsTerminal() {
		return ErrBattleOver
	}
	if d.TurnOf != side {
		return ErrNotYourTurn
	}
	u := d.unitOf(side)
	if u.TimeoutsRemaining <= 0 {
		return ErrNoTimeoutsLeft
	}
	u.TimeoutsRemaining--
	u.RefillTimeout()
	d.log.addf("%s calls timeout and regroups (%d left)", u.Name, u.TimeoutsRemaining)
	return nil
}

// IsTerminal reports whether the duel has been decided.
func (d *Duel) IsTerminal() bool { return d.State != DuelOngoing }

// Winner returns the surviving unit once the duel is decided, nil before.
func (d *Duel) Winner() *game.CombatUnit {
	switch d.State {
	case DuelPlayerWon:
		return d.UnitA
	case DuelOpponentWon:
		return d.UnitB
	}
	return nil
}

// TakeLog drains the play-by-play accumulated since the last call.
func (d *Duel) TakeLog() []string { return d.log.take() }

func (d *Duel) unitOf(side DuelSide) *game.CombatUnit {
	if side == SideOpponent {
		return d.UnitB
	}
	return d.UnitA
}

func (d *Duel) active() *game.CombatUnit { return d.unitOf(d.TurnOf) }

// beginTurn runs the bookkeeping owed to the side about to act: count
// the turn, reshuffle an exhausted deck, and burn a pending turnover
// skip (which passes the turn straight back).
func (d *Duel) beginTurn() {
	d.TurnCount++
	u := d.active()
	if u.DeckIsEmpty() {
		ratio := playerRefillRatio
		if d.TurnOf == SideOpponent {
			ratio = opponentRefillRatio
		}
		u.RefillExhausted(ratio)
		d.log.addf("%s is out of plays and reshuffles a short deck", u.Name)
	}
	if u.SkipNextTurn {
		u.SkipNextTurn = false
		d.log.addf("%s sits out the turn after the turnover", u.Name)
		d.TurnOf = otherSide(d.TurnOf)
		d.beginTurn()
	}
}

func (d *Duel) act(side DuelSide, kind game.ActionKind) error {
	actor := d.unitOf(side)
	target := d.unitOf(otherSide(side))
	if actor.Deck[kind] <= 0 {
		return ErrIllegalAction
	}
	actor.Deck[kind]--

	if aborted := d.rollMistakes(actor, kind); !aborted {
		d.applyAction(actor, target, kind)
	}
	d.finishAction(side, actor, target)
	return nil
}

// rollMistakes runs the turnover and foul checks that precede an
// action's effect. A turnover aborts the action and benches the unit
// next turn; a foul costs recoil HP while play continues. The rolls are
// independent and both can fire on the same action.
func (d *Duel) rollMistakes(u *game.CombatUnit, kind game.ActionKind) (aborted bool) {
	if kind == game.ActionAttack || kind == game.ActionAssist {
		if d.rng.Float64() < u.TovChance {
			u.SkipNextTurn = true
			aborted = true
			d.log.addf("%s coughs the ball up and will sit out next turn", u.Name)
		}
	}
	if kind == game.ActionAttack || kind == game.ActionSteal || kind == game.ActionBlock {
		if d.rng.Float64() < u.FoulChance {
			recoil := u.MaxHP * foulRecoilRatio
			u.ApplyDamage(recoil)
			d.log.addf("%s commits a hard foul and takes %.1f recoil damage", u.Name, recoil)
		}
	}
	return aborted
}

func (d *Duel) applyAction(actor, target *game.CombatUnit, kind game.ActionKind) {
	switch kind {
	case game.ActionAttack:
		resolveAttack(d.rng, actor, target, d.log)
	case game.ActionDefensiveRebound:
		actor.DefenseBuffStacks++
		d.log.addf("%s secures the defensive board (+1 defense stack)", actor.Name)
	case game.ActionOffensiveRebound:
		heal := actor.MaxHP * OffensiveReboundHeal(actor.ReboundsPerGame)
		actor.Heal(heal)
		d.log.addf("%s crashes the offensive glass and recovers %.1f HP", actor.Name, heal)
	case game.ActionAssist:
		stacks := 1
		if actor.HasLabel(game.LabelFloorGeneral) {
			stacks = 2
		}
		actor.AttackBuffStacks += stacks
		d.log.addf("%s sets up the next play (+%d attack stack)", actor.Name, stacks)
	case game.ActionSteal:
		target.AttackBuffStacks--
		d.log.addf("%s picks %s's pocket (-1 attack stack)", actor.Name, target.Name)
	case game.ActionBlock:
		stacks := 1
		if actor.HasLabel(game.LabelRimProtector) {
			stacks = 2
		}
		target.DefenseBuffStacks -= stacks
		d.log.addf("%s swats the shot (-%d defense stack on %s)", actor.Name, stacks, target.Name)
	}
}

// finishAction checks for a knockout the instant the action resolves.
// The defender is checked first: a unit that fouls itself out while
// landing the killing blow still wins.
func (d *Duel) finishAction(side DuelSide, actor, target *game.CombatUnit) {
	if !target.IsAlive() {
		d.declareWinner(side, actor)
		return
	}
	if !actor.IsAlive() {
		d.declareWinner(otherSide(side), target)
		return
	}
	d.TurnOf = otherSide(side)
	d.beginTurn()
}

func (d *Duel) declareWinner(side DuelSide, u *game.CombatUnit) {
	if side == SidePlayer {
		d.State = DuelPlayerWon
	} else {
		d.State = DuelOpponentWon
	}
	d.log.addf("%s wins the duel after %d turns", u.Name, d.TurnCount)
}
