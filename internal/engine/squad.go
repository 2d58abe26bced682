package engine

import (
	"math/rand"

	"github.com/bolovan/nba-stat-attack/internal/game"
)

const (
	// SquadSize is the number of lanes in a team battle.
	SquadSize = 5

	// QuartersRegulation bounds the quarter counter.
	QuartersRegulation = 4

	// RoundsPerQuarter is how many full lane sweeps one quarter runs.
	RoundsPerQuarter = 12

	squadRefillRatio = 0.25

	// squadAllyHealRatio is the max-HP share restored to the most
	// damaged teammate by a squad offensive rebound.
	squadAllyHealRatio = 0.15
)

// SquadState is the team battle's lifecycle phase.
type SquadState string

const (
	SquadOngoing  SquadState = "ongoing"
	SquadTeamAWon SquadState = "team_a_won"
	SquadTeamBWon SquadState = "team_b_won"
	// SquadOvertime means regulation ended with equal living counts and
	// the battle must hand off to an overtime duel.
	SquadOvertime SquadState = "overtime"
)

// Squad is the 5v5 state machine: four quarters of twelve lane sweeps,
// each lane a fixed positional pairing whose initiative never changes.
type Squad struct {
	TeamA [SquadSize]*game.CombatUnit `json:"team_a"`
	TeamB [SquadSize]*game.CombatUnit `json:"team_b"`

	State   SquadState `json:"state"`
	Quarter int        `json:"quarter"`

	// LaneFirstA[i] is true when lane i's initiative belongs to team A.
	LaneFirstA [SquadSize]bool `json:"lane_first_a"`

	AssistChainA int `json:"assist_chain_a"`
	AssistChainB int `json:"assist_chain_b"`

	rng *rand.Rand
	log *battleLog
}

// NewSquad starts a team battle. Lane initiative goes to the better
// single-game plus/minus at each index (team A on ties) and Stopper
// labels cross-pollute lane by lane before anyone acts.
func NewSquad(teamA, teamB [SquadSize]*game.CombatUnit, rng *rand.Rand) *Squad {
	s := &Squad{
		TeamA: teamA,
		TeamB: teamB,
		State: SquadOngoing,
		rng:   rng,
		log:   newBattleLog(),
	}
	for i := 0; i < SquadSize; i++ {
		s.LaneFirstA[i] = teamA[i].PlusMinus >= teamB[i].PlusMinus
		applyStopper(teamA[i], teamB[i])
	}
	return s
}

// PlayQuarter simulates the next quarter under the given strategy pairs.
// Empty team-B strategies are drawn uniformly, which is how the engine
// plays the opposing coach.
func (s *Squad) PlayQuarter(offA OffenseStrategy, defA DefenseStrategy, offB OffenseStrategy, defB DefenseStrategy) error {
	if s.State != SquadOngoing {
		return ErrBattleOver
	}
	if offB == "" {
		offB = randomOffense(s.rng)
	}
	if defB == "" {
		defB = randomDefense(s.rng)
	}
	s.Quarter++
	s.log.addf("Q%d: team A runs %s / %s, team B answers with %s / %s",
		s.Quarter, offA, defA, offB, defB)

	for round := 0; round < RoundsPerQuarter; round++ {
		for lane := 0; lane < SquadSize; lane++ {
			if s.LaneFirstA[lane] {
				s.laneAction(true, lane, offA, defA)
				s.laneAction(false, lane, offB, defB)
			} else {
				s.laneAction(false, lane, offB, defB)
				s.laneAction(true, lane, offA, defA)
			}
		}
		if countAlive(s.TeamA) == 0 || countAlive(s.TeamB) == 0 {
			break
		}
	}

	aliveA, aliveB := countAlive(s.TeamA), countAlive(s.TeamB)
	s.log.addf("End of Q%d: %d vs %d players standing", s.Quarter, aliveA, aliveB)
	if aliveA == 0 || aliveB == 0 || s.Quarter >= QuartersRegulation {
		s.settle(aliveA, aliveB)
	}
	return nil
}

// IsTerminal reports whether the battle is decided or waiting on
// overtime.
func (s *Squad) IsTerminal() bool { return s.State != SquadOngoing }

// NeedsOvertime reports whether regulation ended tied.
func (s *Squad) NeedsOvertime() bool { return s.State == SquadOvertime }

// WinnerIsTeamA reports the decided winner; valid only once the state is
// one of the two won states.
func (s *Squad) WinnerIsTeamA() bool { return s.State == SquadTeamAWon }

// TakeLog drains the play-by-play accumulated since the last call.
func (s *Squad) TakeLog() []string { return s.log.take() }

// StartOvertime hands the battle off to a sudden-death duel between the
// first living unit of each team, carrying their current HP, deck and
// stack state.
func (s *Squad) StartOvertime() (*Duel, error) {
	if s.State != SquadOvertime {
		return nil, ErrBattleOver
	}
	a, b := firstLiving(s.TeamA), firstLiving(s.TeamB)
	if a == nil || b == nil {
		return nil, ErrBattleOver
	}
	return NewOvertimeDuel(a, b, s.rng), nil
}

// ResolveOvertime folds an overtime duel's result back into the squad
// state.
func (s *Squad) ResolveOvertime(d *Duel) {
	switch d.State {
	case DuelPlayerWon:
		s.State = SquadTeamAWon
	case DuelOpponentWon:
		s.State = SquadTeamBWon
	}
}

func (s *Squad) settle(aliveA, aliveB int) {
	switch {
	case aliveA > aliveB:
		s.State = SquadTeamAWon
		s.log.add("Team A takes the battle on survivors")
	case aliveB > aliveA:
		s.State = SquadTeamBWon
		s.log.add("Team B takes the battle on survivors")
	case aliveA == 0:
		// Mutual wipeout cannot happen in lane play; guard anyway.
		s.State = SquadTeamBWon
	default:
		s.State = SquadOvertime
		s.log.add("Regulation ends level: overtime")
	}
}

// laneAction runs one unit's action in its lane: reshuffle if dry, draw
// a strategy-weighted kind, then resolve against the lane opponent with
// spillover to a random living one when the slot is down.
func (s *Squad) laneAction(isTeamA bool, lane int, off OffenseStrategy, def DefenseStrategy) {
	team, opponents := s.TeamA, s.TeamB
	if !isTeamA {
		team, opponents = s.TeamB, s.TeamA
	}
	actor := team[lane]
	if !actor.IsAlive() {
		return
	}
	if actor.DeckIsEmpty() {
		actor.RefillExhausted(squadRefillRatio)
		s.log.addf("%s is out of plays and reshuffles a short deck", actor.Name)
	}

	star := teamStar(team)
	w := actionWeights(off, def, actor == star, s.assistChain(isTeamA))
	kind, ok := weightedChoice(s.rng, actor.Deck, w)
	if !ok {
		return
	}
	actor.Deck[kind]--

	target := opponents[lane]
	if !target.IsAlive() {
		target = randomLiving(s.rng, opponents)
	}
	// With the other side wiped out the move is spent with no effect;
	// only a putback still resolves.
	if target == nil && kind != game.ActionOffensiveRebound {
		return
	}

	switch kind {
	case game.ActionAttack:
		resolveAttack(s.rng, actor, target, s.log)
		s.resetAssistChain(isTeamA)
	case game.ActionDefensiveRebound:
		actor.DefenseBuffStacks++
		s.log.addf("%s boxes out and boards (+1 defense stack)", actor.Name)
	case game.ActionOffensiveRebound:
		ally := mostDamagedLiving(team)
		if ally == nil {
			return
		}
		heal := ally.MaxHP * squadAllyHealRatio
		ally.Heal(heal)
		s.log.addf("%s tips the ball out, %s recovers %.1f HP", actor.Name, ally.Name, heal)
	case game.ActionAssist:
		s.bumpAssistChain(isTeamA)
		mate := nextLivingTeammate(team, lane)
		if mate == nil {
			s.log.addf("%s has no one left to set up", actor.Name)
			return
		}
		stacks := 1
		if actor.HasLabel(game.LabelFloorGeneral) {
			stacks = 2
		}
		mate.AttackBuffStacks += stacks
		s.log.addf("%s finds %s for the next look (+%d attack stack)", actor.Name, mate.Name, stacks)
	case game.ActionSteal:
		target.AttackBuffStacks--
		s.log.addf("%s strips %s (-1 attack stack)", actor.Name, target.Name)
	case game.ActionBlock:
		stacks := 1
		if actor.HasLabel(game.LabelRimProtector) {
			stacks = 2
		}
		target.DefenseBuffStacks -= stacks
		s.log.addf("%s swats %s (-%d defense stack)", actor.Name, target.Name, stacks)
	}
}

func (s *Squad) assistChain(isTeamA bool) int {
	if isTeamA {
		return s.AssistChainA
	}
	return s.AssistChainB
}

func (s *Squad) bumpAssistChain(isTeamA bool) {
	if isTeamA {
		s.AssistChainA++
	} else {
		s.AssistChainB++
	}
}

func (s *Squad) resetAssistChain(isTeamA bool) {
	if isTeamA {
		s.AssistChainA = 0
	} else {
		s.AssistChainB = 0
	}
}
