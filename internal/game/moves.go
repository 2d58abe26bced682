package game

import "errors"

// ErrInvalidGametape marks a game whose move set is too thin to battle
// with. Callers discard the tape and resample.
var ErrInvalidGametape = errors.New("gametape does not produce a playable move set")

// MoveKind is one categorized box-score event. The four attack-related
// kinds (attack, strong, weak, miss) collapse into a single deck slot at
// deck-build time; turnovers and fouls never enter the deck, they only
// set mistake probabilities.
type MoveKind int

const (
	MoveAttack MoveKind = iota
	MoveStrongAttack
	MoveWeakAttack
	MoveMiss
	MoveDefensiveRebound
	MoveOffensiveRebound
	MoveAssist
	MoveSteal
	MoveBlock
	MoveTurnover
	MoveFoul

	MoveKindCount
)

var moveKindNames = [MoveKindCount]string{
	"attack",
	"strong_attack",
	"weak_attack",
	"miss",
	"defensive_rebound",
	"offensive_rebound",
	"assist",
	"steal",
	"block",
	"turnover",
	"foul",
}

func (k MoveKind) String() string {
	if k < 0 || k >= MoveKindCount {
		return "unknown"
	}
	return moveKindNames[k]
}

// MoveSet is the histogram of one game's moves. Only the multiset
// composition matters; there is no meaningful ordering.
type MoveSet [MoveKindCount]int

// ExpandMoves converts a box score into its move histogram.
// Two-point makes count as regular attacks, threes as strong, free
// throws as weak; every missed field goal or free throw is a miss.
// Negative differences from malformed rows clamp to zero.
func ExpandMoves(rec GameRecord) MoveSet {
	var m MoveSet
	m[MoveAttack] = max(0, rec.Fgm-rec.Fg3m)
	m[MoveStrongAttack] = max(0, rec.Fg3m)
	m[MoveWeakAttack] = max(0, rec.Ftm)
	m[MoveMiss] = max(0, rec.Fga-rec.Fgm) + max(0, rec.Fta-rec.Ftm)
	m[MoveDefensiveRebound] = max(0, rec.DReb)
	m[MoveOffensiveRebound] = max(0, rec.OReb)
	m[MoveAssist] = max(0, rec.Ast)
	m[MoveSteal] = max(0, rec.Stl)
	m[MoveBlock] = max(0, rec.Blk)
	m[MoveTurnover] = max(0, rec.Tov)
	m[MoveFoul] = max(0, rec.Pf)
	return m
}

// Total counts every move in the set, mistakes and misses included.
func (m MoveSet) Total() int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}

// NonMiss counts every move except misses.
func (m MoveSet) NonMiss() int {
	return m.Total() - m[MoveMiss]
}

// AttackMoves counts the moves that can actually land damage.
func (m MoveSet) AttackMoves() int {
	return m[MoveAttack] + m[MoveStrongAttack] + m[MoveWeakAttack]
}

// ValidateTape rejects move sets that cannot sustain a battle: a tape
// needs at least 10 non-miss moves and at least one attack that can land.
func ValidateTape(m MoveSet) error {
	if m.NonMiss() < 10 || m.AttackMoves() < 1 {
		return ErrInvalidGametape
	}
	return nil
}
