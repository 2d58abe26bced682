package game

import (
	"encoding/json"
	"math"
)

// ActionKind is one of the six consumable deck slots. Turnovers and
// fouls are probabilities, not actions, so they have no kind here.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionDefensiveRebound
	ActionOffensiveRebound
	ActionAssist
	ActionSteal
	ActionBlock

	ActionKindCount
)

var actionKindNames = [ActionKindCount]string{
	"attack",
	"defensive_rebound",
	"offensive_rebound",
	"assist",
	"steal",
	"block",
}

func (k ActionKind) String() string {
	if k < 0 || k >= ActionKindCount {
		return "unknown"
	}
	return actionKindNames[k]
}

// ParseActionKind maps the wire name of a deck slot back to its kind.
func ParseActionKind(s string) (ActionKind, bool) {
	for i, name := range actionKindNames {
		if name == s {
			return ActionKind(i), true
		}
	}
	return 0, false
}

// ActionDeck tracks remaining plays per kind. Keeping it a fixed-size
// array means a missing or misspelled kind cannot exist at runtime.
type ActionDeck [ActionKindCount]int

// MarshalJSON renders the deck as an object keyed by kind name so API
// payloads stay readable.
func (d ActionDeck) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, ActionKindCount)
	for i, c := range d {
		out[ActionKind(i).String()] = c
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the object form produced by MarshalJSON.
func (d *ActionDeck) UnmarshalJSON(data []byte) error {
	raw := make(map[string]int, ActionKindCount)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, c := range raw {
		if k, ok := ParseActionKind(name); ok {
			d[k] = c
		}
	}
	return nil
}

// IsEmpty reports whether every slot is used up.
func (d ActionDeck) IsEmpty() bool {
	for _, c := range d {
		if c > 0 {
			return false
		}
	}
	return true
}

// Outcome tags one entry of a unit's attack pool.
type Outcome string

const (
	OutcomeRegular Outcome = "regular"
	OutcomeStrong  Outcome = "strong"
	OutcomeWeak    Outcome = "weak"
	OutcomeMiss    Outcome = "miss"
)

// Starting timeout budget for every unit.
const InitialTimeouts = 2

// CombatUnit is the runtime fighter: derived attributes plus deck,
// buffs, labels and lifecycle flags. It is built once per battle and
// mutated only by the battle state machines.
type CombatUnit struct {
	Name     string `json:"name"`
	PlayerID string `json:"player_id"`
	CardID   string `json:"card_id,omitempty"`
	TapeID   string `json:"tape_id,omitempty"`

	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
	MaxHP   float64 `json:"max_hp"`

	CurrentHP         float64 `json:"current_hp"`
	AttackBuffStacks  int     `json:"attack_buff_stacks"`
	DefenseBuffStacks int     `json:"defense_buff_stacks"`
	SkipNextTurn      bool    `json:"skip_next_turn"`
	MicrowaveUsed     bool    `json:"microwave_used"`
	TimeoutsRemaining int     `json:"timeouts_remaining"`

	Deck       ActionDeck `json:"deck"`
	MaxDeck    ActionDeck `json:"max_deck"`
	AttackPool []Outcome  `json:"attack_pool"`

	TovChance  float64 `json:"tov_chance"`
	FoulChance float64 `json:"foul_chance"`

	// ReboundsPerGame feeds the offensive-rebound heal percentage.
	ReboundsPerGame float64 `json:"rebounds_per_game"`
	PlusMinus       int     `json:"plus_minus"`

	Labels      []Label `json:"labels"`
	PowerRating int     `json:"power_rating"`
}

// IsAlive uses a small epsilon so float drift near zero still counts as
// knocked out.
func (u *CombatUnit) IsAlive() bool {
	return u.CurrentHP > 0.1
}

// DeckIsEmpty reports whether the unit has no plays left of any kind.
func (u *CombatUnit) DeckIsEmpty() bool {
	return u.Deck.IsEmpty()
}

// HasLabel reports whether the unit carries the given label.
func (u *CombatUnit) HasLabel(l Label) bool {
	return HasLabelIn(u.Labels, l)
}

// RefillExhausted resets every deck slot to a fraction of its full
// capacity, rounding up. Used when a unit runs completely dry.
func (u *CombatUnit) RefillExhausted(ratio float64) {
	for i := range u.Deck {
		u.Deck[i] = int(math.Ceil(float64(u.MaxDeck[i]) * ratio))
	}
}

// RefillTimeout gives back half of what each slot has spent, rounding
// up, never exceeding the slot's capacity.
func (u *CombatUnit) RefillTimeout() {
	for i := range u.Deck {
		used := u.MaxDeck[i] - u.Deck[i]
		if used <= 0 {
			continue
		}
		u.Deck[i] += int(math.Ceil(float64(used) * 0.5))
		if u.Deck[i] > u.MaxDeck[i] {
			u.Deck[i] = u.MaxDeck[i]
		}
	}
}

// ApplyDamage subtracts HP, flooring at zero.
func (u *CombatUnit) ApplyDamage(dmg float64) {
	u.CurrentHP -= dmg
	if u.CurrentHP < 0 {
		u.CurrentHP = 0
	}
}

// Heal restores HP, capping at the unit's maximum.
func (u *CombatUnit) Heal(amount float64) {
	u.CurrentHP += amount
	if u.CurrentHP > u.MaxHP {
		u.CurrentHP = u.MaxHP
	}
}
