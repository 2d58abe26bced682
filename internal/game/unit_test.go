package game

import (
	"encoding/json"
	"testing"
)

func TestIsAliveEpsilon(t *testing.T) {
	u := &CombatUnit{MaxHP: 100, CurrentHP: 0.1}
	if u.IsAlive() {
		t.Error("unit at the knockout threshold still alive")
	}
	u.CurrentHP = 0.11
	if !u.IsAlive() {
		t.Error("unit just above the threshold reported down")
	}
	u.CurrentHP = 0
	if u.IsAlive() {
		t.Error("unit at zero HP reported alive")
	}
}

func TestRefillExhaustedRoundsUp(t *testing.T) {
	u := &CombatUnit{}
	u.MaxDeck[ActionAttack] = 10
	u.MaxDeck[ActionAssist] = 1
	u.RefillExhausted(0.25)

	if got := u.Deck[ActionAttack]; got != 3 {
		t.Errorf("attack slot = %d, want ceil(10*0.25) = 3", got)
	}
	if got := u.Deck[ActionAssist]; got != 1 {
		t.Errorf("assist slot = %d, want 1", got)
	}
	if got := u.Deck[ActionBlock]; got != 0 {
		t.Errorf("empty slot = %d, want 0", got)
	}
}

func TestRefillTimeoutHalfBackCapped(t *testing.T) {
	u := &CombatUnit{}
	u.MaxDeck[ActionAttack] = 10
	u.Deck[ActionAttack] = 2
	u.MaxDeck[ActionSteal] = 3
	u.Deck[ActionSteal] = 3
	u.MaxDeck[ActionBlock] = 4
	u.Deck[ActionBlock] = 3
	u.MaxDeck[ActionAssist] = 2
	u.Deck[ActionAssist] = 0
	u.RefillTimeout()

	if got := u.Deck[ActionAttack]; got != 6 {
		t.Errorf("attack slot = %d, want 2 + ceil(8*0.5) = 6", got)
	}
	if got := u.Deck[ActionSteal]; got != 3 {
		t.Errorf("untouched slot = %d, want 3", got)
	}
	if got := u.Deck[ActionBlock]; got != 4 {
		t.Errorf("block slot = %d, want capped at 4", got)
	}
	if got := u.Deck[ActionAssist]; got != 1 {
		t.Errorf("assist slot = %d, want 1", got)
	}
}

func TestDamageAndHealBounds(t *testing.T) {
	u := &CombatUnit{MaxHP: 100, CurrentHP: 40}
	u.ApplyDamage(150)
	if u.CurrentHP != 0 {
		t.Errorf("HP = %.1f after overkill, want 0", u.CurrentHP)
	}
	u.CurrentHP = 40
	u.Heal(80)
	if u.CurrentHP != 100 {
		t.Errorf("HP = %.1f after overheal, want the 100 cap", u.CurrentHP)
	}
}

func TestActionDeckJSON(t *testing.T) {
	var d ActionDeck
	d[ActionAttack] = 7
	d[ActionBlock] = 2

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ActionDeck
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip = %v, want %v", back, d)
	}

	var partial ActionDeck
	if err := json.Unmarshal([]byte(`{"attack":3,"half_court_heave":9}`), &partial); err != nil {
		t.Fatalf("unmarshal with unknown key: %v", err)
	}
	if partial[ActionAttack] != 3 {
		t.Errorf("attack = %d, want 3", partial[ActionAttack])
	}
	if !deckOnlyHas(partial, ActionAttack) {
		t.Errorf("unknown key leaked into the deck: %v", partial)
	}
}

func deckOnlyHas(d ActionDeck, kind ActionKind) bool {
	for i, c := range d {
		if ActionKind(i) != kind && c != 0 {
			return false
		}
	}
	return true
}

func TestParseActionKind(t *testing.T) {
	if k, ok := ParseActionKind("offensive_rebound"); !ok || k != ActionOffensiveRebound {
		t.Errorf("offensive_rebound parsed as (%v, %v)", k, ok)
	}
	if _, ok := ParseActionKind("half_court_heave"); ok {
		t.Error("unknown kind parsed successfully")
	}
}

func TestGametapeLabelList(t *testing.T) {
	tape := &Gametape{Labels: "Triple Double, Stopper"}
	got := tape.LabelList()
	if len(got) != 2 || got[0] != LabelTripleDouble || got[1] != LabelStopper {
		t.Fatalf("LabelList = %v", got)
	}
	if JoinLabels(got) != "Triple Double,Stopper" {
		t.Errorf("JoinLabels = %q", JoinLabels(got))
	}

	empty := &Gametape{}
	if got := empty.LabelList(); got != nil {
		t.Errorf("LabelList on empty column = %v, want nil", got)
	}
}
