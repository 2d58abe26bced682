package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/bolovan/nba-stat-attack/internal/engine"
)

// LiveBattle is the in-process state of one running battle: the engine
// state machine, its seeded random source and the accumulated
// play-by-play. Rows in sqlite carry only metadata; this is the single
// mutable copy, guarded by its own lock so exactly one action mutates it
// at a time.
type LiveBattle struct {
	mu sync.Mutex

	// settled flips once, under mu, when the battle pays out. The
	// scanner and a player action each load their own row copy, so the
	// row's StatsCounted column cannot arbitrate a race between them.
	settled bool

	Code      string
	UserEmail string
	Mode      string

	Duel     *engine.Duel
	Squad    *engine.Squad
	Overtime *engine.Duel

	// Pairs are the owned card/tape combinations fighting for the user,
	// kept for reward settlement.
	Pairs []assetPair

	Rng *rand.Rand
	Log []string
}

// lockedDo runs fn while holding the battle's lock. All orchestration
// goes through here; engine state machines are not thread-safe.
func (lb *LiveBattle) lockedDo(fn func() error) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return fn()
}

// appendLog folds freshly drained engine log lines into the battle's
// transcript. Callers must hold the lock.
func (lb *LiveBattle) appendLog(lines []string) []string {
	lb.Log = append(lb.Log, lines...)
	return lines
}

// activeDuel returns whichever duel machine is driving the battle:
// overtime once a squad battle has tied, the plain duel otherwise.
func (lb *LiveBattle) activeDuel() *engine.Duel {
	if lb.Overtime != nil {
		return lb.Overtime
	}
	return lb.Duel
}

// Registry holds every live battle in this process, keyed by battle
// code. A process restart loses the map; the timeout scanner then
// expires the orphaned rows.
type Registry struct {
	mu      sync.Mutex
	battles map[string]*LiveBattle
}

func NewRegistry() *Registry {
	return &Registry{battles: make(map[string]*LiveBattle)}
}

func (r *Registry) Put(lb *LiveBattle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.battles[lb.Code] = lb
}

func (r *Registry) Get(code string) (*LiveBattle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lb, ok := r.battles[code]
	return lb, ok
}

func (r *Registry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.battles, code)
}

// nextDeadline computes the action deadline stamped on the battle row
// after every player-facing transition.
func nextDeadline(actionTimeout time.Duration) time.Time {
	return time.Now().Add(actionTimeout)
}
