package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/bolovan/nba-stat-attack/internal/engine"
	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/logging"
)

var (
	ErrBattleNotFound  = errors.New("battle not found")
	ErrBattleNotYours  = errors.New("battle belongs to another coach")
	ErrBattleFinished  = errors.New("battle already finished")
	ErrWrongBattleMode = errors.New("action does not apply to this battle mode")
	ErrBattleDetached  = errors.New("battle state lost; waiting for expiry")
	ErrNotInOvertime   = errors.New("battle is not awaiting a duel action")
	ErrOvertimeLive    = errors.New("regulation is over; resolve the overtime duel")
)

// BattleRepo is the repository surface battle orchestration needs: unit
// assembly, the economy for settlement and the battle metadata rows.
type BattleRepo interface {
	EconomyRepo
	GetUserByEmail(email string) (*game.User, error)
	CreateBattle(b *game.Battle) error
	GetBattleByCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
}

// BattleService drives battles end to end: construction, per-action
// stepping, settlement and expiry. Engine state lives in the registry;
// sqlite rows carry metadata and results.
type BattleService struct {
	repo          BattleRepo
	registry      *Registry
	actionTimeout time.Duration
}

func NewBattleService(repo BattleRepo, registry *Registry, actionTimeout time.Duration) *BattleService {
	return &BattleService{repo: repo, registry: registry, actionTimeout: actionTimeout}
}

// CardTapePair names one owned card/tape combination entering a battle.
type CardTapePair struct {
	CardID string `json:"card_id"`
	TapeID string `json:"tape_id"`
}

// StartDuel builds the player's unit and a random opponent, persists the
// battle row and registers the live state. If the opponent holds the
// opening turn it plays immediately, so the returned battle is always
// waiting on the player (or already decided).
func (s *BattleService) StartDuel(userEmail, code string, pair CardTapePair) (*LiveBattle, *game.Battle, error) {
	user, err := s.repo.GetUserByEmail(userEmail)
	if err != nil {
		return nil, nil, ErrBattleNotYours
	}
	unit, err := BuildOwnedUnit(s.repo, s.repo, user.ID, pair.CardID, pair.TapeID)
	if err != nil {
		return nil, nil, err
	}

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))
	opponent, err := RandomOpponent(s.repo, rng)
	if err != nil {
		return nil, nil, err
	}

	lb := &LiveBattle{
		Code:      code,
		UserEmail: userEmail,
		Mode:      game.BattleModeDuel,
		Duel:      engine.NewDuel(unit, opponent, rng),
		Pairs:     []assetPair{{cardID: pair.CardID, tapeID: pair.TapeID}},
		Rng:       rng,
	}
	row := &game.Battle{
		BattleCode:     code,
		UserEmail:      userEmail,
		Mode:           game.BattleModeDuel,
		Status:         game.BattleStatusInProgress,
		Seed:           seed,
		ActionDeadline: nextDeadline(s.actionTimeout),
	}

	err = lb.lockedDo(func() error {
		lb.appendLog(lb.Duel.TakeLog())
		s.playOpponentTurns(lb)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.CreateBattle(row); err != nil {
		return nil, nil, err
	}
	s.registry.Put(lb)

	err = lb.lockedDo(func() error {
		if lb.Duel.IsTerminal() {
			return s.settleDuelLocked(lb, row)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	logging.Info("duel started", logging.Fields{"battle_code": code, "user": userEmail})
	return lb, row, nil
}

// SubmitDuelAction plays one player action, then lets the opponent act
// until the player is back on the clock or the duel is over.
func (s *BattleService) SubmitDuelAction(userEmail, code string, kind game.ActionKind) (*LiveBattle, *game.Battle, error) {
	lb, row, err := s.liveBattle(userEmail, code)
	if err != nil {
		return nil, nil, err
	}

	err = lb.lockedDo(func() error {
		d := lb.activeDuel()
		if d == nil {
			return ErrNotInOvertime
		}
		if err := d.PlayerAction(kind); err != nil {
			return err
		}
		lb.appendLog(d.TakeLog())
		s.playOpponentTurns(lb)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if err := s.afterStep(lb, row); err != nil {
		return nil, nil, err
	}
	return lb, row, nil
}

// SubmitDuelTimeout spends one of the player's timeouts. A timeout is a
// free action: the turn stays with the player.
func (s *BattleService) SubmitDuelTimeout(userEmail, code string) (*LiveBattle, *game.Battle, error) {
	lb, row, err := s.liveBattle(userEmail, code)
	if err != nil {
		return nil, nil, err
	}
	err = lb.lockedDo(func() error {
		if lb.settled {
			return ErrBattleFinished
		}
		d := lb.activeDuel()
		if d == nil {
			return ErrNotInOvertime
		}
		if err := d.CallTimeout(engine.SidePlayer); err != nil {
			return err
		}
		lb.appendLog(d.TakeLog())
		row.ActionDeadline = nextDeadline(s.actionTimeout)
		return s.repo.UpdateBattle(row)
	})
	if err != nil {
		return nil, nil, err
	}
	return lb, row, nil
}

// StartSquad builds the user's five units from the given pairs plus five
// random opponents and opens a team battle.
func (s *BattleService) StartSquad(userEmail, code string, pairs [engine.SquadSize]CardTapePair) (*LiveBattle, *game.Battle, error) {
	user, err := s.repo.GetUserByEmail(userEmail)
	if err != nil {
		return nil, nil, ErrBattleNotYours
	}
	unlocked, err := SquadUnlocked(s.repo, user)
	if err != nil {
		return nil, nil, err
	}
	if !unlocked {
		return nil, nil, ErrSquadLocked
	}

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))

	var teamA [engine.SquadSize]*game.CombatUnit
	rewardPairs := make([]assetPair, 0, engine.SquadSize)
	for i, pair := range pairs {
		unit, err := BuildOwnedUnit(s.repo, s.repo, user.ID, pair.CardID, pair.TapeID)
		if err != nil {
			return nil, nil, err
		}
		teamA[i] = unit
		rewardPairs = append(rewardPairs, assetPair{cardID: pair.CardID, tapeID: pair.TapeID})
	}
	opponents, err := RandomOpponents(s.repo, rng, engine.SquadSize)
	if err != nil {
		return nil, nil, err
	}
	var teamB [engine.SquadSize]*game.CombatUnit
	copy(teamB[:], opponents)

	lb := &LiveBattle{
		Code:      code,
		UserEmail: userEmail,
		Mode:      game.BattleModeSquad,
		Squad:     engine.NewSquad(teamA, teamB, rng),
		Pairs:     rewardPairs,
		Rng:       rng,
	}
	row := &game.Battle{
		BattleCode:     code,
		UserEmail:      userEmail,
		Mode:           game.BattleModeSquad,
		Status:         game.BattleStatusInProgress,
		Seed:           seed,
		ActionDeadline: nextDeadline(s.actionTimeout),
	}
	if err := s.repo.CreateBattle(row); err != nil {
		return nil, nil, err
	}
	s.registry.Put(lb)
	logging.Info("squad battle started", logging.Fields{"battle_code": code, "user": userEmail})
	return lb, row, nil
}

// PlayQuarter simulates the next quarter under the player's strategy
// pair; the engine draws the opposing coach's strategies. A tied
// regulation hands off to an overtime duel, which then flows through the
// duel step functions.
func (s *BattleService) PlayQuarter(userEmail, code string, off engine.OffenseStrategy, def engine.DefenseStrategy) (*LiveBattle, *game.Battle, error) {
	lb, row, err := s.liveBattle(userEmail, code)
	if err != nil {
		return nil, nil, err
	}
	if lb.Mode != game.BattleModeSquad {
		return nil, nil, ErrWrongBattleMode
	}

	err = lb.lockedDo(func() error {
		if lb.Overtime != nil {
			return ErrOvertimeLive
		}
		if err := lb.Squad.PlayQuarter(off, def, "", ""); err != nil {
			return err
		}
		lb.appendLog(lb.Squad.TakeLog())
		if lb.Squad.NeedsOvertime() {
			ot, err := lb.Squad.StartOvertime()
			if err != nil {
				return err
			}
			lb.Overtime = ot
			lb.appendLog(ot.TakeLog())
			s.playOpponentTurns(lb)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if err := s.afterStep(lb, row); err != nil {
		return nil, nil, err
	}
	return lb, row, nil
}

// Forfeit concedes the battle on the spot; the loss settles normally.
func (s *BattleService) Forfeit(userEmail, code string) (*game.Battle, error) {
	lb, row, err := s.liveBattle(userEmail, code)
	if err != nil {
		return nil, err
	}
	if err := s.settle(lb, row, false, "forfeited"); err != nil {
		return nil, err
	}
	return row, nil
}

// Battle returns the live state and metadata row for a battle the user
// owns. A finished row without live state is still readable.
func (s *BattleService) Battle(userEmail, code string) (*LiveBattle, *game.Battle, error) {
	row, err := s.repo.GetBattleByCode(code)
	if err != nil {
		return nil, nil, ErrBattleNotFound
	}
	if row.UserEmail != userEmail {
		return nil, nil, ErrBattleNotYours
	}
	lb, _ := s.registry.Get(code)
	return lb, row, nil
}

// liveBattle resolves a code into its registry entry, enforcing
// ownership and liveness.
func (s *BattleService) liveBattle(userEmail, code string) (*LiveBattle, *game.Battle, error) {
	row, err := s.repo.GetBattleByCode(code)
	if err != nil {
		return nil, nil, ErrBattleNotFound
	}
	if row.UserEmail != userEmail {
		return nil, nil, ErrBattleNotYours
	}
	if row.Status != game.BattleStatusInProgress {
		return nil, nil, ErrBattleFinished
	}
	lb, ok := s.registry.Get(code)
	if !ok {
		// The process restarted since this battle began; the scanner
		// will expire the row.
		return nil, nil, ErrBattleDetached
	}
	return lb, row, nil
}

// playOpponentTurns lets the engine-driven side act until the player is
// to act or the duel ends. Callers must hold the battle lock.
func (s *BattleService) playOpponentTurns(lb *LiveBattle) {
	d := lb.activeDuel()
	if d == nil {
		return
	}
	for !d.IsTerminal() && d.TurnOf == engine.SideOpponent {
		if err := d.OpponentAction(); err != nil {
			// Only reachable through a bug in deck accounting; surface
			// it in the transcript rather than spinning.
			lb.appendLog([]string{fmt.Sprintf("opponent could not act: %v", err)})
			return
		}
		lb.appendLog(d.TakeLog())
	}
}

// afterStep persists the consequences of one step under the battle
// lock: settlement when the battle ended, a fresh action deadline
// otherwise. Squad battles in overtime settle through the duel branch.
func (s *BattleService) afterStep(lb *LiveBattle, row *game.Battle) error {
	return lb.lockedDo(func() error {
		if lb.settled {
			return nil
		}
		if lb.Mode == game.BattleModeSquad {
			row.Quarter = lb.Squad.Quarter
		}
		if lb.Mode == game.BattleModeSquad && lb.Overtime == nil {
			if lb.Squad.State == engine.SquadTeamAWon || lb.Squad.State == engine.SquadTeamBWon {
				return s.settleSquadLocked(lb, row)
			}
			row.ActionDeadline = nextDeadline(s.actionTimeout)
			return s.repo.UpdateBattle(row)
		}

		d := lb.activeDuel()
		row.TurnCount = d.TurnCount
		if !d.IsTerminal() {
			row.ActionDeadline = nextDeadline(s.actionTimeout)
			return s.repo.UpdateBattle(row)
		}
		if lb.Mode == game.BattleModeSquad {
			lb.Squad.ResolveOvertime(d)
			return s.settleSquadLocked(lb, row)
		}
		return s.settleDuelLocked(lb, row)
	})
}

func (s *BattleService) settleDuelLocked(lb *LiveBattle, row *game.Battle) error {
	won := lb.Duel.State == engine.DuelPlayerWon
	summary := fmt.Sprintf("decided in %d turns", lb.Duel.TurnCount)
	return s.settleLocked(lb, row, won, summary, game.BattleStatusFinished)
}

func (s *BattleService) settleSquadLocked(lb *LiveBattle, row *game.Battle) error {
	won := lb.Squad.State == engine.SquadTeamAWon
	summary := fmt.Sprintf("decided after %d quarters", lb.Squad.Quarter)
	if lb.Overtime != nil {
		summary += " and overtime"
	}
	return s.settleLocked(lb, row, won, summary, game.BattleStatusFinished)
}

// settle finishes the row and pays the reward exactly once.
func (s *BattleService) settle(lb *LiveBattle, row *game.Battle, won bool, summary string) error {
	return lb.lockedDo(func() error {
		return s.settleLocked(lb, row, won, summary, game.BattleStatusFinished)
	})
}

func (s *BattleService) settleWithStatus(lb *LiveBattle, row *game.Battle, won bool, summary, status string) error {
	return lb.lockedDo(func() error {
		return s.settleLocked(lb, row, won, summary, status)
	})
}

// settleLocked is the single settlement point; callers must hold the
// battle lock. The live battle's settled flag makes the payout
// idempotent no matter how many row copies reach here.
func (s *BattleService) settleLocked(lb *LiveBattle, row *game.Battle, won bool, summary, status string) error {
	if lb.settled || row.StatsCounted {
		return nil
	}
	lb.settled = true
	row.StatsCounted = true
	row.Status = status
	row.Summary = summary
	row.ActionDeadline = time.Time{}
	row.Winner = game.WinnerOpponent
	if won {
		row.Winner = game.WinnerPlayer
	}

	user, err := s.repo.GetUserByEmail(lb.UserEmail)
	if err != nil {
		return err
	}
	tokens, err := settleReward(s.repo, user, battleReward{
		won:   won,
		squad: lb.Mode == game.BattleModeSquad,
		pairs: lb.Pairs,
	})
	if err != nil {
		return err
	}
	row.RewardTokens = tokens

	if err := s.repo.UpdateBattle(row); err != nil {
		return err
	}
	s.registry.Remove(lb.Code)
	logging.Info("battle settled", logging.Fields{
		"battle_code": lb.Code, "user": lb.UserEmail, "winner": row.Winner, "tokens": tokens,
	})
	return nil
}
