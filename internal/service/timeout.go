package service

import (
	"time"

	"github.com/bolovan/nba-stat-attack/internal/engine"
	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/logging"
)

// HandleTimedOutBattle deals with one claimed battle whose action
// deadline passed. A battle with live state gets its pending move
// auto-played; one idle past the expiry window, or orphaned by a process
// restart, is closed out as expired.
func (s *BattleService) HandleTimedOutBattle(code string, now time.Time, expiry time.Duration) error {
	row, err := s.repo.GetBattleByCode(code)
	if err != nil {
		return err
	}
	if row.Status != game.BattleStatusInProgress {
		return nil
	}

	lb, ok := s.registry.Get(code)
	if !ok {
		// The engine state did not survive a restart. Expired battles
		// never count toward coach records.
		row.Status = game.BattleStatusExpired
		row.StatsCounted = true
		row.Summary = "expired after restart"
		if err := s.repo.UpdateBattle(row); err != nil {
			return err
		}
		logging.Info("expired orphaned battle", logging.Fields{"battle_code": code})
		return nil
	}

	if now.Sub(row.ActionDeadline) > expiry {
		logging.Info("forfeiting idle battle", logging.Fields{
			"battle_code": code, "user": lb.UserEmail,
		})
		return s.settleWithStatus(lb, row, false, "forfeited on inactivity", game.BattleStatusExpired)
	}

	if err := s.autoPlay(lb); err != nil {
		return err
	}
	return s.afterStep(lb, row)
}

// autoPlay makes the pending move on the absent player's behalf,
// uniformly at random among what is legal right now.
func (s *BattleService) autoPlay(lb *LiveBattle) error {
	return lb.lockedDo(func() error {
		if lb.settled {
			return nil
		}
		if d := lb.activeDuel(); d != nil {
			if d.IsTerminal() || d.TurnOf != engine.SidePlayer {
				return nil
			}
			kind, ok := randomDeckAction(lb, d.UnitA.Deck)
			if !ok {
				// Decks reshuffle at turn start, so a side on the clock
				// always has a play.
				return engine.ErrIllegalAction
			}
			lb.appendLog([]string{"No action submitted in time; auto-playing"})
			if err := d.PlayerAction(kind); err != nil {
				return err
			}
			lb.appendLog(d.TakeLog())
			s.playOpponentTurns(lb)
			return nil
		}

		off := engine.OffenseStrategies[lb.Rng.Intn(len(engine.OffenseStrategies))]
		def := engine.DefenseStrategies[lb.Rng.Intn(len(engine.DefenseStrategies))]
		lb.appendLog([]string{"No strategy submitted in time; auto-playing the quarter"})
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
}

func randomDeckAction(lb *LiveBattle, deck game.ActionDeck) (game.ActionKind, bool) {
	kinds := make([]game.ActionKind, 0, game.ActionKindCount)
	for i, c := range deck {
		if c > 0 {
			kinds = append(kinds, game.ActionKind(i))
		}
	}
	if len(kinds) == 0 {
		return 0, false
	}
	return kinds[lb.Rng.Intn(len(kinds))], true
}
