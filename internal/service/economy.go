package service

import (
	"errors"
	"math/rand"

	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/keys"
	"github.com/bolovan/nba-stat-attack/internal/logging"
	"github.com/bolovan/nba-stat-attack/internal/storage"
)

// Token economy tuning. Values mirror the card-and-tape ledger rules the
// rest of the system was balanced around.
const (
	TokensWinDuel   = 2
	TokensLoseDuel  = 1
	TokensWinSquad  = 5
	TokensLoseSquad = 1

	GametapeCost      = 3
	PlayerCardCost    = 5
	GametapeSellValue = 1
	PlayerCardValue   = 3

	// TapeRetireWins sends a tape to the Hall of Fame; TapeRetireLosses
	// cuts it from the roster.
	TapeRetireWins         = 16
	TapeRetireLosses       = 4
	TapeRetirementBonus    = 8
	MaxRosterSize          = 5
	TotalWinsToUnlockSquad = 41

	starterSampleBudget = 50
	cardSampleBudget    = 50
	tapeSampleBudget    = 20
)

var (
	ErrInsufficientTokens = errors.New("not enough tokens")
	ErrRosterFull         = errors.New("roster is full")
	ErrLastCard           = errors.New("cannot sell the last player card")
	ErrNoValidTape        = errors.New("no valid new gametape found")
	ErrNoValidCard        = errors.New("no valid new player card found")
	ErrSquadLocked        = errors.New("team battles are still locked")
)

// EconomyRepo is the repository slice the token economy mutates.
type EconomyRepo interface {
	UnitRepo
	RosterRepo
	CardPool() ([]storage.PoolEntry, error)
	PlayerGames(playerID, season string) ([]game.GameRecord, error)
	SaveUser(u *game.User) error
	CardsForUser(userID uint) ([]game.PlayerCard, error)
	SaveCard(card *game.PlayerCard) error
	DeleteCard(userID uint, cardID string) error
	TapesForUser(userID uint) ([]game.Gametape, error)
	TapesForCard(userID uint, cardID string) ([]game.Gametape, error)
	SaveTape(tape *game.Gametape) error
	DeleteTape(userID uint, tapeID string) error
	AddHallOfFameEntry(entry *game.HallOfFameEntry) error
}

// battleReward is one settled outcome applied to a user and the
// card/tape pairs that fought.
type battleReward struct {
	won   bool
	squad bool
	pairs []assetPair
}

type assetPair struct {
	cardID string
	tapeID string
}

// settleReward pays out tokens, bumps user and asset records, and runs
// retirement checks on every tape that fought. Every asset lookup is
// best-effort: a tape sold mid-battle simply no longer accrues a record.
func settleReward(repo EconomyRepo, user *game.User, r battleReward) (tokens int, err error) {
	switch {
	case r.won && r.squad:
		tokens = TokensWinSquad
	case r.won:
		tokens = TokensWinDuel
	case r.squad:
		tokens = TokensLoseSquad
	default:
		tokens = TokensLoseDuel
	}
	user.Tokens += tokens
	if r.won {
		user.Wins++
		user.TotalWins++
	} else {
		user.Losses++
	}

	for _, pair := range r.pairs {
		if card, cerr := repo.GetCard(user.ID, pair.cardID); cerr == nil {
			if r.won {
				card.Wins++
			} else {
				card.Losses++
			}
			if serr := repo.SaveCard(card); serr != nil {
				return tokens, serr
			}
		}
		tape, terr := repo.GetTape(user.ID, pair.tapeID)
		if terr != nil {
			continue
		}
		if r.won {
			tape.Wins++
		} else {
			tape.Losses++
		}
		if serr := repo.SaveTape(tape); serr != nil {
			return tokens, serr
		}
		if rerr := checkRetirement(repo, user, tape); rerr != nil {
			return tokens, rerr
		}
	}
	return tokens, repo.SaveUser(user)
}

// checkRetirement retires a tape that hit either record threshold:
// enough wins immortalizes it in the Hall of Fame with a token bonus,
// enough losses cuts it outright.
func checkRetirement(repo EconomyRepo, user *game.User, tape *game.Gametape) error {
	switch {
	case tape.Wins >= TapeRetireWins:
		playerName := ""
		if card, err := repo.GetCard(user.ID, tape.CardID); err == nil {
			playerName = card.PlayerName
		}
		entry := &game.HallOfFameEntry{
			UserID:      user.ID,
			UserName:    user.Name,
			TapeID:      tape.TapeID,
			PlayerName:  playerName,
			DisplayName: tape.DisplayName,
			Wins:        tape.Wins,
			Losses:      tape.Losses,
		}
		if err := repo.AddHallOfFameEntry(entry); err != nil {
			return err
		}
		user.Tokens += TapeRetirementBonus
		logging.Info("gametape enters the hall of fame", logging.Fields{"tape_id": tape.TapeID, "user": user.Email})
		return repo.DeleteTape(user.ID, tape.TapeID)
	case tape.Losses >= TapeRetireLosses:
		logging.Info("gametape cut after too many losses", logging.Fields{"tape_id": tape.TapeID, "user": user.Email})
		return repo.DeleteTape(user.ID, tape.TapeID)
	}
	return nil
}

// GrantStarter gives a first-time user a free card with one valid tape.
// It samples the pool, keeping the first candidate with usable season
// stats and a valid tape among its five most recent games.
func GrantStarter(repo EconomyRepo, user *game.User, rng *rand.Rand) error {
	if user.StarterGranted {
		return nil
	}
	pool, err := repo.CardPool()
	if err != nil {
		return err
	}
	budget := starterSampleBudget
	if len(pool) < budget {
		budget = len(pool)
	}
	for _, i := range rng.Perm(len(pool))[:budget] {
		cand := pool[i]
		if _, err := repo.SeasonStats(cand.PlayerID, cand.Season); err != nil {
			continue
		}
		games, err := repo.PlayerGames(cand.PlayerID, cand.Season)
		if err != nil || len(games) == 0 {
			continue
		}
		recent := games
		if len(recent) > 5 {
			recent = recent[:5]
		}
		for _, rec := range recent {
			extras, err := repo.BoxScoreExtras(cand.PlayerID, rec.GameID)
			if err != nil {
				continue
			}
			labels := game.DetectLabels(rec, extras)
			if game.ValidateTape(game.ApplyLabelMoveBonuses(game.ExpandMoves(rec), labels)) != nil {
				continue
			}
			card := &game.PlayerCard{
				UserID:     user.ID,
				CardID:     keys.CardKey(cand.PlayerID, cand.Season),
				PlayerID:   cand.PlayerID,
				Season:     cand.Season,
				PlayerName: cand.FullName,
			}
			if err := repo.SaveCard(card); err != nil {
				return err
			}
			if err := repo.SaveTape(newTape(user.ID, card, rec, labels)); err != nil {
				return err
			}
			user.StarterGranted = true
			logging.Info("starter granted", logging.Fields{"user": user.Email, "card_id": card.CardID})
			return repo.SaveUser(user)
		}
	}
	return ErrNoValidCard
}

// BuyGametape buys one random unowned valid tape for an owned card.
func BuyGametape(repo EconomyRepo, user *game.User, cardID string, rng *rand.Rand) (*game.Gametape, error) {
	if user.Tokens < GametapeCost {
		return nil, ErrInsufficientTokens
	}
	card, err := repo.GetCard(user.ID, cardID)
	if err != nil {
		return nil, ErrCardNotOwned
	}
	owned, err := repo.TapesForCard(user.ID, cardID)
	if err != nil {
		return nil, err
	}
	ownedIDs := make(map[string]bool, len(owned))
	for _, t := range owned {
		ownedIDs[t.TapeID] = true
	}
	games, err := repo.PlayerGames(card.PlayerID, card.Season)
	if err != nil || len(games) == 0 {
		return nil, ErrNoValidTape
	}

	for attempt := 0; attempt < tapeSampleBudget; attempt++ {
		rec := games[rng.Intn(len(games))]
		tapeID := keys.TapeKey(card.PlayerID, rec.GameID)
		if ownedIDs[tapeID] {
			continue
		}
		extras, err := repo.BoxScoreExtras(card.PlayerID, rec.GameID)
		if err != nil {
			continue
		}
		labels := game.DetectLabels(rec, extras)
		if game.ValidateTape(game.ApplyLabelMoveBonuses(game.ExpandMoves(rec), labels)) != nil {
			continue
		}
		tape := newTape(user.ID, card, rec, labels)
		if err := repo.SaveTape(tape); err != nil {
			return nil, err
		}
		user.Tokens -= GametapeCost
		if err := repo.SaveUser(user); err != nil {
			return nil, err
		}
		return tape, nil
	}
	return nil, ErrNoValidTape
}

// BuyPlayerCard buys a random unowned card (with one valid tape
// attached) from the pool. The roster is capped.
func BuyPlayerCard(repo EconomyRepo, user *game.User, rng *rand.Rand) (*game.PlayerCard, error) {
	if user.Tokens < PlayerCardCost {
		return nil, ErrInsufficientTokens
	}
	cards, err := repo.CardsForUser(user.ID)
	if err != nil {
		return nil, err
	}
	if len(cards) >= MaxRosterSize {
		return nil, ErrRosterFull
	}
	ownedIDs := make(map[string]bool, len(cards))
	for _, c := range cards {
		ownedIDs[c.CardID] = true
	}
	pool, err := repo.CardPool()
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoValidCard
	}

	for attempt := 0; attempt < cardSampleBudget; attempt++ {
		cand := pool[rng.Intn(len(pool))]
		cardID := keys.CardKey(cand.PlayerID, cand.Season)
		if ownedIDs[cardID] {
			continue
		}
		if _, err := repo.SeasonStats(cand.PlayerID, cand.Season); err != nil {
			continue
		}
		games, err := repo.PlayerGames(cand.PlayerID, cand.Season)
		if err != nil || len(games) == 0 {
			continue
		}
		sample := 5
		if len(games) < sample {
			sample = len(games)
		}
		for _, gi := range rng.Perm(len(games))[:sample] {
			rec := games[gi]
			extras, err := repo.BoxScoreExtras(cand.PlayerID, rec.GameID)
			if err != nil {
				continue
			}
			labels := game.DetectLabels(rec, extras)
			if game.ValidateTape(game.ApplyLabelMoveBonuses(game.ExpandMoves(rec), labels)) != nil {
				continue
			}
			card := &game.PlayerCard{
				UserID:     user.ID,
				CardID:     cardID,
				PlayerID:   cand.PlayerID,
				Season:     cand.Season,
				PlayerName: cand.FullName,
			}
			if err := repo.SaveCard(card); err != nil {
				return nil, err
			}
			if err := repo.SaveTape(newTape(user.ID, card, rec, labels)); err != nil {
				return nil, err
			}
			user.Tokens -= PlayerCardCost
			if err := repo.SaveUser(user); err != nil {
				return nil, err
			}
			return card, nil
		}
	}
	return nil, ErrNoValidCard
}

// SellGametape removes an owned tape for a flat token value.
func SellGametape(repo EconomyRepo, user *game.User, tapeID string) error {
	if _, err := repo.GetTape(user.ID, tapeID); err != nil {
		return ErrTapeNotOwned
	}
	if err := repo.DeleteTape(user.ID, tapeID); err != nil {
		return err
	}
	user.Tokens += GametapeSellValue
	return repo.SaveUser(user)
}

// SellPlayerCard removes an owned card, paying the card value plus one
// token per attached tape. The last card can never be sold.
func SellPlayerCard(repo EconomyRepo, user *game.User, cardID string) error {
	cards, err := repo.CardsForUser(user.ID)
	if err != nil {
		return err
	}
	if len(cards) <= 1 {
		return ErrLastCard
	}
	if _, err := repo.GetCard(user.ID, cardID); err != nil {
		return ErrCardNotOwned
	}
	tapes, err := repo.TapesForCard(user.ID, cardID)
	if err != nil {
		return err
	}
	if err := repo.DeleteCard(user.ID, cardID); err != nil {
		return err
	}
	user.Tokens += PlayerCardValue + len(tapes)*GametapeSellValue
	return repo.SaveUser(user)
}

// SquadUnlocked reports whether the user may start team battles: enough
// career wins and a full bench of cards that each hold at least one tape.
func SquadUnlocked(repo EconomyRepo, user *game.User) (bool, error) {
	if user.TotalWins < TotalWinsToUnlockSquad {
		return false, nil
	}
	cards, err := repo.CardsForUser(user.ID)
	if err != nil {
		return false, err
	}
	if len(cards) < MaxRosterSize {
		return false, nil
	}
	ready := 0
	for _, c := range cards {
		tapes, err := repo.TapesForCard(user.ID, c.CardID)
		if err != nil {
			return false, err
		}
		if len(tapes) > 0 {
			ready++
		}
	}
	return ready >= MaxRosterSize, nil
}
