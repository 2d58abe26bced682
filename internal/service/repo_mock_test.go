package service

import (
	"fmt"

	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/keys"
	"github.com/bolovan/nba-stat-attack/internal/storage"
)

// memRepo is an in-memory BattleRepo for service tests.
type memRepo struct {
	users   map[string]*game.User
	cards   map[string]*game.PlayerCard
	tapes   map[string]*game.Gametape
	battles map[string]*game.Battle
	hof     []game.HallOfFameEntry

	pool   []storage.PoolEntry
	stats  map[string]game.SeasonStats
	games  map[string][]game.GameRecord
	extras map[string]game.BoxScoreExtras
	names  map[string]string
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:   map[string]*game.User{},
		cards:   map[string]*game.PlayerCard{},
		tapes:   map[string]*game.Gametape{},
		battles: map[string]*game.Battle{},
		stats:   map[string]game.SeasonStats{},
		games:   map[string][]game.GameRecord{},
		extras:  map[string]game.BoxScoreExtras{},
		names:   map[string]string{},
	}
}

func ownedKey(userID uint, id string) string { return fmt.Sprintf("%d/%s", userID, id) }

func (m *memRepo) SeasonStats(playerID, season string) (game.SeasonStats, error) {
	s, ok := m.stats[keys.CardKey(playerID, season)]
	if !ok {
		return game.SeasonStats{}, storage.ErrStatsUnavailable
	}
	return s, nil
}

func (m *memRepo) PlayerGames(playerID, season string) ([]game.GameRecord, error) {
	return m.games[keys.CardKey(playerID, season)], nil
}

func (m *memRepo) GameLogByID(playerID, gameID string) (*game.GameRecord, error) {
	for _, recs := range m.games {
		for _, rec := range recs {
			if rec.GameID == gameID {
				out := rec
				return &out, nil
			}
		}
	}
	return nil, storage.ErrGameNotFound
}

func (m *memRepo) BoxScoreExtras(playerID, gameID string) (game.BoxScoreExtras, error) {
	return m.extras[keys.TapeKey(playerID, gameID)], nil
}

func (m *memRepo) CardPool() ([]storage.PoolEntry, error) { return m.pool, nil }

func (m *memRepo) PlayerName(playerID string) (string, error) {
	if n, ok := m.names[playerID]; ok {
		return n, nil
	}
	return "", storage.ErrNotFound
}

func (m *memRepo) GetUserByEmail(email string) (*game.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *memRepo) SaveUser(u *game.User) error {
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *memRepo) CardsForUser(userID uint) ([]game.PlayerCard, error) {
	var out []game.PlayerCard
	for _, c := range m.cards {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memRepo) GetCard(userID uint, cardID string) (*game.PlayerCard, error) {
	c, ok := m.cards[ownedKey(userID, cardID)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (m *memRepo) SaveCard(card *game.PlayerCard) error {
	cp := *card
	m.cards[ownedKey(card.UserID, card.CardID)] = &cp
	return nil
}

func (m *memRepo) DeleteCard(userID uint, cardID string) error {
	delete(m.cards, ownedKey(userID, cardID))
	for k, t := range m.tapes {
		if t.UserID == userID && t.CardID == cardID {
			delete(m.tapes, k)
		}
	}
	return nil
}

func (m *memRepo) TapesForUser(userID uint) ([]game.Gametape, error) {
	var out []game.Gametape
	for _, t := range m.tapes {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memRepo) TapesForCard(userID uint, cardID string) ([]game.Gametape, error) {
	var out []game.Gametape
	for _, t := range m.tapes {
		if t.UserID == userID && t.CardID == cardID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memRepo) GetTape(userID uint, tapeID string) (*game.Gametape, error) {
	t, ok := m.tapes[ownedKey(userID, tapeID)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (m *memRepo) SaveTape(tape *game.Gametape) error {
	cp := *tape
	m.tapes[ownedKey(tape.UserID, tape.TapeID)] = &cp
	return nil
}

func (m *memRepo) DeleteTape(userID uint, tapeID string) error {
	delete(m.tapes, ownedKey(userID, tapeID))
	return nil
}

func (m *memRepo) AddHallOfFameEntry(entry *game.HallOfFameEntry) error {
	m.hof = append(m.hof, *entry)
	return nil
}

func (m *memRepo) CreateBattle(b *game.Battle) error {
	cp := *b
	m.battles[b.BattleCode] = &cp
	return nil
}

// GetBattleByCode hands out a fresh copy per call, like a real row scan;
// callers cannot see each other's in-flight mutations.
func (m *memRepo) GetBattleByCode(code string) (*game.Battle, error) {
	b, ok := m.battles[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memRepo) UpdateBattle(b *game.Battle) error {
	cp := *b
	m.battles[b.BattleCode] = &cp
	return nil
}

// validRecord is a box score line comfortably above the tape validity
// floor.
func validRecord(gameID, date string) game.GameRecord {
	return game.GameRecord{
		GameID: gameID, Date: date, Matchup: "BOS @ NYK",
		Min: 34, Pts: 27, Ast: 6, Tov: 2,
		Reb: 8, OReb: 2, DReb: 6, Stl: 1, Blk: 1,
		Fgm: 10, Fga: 18, Fg3m: 3, Fg3a: 7, Ftm: 4, Fta: 5,
		Pf: 2, PlusMinus: 9,
	}
}

// thinRecord cannot pass tape validation (too few non-miss moves).
func thinRecord(gameID string) game.GameRecord {
	return game.GameRecord{
		GameID: gameID, Date: "2024-11-01", Matchup: "LAL vs. DEN",
		Min: 12, Pts: 2, Fgm: 1, Fga: 6, Reb: 1, DReb: 1,
	}
}

// seedPlayer registers a playable pool candidate with season stats and
// three valid games (suffixes a, b, c on the game IDs).
func (m *memRepo) seedPlayer(playerID, season, name string) {
	m.pool = append(m.pool, storage.PoolEntry{PlayerID: playerID, Season: season, FullName: name})
	m.names[playerID] = name
	m.stats[keys.CardKey(playerID, season)] = game.SeasonStats{
		Points: 24.1, Assists: 5.2, Turnovers: 2.4, Rebounds: 7.3,
		Steals: 1.1, Blocks: 0.8, Minutes: 33.5, GamesPlayed: 62,
	}
	m.games[keys.CardKey(playerID, season)] = []game.GameRecord{
		validRecord(playerID+"a", "2024-11-05"),
		validRecord(playerID+"b", "2024-11-03"),
		validRecord(playerID+"c", "2024-11-01"),
	}
}

// seedOwner creates a user owning one card and one tape for the given
// already-seeded player, returning the stored user.
func (m *memRepo) seedOwner(email, playerID, season string) (*game.User, string, string) {
	u, ok := m.users[email]
	if !ok {
		u = &game.User{Email: email, Name: "Coach", Tokens: 10}
		u.ID = uint(len(m.users) + 1)
		m.users[email] = u
	}

	cardID := keys.CardKey(playerID, season)
	m.cards[ownedKey(u.ID, cardID)] = &game.PlayerCard{
		UserID: u.ID, CardID: cardID, PlayerID: playerID,
		Season: season, PlayerName: m.names[playerID],
	}
	tapeID := keys.TapeKey(playerID, playerID+"a")
	m.tapes[ownedKey(u.ID, tapeID)] = &game.Gametape{
		UserID: u.ID, CardID: cardID, TapeID: tapeID, GameID: playerID + "a",
	}
	return u, cardID, tapeID
}
