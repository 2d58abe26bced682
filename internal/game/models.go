package game

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User stores unique coach identity, token balance and aggregate record.
type User struct {
	gorm.Model
	Email string `json:"email" gorm:"uniqueIndex"`
	Name  string `json:"name"`
	// Tokens is the spendable balance; TotalWins never decreases and
	// gates the team-battle unlock.
	Tokens         int  `json:"tokens"`
	TotalWins      int  `json:"total_wins"`
	Wins           int  `json:"wins"`
	Losses         int  `json:"losses"`
	StarterGranted bool `json:"-"`
}

// Unify global users table name as "coach_profiles"
func (User) TableName() string { return "coach_profiles" }

// PlayerCard is one roster entry: a player's season line owned by a user.
// CardID is the canonical "<player>_<season>" key.
type PlayerCard struct {
	gorm.Model
	UserID     uint   `json:"-" gorm:"index;uniqueIndex:idx_cards_user_card"`
	CardID     string `json:"card_id" gorm:"uniqueIndex:idx_cards_user_card"`
	PlayerID   string `json:"player_id"`
	Season     string `json:"season"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
}

func (PlayerCard) TableName() string { return "roster_cards" }

// Gametape is one owned game: the move and label source a card battles
// with. TapeID is the canonical "<player>_<gameID>" key; Labels stores
// the detected labels as a comma-joined string.
type Gametape struct {
	gorm.Model
	UserID      uint   `json:"-" gorm:"index;uniqueIndex:idx_tapes_user_tape"`
	CardID      string `json:"card_id" gorm:"index"`
	TapeID      string `json:"tape_id" gorm:"uniqueIndex:idx_tapes_user_tape"`
	GameID      string `json:"game_id"`
	DisplayName string `json:"display_name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Labels      string `json:"labels"`
}

func (Gametape) TableName() string { return "gametapes" }

// LabelList splits the stored comma-joined labels.
func (t *Gametape) LabelList() []Label {
	if t.Labels == "" {
		return nil
	}
	parts := strings.Split(t.Labels, ",")
	out := make([]Label, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, Label(s))
		}
	}
	return out
}

// JoinLabels renders labels for the Gametape.Labels column.
func JoinLabels(labels []Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}

// HallOfFameEntry immortalizes a retired gametape that reached the win
// threshold.
type HallOfFameEntry struct {
	gorm.Model
	UserID      uint   `json:"-" gorm:"index"`
	UserName    string `json:"user_name"`
	TapeID      string `json:"tape_id"`
	PlayerName  string `json:"player_name"`
	DisplayName string `json:"display_name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

func (HallOfFameEntry) TableName() string { return "hall_of_fame" }

// Battle mode values.
const (
	BattleModeDuel  = "duel"
	BattleModeSquad = "squad"
)

// Battle status values.
const (
	BattleStatusInProgress = "in_progress"
	BattleStatusFinished   = "finished"
	BattleStatusExpired    = "expired"
)

// Battle winner values.
const (
	WinnerPlayer   = "player"
	WinnerOpponent = "opponent"
)

// Battle is the persisted metadata row for one battle. The live engine
// state stays in the in-process registry; Seed makes a battle replayable
// and the deadline/claim columns drive the timeout scanner.
type Battle struct {
	gorm.Model
	BattleCode       string    `json:"battle_code" gorm:"uniqueIndex"`
	UserEmail        string    `json:"user_email" gorm:"index"`
	Mode             string    `json:"mode"`
	Status           string    `json:"status" gorm:"index"`
	Seed             int64     `json:"-"`
	Winner           string    `json:"winner"`
	TurnCount        int       `json:"turn_count"`
	Quarter          int       `json:"quarter"`
	RewardTokens     int       `json:"reward_tokens"`
	StatsCounted     bool      `json:"-"`
	Summary          string    `json:"summary"`
	ActionDeadline   time.Time `json:"action_deadline"`
	TimeoutClaimedBy string    `json:"-"`
	TimeoutClaimedAt time.Time `json:"-"`
}

// NBAPlayer names one player in the offline statistics database.
type NBAPlayer struct {
	gorm.Model
	PlayerID string `json:"player_id" gorm:"uniqueIndex"`
	FullName string `json:"full_name"`
}

func (NBAPlayer) TableName() string { return "nba_players" }

// GameLog is one player's box score line for one game, as imported from
// the offline statistics database.
type GameLog struct {
	gorm.Model
	PlayerID  string `json:"player_id" gorm:"index;index:idx_game_logs_player_game,unique"`
	Season    string `json:"season" gorm:"index"`
	GameID    string `json:"game_id" gorm:"index:idx_game_logs_player_game,unique"`
	GameDate  string `json:"game_date"`
	Matchup   string `json:"matchup"`
	Min       int    `json:"min"`
	Pts       int    `json:"pts"`
	Ast       int    `json:"ast"`
	Tov       int    `json:"tov"`
	Reb       int    `json:"reb"`
	OReb      int    `json:"oreb"`
	DReb      int    `json:"dreb"`
	Stl       int    `json:"stl"`
	Blk       int    `json:"blk"`
	Fgm       int    `json:"fgm"`
	Fga       int    `json:"fga"`
	Fg3m      int    `json:"fg3m"`
	Fg3a      int    `json:"fg3a"`
	Ftm       int    `json:"ftm"`
	Fta       int    `json:"fta"`
	Pf        int    `json:"pf"`
	PlusMinus int    `json:"plus_minus"`
}

func (GameLog) TableName() string { return "game_logs" }

// ToRecord converts the persisted row into the engine's input value.
func (g *GameLog) ToRecord() GameRecord {
	return GameRecord{
		GameID:    g.GameID,
		Date:      g.GameDate,
		Matchup:   g.Matchup,
		Min:       g.Min,
		Pts:       g.Pts,
		Ast:       g.Ast,
		Tov:       g.Tov,
		Reb:       g.Reb,
		OReb:      g.OReb,
		DReb:      g.DReb,
		Stl:       g.Stl,
		Blk:       g.Blk,
		Fgm:       g.Fgm,
		Fga:       g.Fga,
		Fg3m:      g.Fg3m,
		Fg3a:      g.Fg3a,
		Ftm:       g.Ftm,
		Fta:       g.Fta,
		Pf:        g.Pf,
		PlusMinus: g.PlusMinus,
	}
}

// BoxScoreRow stores the optional advanced/hustle stats for one player's
// game. Absent rows mean label detection falls back to box-score proxies.
type BoxScoreRow struct {
	gorm.Model
	GameID         string  `json:"game_id" gorm:"index:idx_box_scores_game_player,unique"`
	PlayerID       string  `json:"player_id" gorm:"index:idx_box_scores_game_player,unique"`
	UsagePct       float64 `json:"usage_pct"`
	AstToRatio     float64 `json:"ast_to_ratio"`
	PctAssisted3PM float64 `json:"pct_assisted_3pm"`
	Deflections    int     `json:"deflections"`
	ChargesDrawn   int     `json:"charges_drawn"`
	ScreenAssists  int     `json:"screen_assists"`
}

func (BoxScoreRow) TableName() string { return "box_score_extras" }

// ToExtras converts the persisted row into the engine's input value.
func (b *BoxScoreRow) ToExtras() BoxScoreExtras {
	return BoxScoreExtras{
		UsagePct:       b.UsagePct,
		AstToRatio:     b.AstToRatio,
		PctAssisted3PM: b.PctAssisted3PM,
		Deflections:    b.Deflections,
		ChargesDrawn:   b.ChargesDrawn,
		ScreenAssists:  b.ScreenAssists,
	}
}
