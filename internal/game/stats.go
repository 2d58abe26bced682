package game

// SeasonStats holds one player's per-game season averages. Values are
// immutable inputs to stat derivation; GamesPlayed is informational.
type SeasonStats struct {
	Points      float64 `json:"points"`
	Assists     float64 `json:"assists"`
	Turnovers   float64 `json:"turnovers"`
	Rebounds    float64 `json:"rebounds"`
	Steals      float64 `json:"steals"`
	Blocks      float64 `json:"blocks"`
	Minutes     float64 `json:"minutes"`
	GamesPlayed int     `json:"games_played"`
}

// GameRecord is one game's box score line for one player. Counts are
// taken verbatim from the log; OReb+DReb may undercount Reb on scraped
// rows, Reb stays authoritative for rebound-based rules.
type GameRecord struct {
	GameID    string `json:"game_id"`
	Date      string `json:"date"` // YYYY-MM-DD
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

// BoxScoreExtras carries the advanced/hustle/usage sub-stats that back
// label detection. Each hustle stat is tracked per game independently;
// a zero value means that stat was not recorded and the matching label
// check falls back to a box-score proxy.
type BoxScoreExtras struct {
	UsagePct       float64 `json:"usage_pct"`
	AstToRatio     float64 `json:"ast_to_ratio"`
	PctAssisted3PM float64 `json:"pct_assisted_3pm"`
	Deflections    int     `json:"deflections"`
	ChargesDrawn   int     `json:"charges_drawn"`
	ScreenAssists  int     `json:"screen_assists"`
}
