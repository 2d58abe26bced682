package storage

import "github.com/bolovan/nba-stat-attack/internal/game"

// Demo dataset: a small fictional league, enough player+season combos to
// grant starters, stock the shop and field full squads. Every line stays
// above the minutes floor and expands into a tape that passes validity.

const demoSeason = "2024-25"

type demoGame struct {
	gameID, date, matchup                         string
	min, pts, ast, tov, reb, oreb, dreb, stl, blk int
	fgm, fga, fg3m, fg3a, ftm, fta, pf, plusMinus int
}

type demoPlayer struct {
	playerID, fullName string
	games              []demoGame
}

func demoDataset() ([]game.NBAPlayer, []game.GameLog, []game.BoxScoreRow) {
	players := []demoPlayer{
		{
			playerID: "910001", fullName: "Marcus Vale",
			games: []demoGame{
				{"2400101", "2024-11-02", "BOS vs. NYK", 36, 31, 6, 3, 7, 1, 6, 1, 0, 11, 22, 4, 9, 5, 6, 2, 9},
				{"2400115", "2024-11-09", "BOS @ MIA", 38, 27, 8, 2, 5, 0, 5, 2, 0, 10, 19, 3, 7, 4, 4, 3, 12},
				{"2400128", "2024-11-16", "BOS vs. PHI", 34, 22, 5, 4, 6, 1, 5, 1, 1, 8, 18, 2, 6, 4, 5, 2, -4},
				{"2400142", "2024-11-23", "BOS @ TOR", 37, 35, 4, 2, 8, 2, 6, 1, 0, 13, 24, 5, 11, 4, 4, 1, 15},
				{"2400156", "2024-11-30", "BOS vs. DET", 33, 18, 7, 3, 4, 0, 4, 2, 0, 7, 17, 1, 5, 3, 3, 4, 6},
				{"2400170", "2024-12-07", "BOS @ CHI", 35, 29, 6, 1, 6, 1, 5, 1, 0, 11, 20, 4, 8, 3, 4, 2, 10},
			},
		},
		{
			playerID: "910002", fullName: "Deshawn Okafor",
			games: []demoGame{
				{"2400103", "2024-11-02", "DEN vs. LAL", 35, 24, 11, 2, 11, 3, 8, 1, 1, 9, 17, 1, 3, 5, 7, 3, 9},
				{"2400117", "2024-11-09", "DEN @ PHX", 38, 28, 12, 3, 12, 2, 10, 2, 1, 11, 20, 2, 4, 4, 5, 2, 14},
				{"2400131", "2024-11-16", "DEN vs. OKC", 36, 19, 13, 4, 9, 2, 7, 1, 0, 7, 15, 1, 4, 4, 6, 3, 3},
				{"2400144", "2024-11-23", "DEN @ MIN", 34, 21, 9, 2, 10, 3, 7, 2, 1, 8, 16, 1, 2, 4, 4, 2, 7},
				{"2400158", "2024-11-30", "DEN vs. SAS", 37, 26, 10, 3, 13, 4, 9, 1, 2, 10, 18, 1, 3, 5, 8, 3, 11},
				{"2400172", "2024-12-07", "DEN @ POR", 33, 17, 11, 2, 8, 1, 7, 1, 0, 6, 14, 1, 3, 4, 5, 2, 5},
			},
		},
		{
			playerID: "910003", fullName: "Tobias Renner",
			games: []demoGame{
				{"2400105", "2024-11-03", "MEM vs. GSW", 29, 9, 2, 1, 13, 4, 9, 1, 3, 4, 8, 0, 0, 1, 2, 4, 8},
				{"2400119", "2024-11-10", "MEM @ DAL", 31, 12, 1, 2, 15, 5, 10, 0, 4, 5, 10, 0, 1, 2, 4, 3, 5},
				{"2400133", "2024-11-17", "MEM vs. HOU", 28, 8, 2, 1, 11, 3, 8, 1, 2, 3, 7, 0, 0, 2, 2, 5, -2},
				{"2400146", "2024-11-24", "MEM @ NOP", 30, 14, 1, 1, 12, 4, 8, 0, 3, 6, 11, 0, 0, 2, 3, 4, 6},
				{"2400160", "2024-12-01", "MEM vs. UTA", 27, 10, 2, 2, 14, 5, 9, 1, 2, 4, 9, 0, 1, 2, 2, 3, 4},
				{"2400174", "2024-12-08", "MEM @ SAC", 32, 11, 3, 1, 16, 6, 10, 0, 3, 5, 9, 0, 0, 1, 2, 5, 9},
			},
		},
		{
			playerID: "910004", fullName: "Jalen Whitfield",
			games: []demoGame{
				{"2400107", "2024-11-03", "IND vs. CLE", 22, 19, 2, 1, 3, 1, 2, 1, 0, 7, 13, 3, 6, 2, 2, 1, 7},
				{"2400121", "2024-11-10", "IND @ MIL", 24, 23, 1, 1, 2, 0, 2, 0, 0, 9, 16, 4, 8, 1, 2, 2, 5},
				{"2400135", "2024-11-17", "IND vs. ATL", 21, 16, 2, 2, 3, 1, 2, 1, 0, 6, 12, 2, 5, 2, 3, 1, 3},
				{"2400148", "2024-11-24", "IND @ ORL", 23, 21, 3, 1, 2, 0, 2, 1, 0, 8, 15, 3, 7, 2, 2, 2, 8},
				{"2400162", "2024-12-01", "IND vs. WAS", 20, 14, 1, 1, 3, 1, 2, 0, 0, 5, 11, 2, 4, 2, 2, 1, 2},
				{"2400176", "2024-12-08", "IND @ BKN", 25, 18, 2, 2, 2, 0, 2, 1, 0, 7, 14, 2, 6, 2, 2, 2, 4},
			},
		},
		{
			playerID: "910005", fullName: "Ray Castellanos",
			games: []demoGame{
				{"2400109", "2024-11-04", "LAC vs. SAC", 33, 12, 4, 2, 6, 2, 4, 3, 1, 4, 11, 2, 6, 2, 2, 4, 11},
				{"2400123", "2024-11-11", "LAC @ GSW", 31, 9, 5, 1, 5, 1, 4, 2, 0, 3, 9, 2, 5, 1, 2, 4, 13},
				{"2400137", "2024-11-18", "LAC vs. PHX", 34, 14, 3, 2, 7, 2, 5, 2, 1, 5, 12, 3, 7, 1, 1, 3, 6},
				{"2400150", "2024-11-25", "LAC @ LAL", 32, 11, 4, 1, 5, 1, 4, 3, 0, 4, 10, 2, 5, 1, 2, 5, 12},
				{"2400164", "2024-12-02", "LAC vs. HOU", 30, 8, 6, 2, 6, 2, 4, 2, 1, 3, 8, 1, 4, 1, 2, 4, 14},
				{"2400178", "2024-12-09", "LAC @ UTA", 33, 13, 4, 1, 5, 1, 4, 2, 0, 5, 11, 2, 6, 1, 1, 3, 7},
			},
		},
		{
			playerID: "910006", fullName: "Andre Beaumont",
			games: []demoGame{
				{"2400111", "2024-11-04", "NOP vs. SAS", 35, 26, 4, 3, 9, 3, 6, 1, 1, 9, 19, 0, 2, 8, 10, 3, 6},
				{"2400125", "2024-11-11", "NOP @ MEM", 33, 22, 3, 2, 8, 2, 6, 1, 0, 8, 17, 0, 1, 6, 8, 2, 4},
				{"2400139", "2024-11-18", "NOP vs. DAL", 36, 30, 5, 4, 10, 4, 6, 2, 1, 10, 21, 1, 3, 9, 12, 4, 9},
				{"2400152", "2024-11-25", "NOP @ HOU", 34, 24, 4, 3, 7, 2, 5, 1, 1, 9, 18, 0, 2, 6, 9, 3, -3},
				{"2400166", "2024-12-02", "NOP vs. OKC", 32, 20, 3, 2, 8, 3, 5, 1, 0, 7, 16, 0, 1, 6, 7, 2, 5},
				{"2400180", "2024-12-09", "NOP @ DEN", 35, 27, 4, 3, 9, 3, 6, 2, 1, 10, 20, 1, 2, 6, 8, 3, 8},
			},
		},
		{
			playerID: "910007", fullName: "Kofi Adjei",
			games: []demoGame{
				{"2400113", "2024-11-05", "CHA vs. DET", 26, 11, 4, 1, 5, 1, 4, 2, 0, 4, 8, 2, 4, 1, 2, 2, 12},
				{"2400127", "2024-11-12", "CHA @ ATL", 28, 13, 3, 1, 4, 1, 3, 1, 1, 5, 10, 3, 6, 0, 0, 3, 9},
				{"2400141", "2024-11-19", "CHA vs. TOR", 25, 9, 5, 2, 5, 1, 4, 2, 0, 3, 7, 2, 4, 1, 1, 2, 11},
				{"2400154", "2024-11-26", "CHA @ WAS", 27, 12, 4, 1, 4, 0, 4, 1, 0, 4, 9, 3, 5, 1, 2, 2, 8},
				{"2400168", "2024-12-03", "CHA vs. NYK", 24, 8, 3, 1, 5, 1, 4, 2, 1, 3, 6, 2, 3, 0, 0, 3, 5},
				{"2400182", "2024-12-10", "CHA @ MIA", 26, 10, 4, 2, 4, 1, 3, 1, 0, 4, 8, 2, 5, 0, 1, 2, 13},
			},
		},
	}

	hustle := []game.BoxScoreRow{
		// Castellanos lives on deflections and drawn charges.
		{GameID: "2400109", PlayerID: "910005", Deflections: 4, ChargesDrawn: 1, AstToRatio: 2.0},
		{GameID: "2400123", PlayerID: "910005", Deflections: 3, ChargesDrawn: 2, AstToRatio: 5.0},
		{GameID: "2400150", PlayerID: "910005", Deflections: 4, ChargesDrawn: 1, AstToRatio: 4.0},
		// Adjei is the catch-and-shoot wing: low usage, assisted threes.
		{GameID: "2400113", PlayerID: "910007", UsagePct: 14.5, PctAssisted3PM: 1.0, AstToRatio: 4.0},
		{GameID: "2400127", PlayerID: "910007", UsagePct: 15.8, PctAssisted3PM: 1.0},
		{GameID: "2400154", PlayerID: "910007", UsagePct: 13.9, PctAssisted3PM: 0.8, AstToRatio: 4.0},
		// Renner sets the screens.
		{GameID: "2400119", PlayerID: "910003", ScreenAssists: 6, Deflections: 1},
		{GameID: "2400146", PlayerID: "910003", ScreenAssists: 5},
		// Okafor's assist-to-turnover ratio as tracked upstream.
		{GameID: "2400117", PlayerID: "910002", AstToRatio: 4.0, UsagePct: 24.0},
		{GameID: "2400172", PlayerID: "910002", AstToRatio: 5.5, UsagePct: 22.0},
	}

	var nbaPlayers []game.NBAPlayer
	var logs []game.GameLog
	for _, p := range players {
		nbaPlayers = append(nbaPlayers, game.NBAPlayer{PlayerID: p.playerID, FullName: p.fullName})
		for _, g := range p.games {
			logs = append(logs, game.GameLog{
				PlayerID:  p.playerID,
				Season:    demoSeason,
				GameID:    g.gameID,
				GameDate:  g.date,
				Matchup:   g.matchup,
				Min:       g.min,
				Pts:       g.pts,
				Ast:       g.ast,
				Tov:       g.tov,
				Reb:       g.reb,
				OReb:      g.oreb,
				DReb:      g.dreb,
				Stl:       g.stl,
				Blk:       g.blk,
				Fgm:       g.fgm,
				Fga:       g.fga,
				Fg3m:      g.fg3m,
				Fg3a:      g.fg3a,
				Ftm:       g.ftm,
				Fta:       g.fta,
				Pf:        g.pf,
				PlusMinus: g.plusMinus,
			})
		}
	}
	return nbaPlayers, logs, hustle
}
