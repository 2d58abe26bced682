package main

import (
	"os"

	"github.com/bolovan/nba-stat-attack/internal/api"
	"github.com/bolovan/nba-stat-attack/internal/constants"
	"github.com/bolovan/nba-stat-attack/internal/logging"
	"github.com/bolovan/nba-stat-attack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Path may be provided via STAT_ATTACK_CONFIG or defaults to
	// ./stat_attack_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./stat_attack_config.json"
	}
	cfg := loadConfigOrExit(configPath)
	logging.SetDebug(cfg.Debug)

	repo := createRepositoryOrExit(cfg)
	registry := service.NewRegistry()
	battles := service.NewBattleService(repo, registry, cfg.ActionTimeout)

	// Each process claims timed-out battles under its own worker ID so
	// concurrent instances never double-process one.
	workerID := uuid.NewString()
	startTimeoutScanner(repo, battles, cfg.BattleExpiry, workerID)

	authHandler := api.NewAuthHandler(repo)
	battleHandler := api.NewBattleHandler(repo, battles)
	rosterHandler := api.NewRosterHandler(repo)
	shopHandler := api.NewShopHandler(repo)
	profileHandler := api.NewProfileHandler(repo)

	router := gin.Default()
	router.GET(constants.RouteHealthz, api.Healthz)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteLeaderboard, profileHandler.Leaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteProfile, profileHandler.GetProfile)
		protected.PUT(constants.RouteProfile, profileHandler.UpdateProfile)
		protected.GET(constants.RouteHallOfFame, profileHandler.HallOfFame)
		protected.GET(constants.RouteCardPool, profileHandler.CardPool)

		protected.GET(constants.RouteRoster, rosterHandler.GetRoster)
		protected.DELETE(constants.RouteRosterCard, rosterHandler.SellCard)
		protected.DELETE(constants.RouteRosterTape, rosterHandler.SellTape)
		protected.POST(constants.RouteShopCards, shopHandler.BuyCard)
		protected.POST(constants.RouteShopTapes, shopHandler.BuyTape)

		protected.POST(constants.RouteBattles, battleHandler.StartBattle)
		protected.GET(constants.RouteBattleByCode, battleHandler.GetBattle)
		protected.POST(constants.RouteBattleAction, battleHandler.SubmitAction)
		protected.POST(constants.RouteBattleTimeout, battleHandler.SubmitTimeout)
		protected.POST(constants.RouteBattleQuarter, battleHandler.SubmitQuarter)
		protected.POST(constants.RouteBattleForfeit, battleHandler.Forfeit)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, constants.LogFieldWorker: workerID})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
