package constants

// Centralized constants for env keys, routes, JSON keys and messages.
const (
	// Environment variable keys
	EnvConfigPath          = "STAT_ATTACK_CONFIG"
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"

	// Session / Cookie names
	CookieSessionName = "sa_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteHealthz            = "/healthz"
	RouteVersion            = "/version"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RouteLeaderboard        = "/leaderboard"
	RouteProfile            = "/profile"
	RouteRoster             = "/roster"
	RouteRosterCard         = "/roster/cards/:cardID"
	RouteRosterTape         = "/roster/tapes/:tapeID"
	RouteCardPool           = "/card-pool"
	RouteShopCards          = "/shop/cards"
	RouteShopTapes          = "/shop/tapes"
	RouteHallOfFame         = "/hall-of-fame"
	RouteBattles            = "/battles"
	RouteBattleByCode       = "/battles/:battleCode"
	RouteBattleAction       = "/battles/:battleCode/action"
	RouteBattleTimeout      = "/battles/:battleCode/timeout"
	RouteBattleQuarter      = "/battles/:battleCode/quarter"
	RouteBattleForfeit      = "/battles/:battleCode/forfeit"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrAuthRequired     = "Authentication required"
	ErrInvalidSession   = "Invalid session"

	ErrInvalidBattleCode = "Invalid battle code"
	ErrBattleNotFound    = "Battle not found"
	ErrBattleNotYours    = "Battle belongs to another coach"
	ErrBattleFinished    = "Battle already finished"
	ErrWrongBattleMode   = "Action does not apply to this battle mode"
	ErrFailedStartBattle = "Failed to start battle"
	ErrFailedStoreAction = "Failed to apply action"
	ErrActionUnavailable = "No copies of that action remain"
	ErrNotPlayersTurn    = "Waiting on the opponent"
	ErrNoTimeoutsLeft    = "No timeouts remaining"
	ErrSquadLocked       = "Team battles are still locked"

	ErrFailedFetchProfile     = "Failed to fetch profile"
	ErrFailedFetchRoster      = "Failed to fetch roster"
	ErrFailedFetchPool        = "Failed to fetch card pool"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchHallOfFame  = "Failed to fetch hall of fame"
	ErrInvalidPlayerName      = "Invalid player name"
	ErrFailedUpdateProfile    = "Failed to update profile"

	ErrInsufficientTokens = "Not enough tokens"
	ErrRosterFull         = "Roster is full"
	ErrLastCard           = "Cannot sell the last player card"
	ErrCardNotOwned       = "Player card not in roster"
	ErrTapeNotOwned       = "Gametape not in inventory"
	ErrNoValidTape        = "Could not find a valid new gametape"
	ErrNoValidCard        = "Could not find a valid new player card"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"
)

// Logging field names
const (
	LogFieldBattleCode = "battle_code"
	LogFieldUser       = "user"
	LogFieldCardID     = "card_id"
	LogFieldTapeID     = "tape_id"
	LogFieldMode       = "mode"
	LogFieldAddr       = "addr"
	LogFieldWorker     = "worker"
)
