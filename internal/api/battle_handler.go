package api

import (
	"errors"
	"net/http"

	"github.com/bolovan/nba-stat-attack/internal/constants"
	"github.com/bolovan/nba-stat-attack/internal/engine"
	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/service"
	"github.com/bolovan/nba-stat-attack/internal/storage"
	"github.com/gin-gonic/gin"
)

// BattleHandler groups the battle HTTP handlers around the orchestration
// service.
type BattleHandler struct {
	repo    storage.Repository
	battles *service.BattleService
}

func NewBattleHandler(repo storage.Repository, battles *service.BattleService) *BattleHandler {
	return &BattleHandler{repo: repo, battles: battles}
}

type startBattleRequest struct {
	Mode  string                 `json:"mode"`
	Pairs []service.CardTapePair `json:"pairs"`
}

type actionRequest struct {
	Action string `json:"action"`
}

type quarterRequest struct {
	Offense string `json:"offense"`
	Defense string `json:"defense"`
}

// StartBattle opens a duel or a squad battle for the session user.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	userEmail := c.GetString(ctxCoachEmail)
	var req startBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	code := generateBattleCode()
	switch req.Mode {
	case game.BattleModeDuel:
		if len(req.Pairs) != 1 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		lb, row, err := h.battles.StartDuel(userEmail, code, req.Pairs[0])
		if err != nil {
			respondBattleError(c, err)
			return
		}
		h.respondBattle(c, http.StatusCreated, lb, row)
	case game.BattleModeSquad:
		if len(req.Pairs) != engine.SquadSize {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		var pairs [engine.SquadSize]service.CardTapePair
		copy(pairs[:], req.Pairs)
		lb, row, err := h.battles.StartSquad(userEmail, code, pairs)
		if err != nil {
			respondBattleError(c, err)
			return
		}
		h.respondBattle(c, http.StatusCreated, lb, row)
	default:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	}
}

// GetBattle returns the metadata row plus live state for one battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	userEmail := c.GetString(ctxCoachEmail)
	code, ok := battleCodeParam(c)
	if !ok {
		return
	}
	lb, row, err := h.battles.Battle(userEmail, code)
	if err != nil {
		respondBattleError(c, err)
		return
	}
	h.respondBattle(c, http.StatusOK, lb, row)
}

// SubmitAction plays one duel action (duel battles and squad overtime).
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	userEmail := c.GetString(ctxCoachEmail)
	code, ok := battleCodeParam(c)
	if !ok {
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	kind, ok := game.ParseActionKind(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	lb, row, err := h.battles.SubmitDuelAction(userEmail, code, kind)
	if err != nil {
		respondBattleError(c, err)
		return
	}
	h.respondBattle(c, http.StatusOK, lb, row)
}

// SubmitTimeout spends one of the player's timeouts.
func (h *BattleHandler) SubmitTimeout(c *gin.Context) {
	userEmail := c.GetString(ctxCoachEmail)
	code, ok := battleCodeParam(c)
	if !ok {
		return
	}
	lb, row, err := h.battles.SubmitDuelTimeout(userEmail, code)
	if err != nil {
		respondBattleError(c, err)
		return
	}
	h.respondBattle(c, http.StatusOK, lb, row)
}

// SubmitQuarter plays the next squad quarter under the chosen strategies.
func (h *BattleHandler) SubmitQuarter(c *gin.Context) {
	userEmail := c.GetString(ctxCoachEmail)
	code, ok := battleCodeParam(c)
	if !ok {
		return
	}
	var req quarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	off, okOff := engine.ParseOffenseStrategy(req.Offense)
	def, okDef := engine.ParseDefenseStrategy(req.Defense)
	if !okOff || !okDef {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	lb, row, err := h.battles.PlayQuarter(userEmail, code, off, def)
	if err != nil {
		respondBattleError(c, err)
		return
	}
	h.respondBattle(c, http.StatusOK, lb, row)
}

// Forfeit concedes the battle.
func (h *BattleHandler) Forfeit(c *gin.Context) {
	userEmail := c.GetString(ctxCoachEmail)
	code, ok := battleCodeParam(c)
	if !ok {
		return
	}
	row, err := h.battles.Forfeit(userEmail, code)
	if err != nil {
		respondBattleError(c, err)
		return
	}
	out, err := MarshalForContext(c, row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		return
	}
	c.JSON(http.StatusOK, out)
}

func battleCodeParam(c *gin.Context) (string, bool) {
	code := normalizeBattleCode(c.Param("battleCode"))
	if !battleCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return "", false
	}
	return code, true
}

// opponentView summarizes the engine-driven side: the exact deck
// composition and remaining attack pool stay hidden, clients only see
// aggregates.
type opponentView struct {
	Name              string       `json:"name"`
	CurrentHP         float64      `json:"current_hp"`
	MaxHP             float64      `json:"max_hp"`
	AttackBuffStacks  int          `json:"attack_buff_stacks"`
	DefenseBuffStacks int          `json:"defense_buff_stacks"`
	TimeoutsRemaining int          `json:"timeouts_remaining"`
	PlaysRemaining    int          `json:"plays_remaining"`
	Labels            []game.Label `json:"labels,omitempty"`
	PowerRating       int          `json:"power_rating"`
	Alive             bool         `json:"alive"`
}

func summarizeOpponent(u *game.CombatUnit) opponentView {
	plays := 0
	for _, c := range u.Deck {
		plays += c
	}
	return opponentView{
		Name:              u.Name,
		CurrentHP:         u.CurrentHP,
		MaxHP:             u.MaxHP,
		AttackBuffStacks:  u.AttackBuffStacks,
		DefenseBuffStacks: u.DefenseBuffStacks,
		TimeoutsRemaining: u.TimeoutsRemaining,
		PlaysRemaining:    plays,
		Labels:            u.Labels,
		PowerRating:       u.PowerRating,
		Alive:             u.IsAlive(),
	}
}

// duelView pairs the player's full unit with the summarized opponent.
type duelView struct {
	State     engine.DuelState `json:"state"`
	TurnOf    engine.DuelSide  `json:"turn_of"`
	TurnCount int              `json:"turn_count"`
	Overtime  bool             `json:"overtime"`
	You       *game.CombatUnit `json:"you"`
	Opponent  opponentView     `json:"opponent"`
}

func newDuelView(d *engine.Duel) *duelView {
	return &duelView{
		State:     d.State,
		TurnOf:    d.TurnOf,
		TurnCount: d.TurnCount,
		Overtime:  d.Overtime,
		You:       d.UnitA,
		Opponent:  summarizeOpponent(d.UnitB),
	}
}

// squadView mirrors duelView for team battles.
type squadView struct {
	State   engine.SquadState  `json:"state"`
	Quarter int                `json:"quarter"`
	Yours   []*game.CombatUnit `json:"yours"`
	Theirs  []opponentView     `json:"theirs"`
}

func newSquadView(s *engine.Squad) *squadView {
	view := &squadView{State: s.State, Quarter: s.Quarter}
	for i := 0; i < engine.SquadSize; i++ {
		view.Yours = append(view.Yours, s.TeamA[i])
		view.Theirs = append(view.Theirs, summarizeOpponent(s.TeamB[i]))
	}
	return view
}

// battleView is the wire shape of one battle: the persisted row plus the
// live engine state and accumulated play-by-play when still running.
type battleView struct {
	Battle *game.Battle `json:"battle"`
	Duel   *duelView    `json:"duel,omitempty"`
	Squad  *squadView   `json:"squad,omitempty"`
	Log    []string     `json:"log,omitempty"`
}

func (h *BattleHandler) respondBattle(c *gin.Context, status int, lb *service.LiveBattle, row *game.Battle) {
	view := battleView{Battle: row}
	if lb != nil {
		switch {
		case lb.Overtime != nil:
			view.Duel = newDuelView(lb.Overtime)
		case lb.Duel != nil:
			view.Duel = newDuelView(lb.Duel)
		}
		if lb.Squad != nil {
			view.Squad = newSquadView(lb.Squad)
		}
		view.Log = lb.Log
	}
	out, err := MarshalForContext(c, view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		return
	}
	c.JSON(status, out)
}

// respondBattleError maps service and engine errors onto HTTP replies.
func respondBattleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrBattleNotYours):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrBattleNotYours})
	case errors.Is(err, service.ErrBattleFinished), errors.Is(err, engine.ErrBattleOver):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFinished})
	case errors.Is(err, service.ErrWrongBattleMode), errors.Is(err, service.ErrNotInOvertime), errors.Is(err, service.ErrOvertimeLive):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongBattleMode})
	case errors.Is(err, engine.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotPlayersTurn})
	case errors.Is(err, engine.ErrIllegalAction):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionUnavailable})
	case errors.Is(err, engine.ErrNoTimeoutsLeft):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoTimeoutsLeft})
	case errors.Is(err, service.ErrSquadLocked):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrSquadLocked})
	case errors.Is(err, service.ErrCardNotOwned), errors.Is(err, service.ErrTapeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCardNotOwned})
	case errors.Is(err, service.ErrTapeNotOwned):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTapeNotOwned})
	case errors.Is(err, service.ErrBattleDetached):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFinished})
	case errors.Is(err, service.ErrInputUnavailable), errors.Is(err, service.ErrNoOpponent), errors.Is(err, game.ErrInvalidGametape):
		c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrFailedStartBattle})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
	}
}
