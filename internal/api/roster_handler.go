package api

import (
	"errors"
	"net/http"

	"github.com/bolovan/nba-stat-attack/internal/constants"
	"github.com/bolovan/nba-stat-attack/internal/game"
	"github.com/bolovan/nba-stat-attack/internal/service"
	"github.com/bolovan/nba-stat-attack/internal/storage"
	"github.com/gin-gonic/gin"
)

// RosterHandler serves the owned cards and gametapes of the session user
// and the shop operations that change them.
type RosterHandler struct {
	repo storage.Repository
}

func NewRosterHandler(repo storage.Repository) *RosterHandler {
	return &RosterHandler{repo: repo}
}

// sessionUser loads the coach profile for the authenticated session.
func (h *RosterHandler) sessionUser(c *gin.Context) (*game.User, bool) {
	email := c.GetString(ctxCoachEmail)
	user, err := h.repo.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return nil, false
	}
	return user, true
}

// GetRoster returns the user's cards, each with its attached tapes.
func (h *RosterHandler) GetRoster(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}
	cards, err := h.repo.CardsForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	tapes, err := h.repo.TapesForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	out, err := MarshalForContext(c, gin.H{"cards": cards, "tapes": tapes})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	c.JSON(http.StatusOK, out)
}

// SellCard removes one owned card, paying out its value plus attached
// tapes.
func (h *RosterHandler) SellCard(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}
	if err := service.SellPlayerCard(h.repo, user, c.Param("cardID")); err != nil {
		respondEconomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "sold", "tokens": user.Tokens})
}

// SellTape removes one owned gametape.
func (h *RosterHandler) SellTape(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}
	if err := service.SellGametape(h.repo, user, c.Param("tapeID")); err != nil {
		respondEconomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "sold", "tokens": user.Tokens})
}

// respondEconomyError maps roster/shop errors onto HTTP replies.
func respondEconomyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientTokens):
		c.JSON(http.StatusPaymentRequired, gin.H{constants.JSONKeyError: constants.ErrInsufficientTokens})
	case errors.Is(err, service.ErrRosterFull):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRosterFull})
	case errors.Is(err, service.ErrLastCard):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrLastCard})
	case errors.Is(err, service.ErrCardNotOwned):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCardNotOwned})
	case errors.Is(err, service.ErrTapeNotOwned):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTapeNotOwned})
	case errors.Is(err, service.ErrNoValidTape):
		c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrNoValidTape})
	case errors.Is(err, service.ErrNoValidCard):
		c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrNoValidCard})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
	}
}
