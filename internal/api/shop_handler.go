package api

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/bolovan/nba-stat-attack/internal/constants"
	"github.com/bolovan/nba-stat-attack/internal/service"
	"github.com/bolovan/nba-stat-attack/internal/storage"
	"github.com/gin-gonic/gin"
)

// ShopHandler sells random player cards and gametapes for tokens.
type ShopHandler struct {
	repo   storage.Repository
	roster *RosterHandler
}

func NewShopHandler(repo storage.Repository) *ShopHandler {
	return &ShopHandler{repo: repo, roster: NewRosterHandler(repo)}
}

type buyTapeRequest struct {
	CardID string `json:"card_id"`
}

// BuyCard purchases one random unowned card, delivered with a valid tape.
func (h *ShopHandler) BuyCard(c *gin.Context) {
	user, ok := h.roster.sessionUser(c)
	if !ok {
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	card, err := service.BuyPlayerCard(h.repo, user, rng)
	if err != nil {
		respondEconomyError(c, err)
		return
	}
	out, err := MarshalForContext(c, gin.H{"card": card, "tokens": user.Tokens})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// BuyTape purchases one random unowned tape for an owned card.
func (h *ShopHandler) BuyTape(c *gin.Context) {
	user, ok := h.roster.sessionUser(c)
	if !ok {
		return
	}
	var req buyTapeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tape, err := service.BuyGametape(h.repo, user, req.CardID, rng)
	if err != nil {
		respondEconomyError(c, err)
		return
	}
	out, err := MarshalForContext(c, gin.H{"tape": tape, "tokens": user.Tokens})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	c.JSON(http.StatusCreated, out)
}
