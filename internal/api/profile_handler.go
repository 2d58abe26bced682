package api

import (
	"net/http"
	"strings"

	"github.com/bolovan/nba-stat-attack/internal/constants"
	"github.com/bolovan/nba-stat-attack/internal/service"
	"github.com/bolovan/nba-stat-attack/internal/storage"
	"github.com/gin-gonic/gin"
)

const leaderboardLimit = 20

// ProfileHandler serves coach profiles, the leaderboard, the hall of
// fame and the public card pool.
type ProfileHandler struct {
	repo   storage.Repository
	roster *RosterHandler
}

func NewProfileHandler(repo storage.Repository) *ProfileHandler {
	return &ProfileHandler{repo: repo, roster: NewRosterHandler(repo)}
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// GetProfile returns the session user's profile and whether team battles
// are unlocked.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := h.roster.sessionUser(c)
	if !ok {
		return
	}
	unlocked, err := service.SquadUnlocked(h.repo, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	out, err := MarshalForContext(c, gin.H{"user": user, "squad_unlocked": unlocked})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateProfile changes the coach display name.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.roster.sessionUser(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 40 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlayerName})
		return
	}
	user.Name = name
	if err := h.repo.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateProfile})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "updated", "name": name})
}

// Leaderboard returns the top coaches by career wins.
func (h *ProfileHandler) Leaderboard(c *gin.Context) {
	users, err := h.repo.TopUsers(leaderboardLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// HallOfFame returns the retired gametapes that reached the win
// threshold.
func (h *ProfileHandler) HallOfFame(c *gin.Context) {
	entries, err := h.repo.HallOfFame(leaderboardLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHallOfFame})
		return
	}
	out, err := MarshalForContext(c, entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHallOfFame})
		return
	}
	c.JSON(http.StatusOK, out)
}

// CardPool lists every purchasable player+season combination.
func (h *ProfileHandler) CardPool(c *gin.Context) {
	pool, err := h.repo.CardPool()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPool})
		return
	}
	c.JSON(http.StatusOK, pool)
}
