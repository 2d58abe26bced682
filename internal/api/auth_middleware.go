package api

import (
	"net/http"
	"os"
	"time"

	"github.com/bolovan/nba-stat-attack/internal/constants"
	"github.com/gin-gonic/gin"
)

// Context keys the middleware sets for downstream handlers.
const (
	ctxCoachEmail = "userEmail"
	ctxCoachName  = "userName"
)

// setSessionCookie stores the session token as an http-only cookie;
// the Secure flag follows the deployment environment.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// AuthRequired validates the session cookie and puts the coach's
// identity on the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := verifySessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxCoachEmail, claims.Sub)
		c.Set(ctxCoachName, claims.Name)
		c.Next()
	}
}
