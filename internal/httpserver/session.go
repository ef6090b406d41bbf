package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "cart_session"
	sessionKey    = "sessionID"
)

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func setSessionCookie(c *gin.Context, sessions SessionIssuer, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(sessions.TTL().Seconds()), "/", "", secure, true)
}

// sessionMiddleware resolves the cart session. A missing or invalid token
// starts a fresh session, so a new visitor always has an (empty) cart.
func sessionMiddleware(sessions SessionIssuer, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if sid, err := sessions.Validate(token); err == nil {
				c.Set(sessionKey, sid)
				c.Next()
				return
			}
		}
		token, sid, _, err := sessions.Issue()
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not start session")
			return
		}
		setSessionCookie(c, sessions, token, secure)
		c.Header("X-Cart-Session", token)
		c.Set(sessionKey, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func (h *handlers) issueSession(c *gin.Context) {
	sessions := h.deps.Sessions
	var token, sid string
	if existing := extractToken(c); existing != "" {
		if t, s, _, err := sessions.Refresh(existing); err == nil {
			token, sid = t, s
		}
	}
	if token == "" {
		t, s, _, err := sessions.Issue()
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not start session")
			return
		}
		token, sid = t, s
	}
	setSessionCookie(c, sessions, token, h.deps.SecureCookie)
	c.JSON(http.StatusOK, gin.H{
		"sessionId": sid,
		"token":     token,
		"expiresIn": int(sessions.TTL().Seconds()),
	})
}
