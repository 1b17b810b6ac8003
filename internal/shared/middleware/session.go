package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===================================
// CONSTANTS
// ===================================

const (
	// Cookie settings
	SessionCookieName = "session_id"
	SessionMaxAge     = 60 * 60 * 24 * 30 // 30 days in seconds

	// Context keys
	ContextKeySessionID = "session_id"
)

// ===================================
// MIDDLEWARE CONFIGURATION
// ===================================

// SessionMiddlewareConfig holds cookie settings for the cart session
type SessionMiddlewareConfig struct {
	CookieDomain   string // "" for current domain
	CookiePath     string // Default: "/"
	CookieSecure   bool   // true for HTTPS only
	CookieSameSite http.SameSite
}

// DefaultSessionMiddlewareConfig returns secure default configuration
func DefaultSessionMiddlewareConfig() SessionMiddlewareConfig {
	return SessionMiddlewareConfig{
		CookieDomain:   "",
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// ===================================
// SESSION MIDDLEWARE
// ===================================

// SessionMiddleware identifies the shopper's cart session.
//
// Flow:
// 1. Read session_id cookie
// 2. If missing or not a UUID → generate a new one and set the cookie
// 3. Put session_id into the gin context for cart handlers
func SessionMiddleware(config SessionMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := getSessionID(c)
		if sessionID == "" {
			sessionID = uuid.New().String()
			setSessionCookie(c, sessionID, config)
		}

		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}

// ===================================
// HELPER FUNCTIONS
// ===================================

// getSessionID retrieves session ID from cookie
func getSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return ""
	}

	// Only UUIDs are accepted, anything else gets a fresh session
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}

	return sessionID
}

// setSessionCookie sets the session cookie
func setSessionCookie(c *gin.Context, sessionID string, config SessionMiddlewareConfig) {
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(
		SessionCookieName,
		sessionID,
		SessionMaxAge,
		config.CookiePath,
		config.CookieDomain,
		config.CookieSecure,
		true, // httpOnly
	)
}

// GetSessionID retrieves session ID from context
func GetSessionID(c *gin.Context) string {
	sessionID, exists := c.Get(ContextKeySessionID)
	if !exists {
		return ""
	}

	sid, ok := sessionID.(string)
	if !ok {
		return ""
	}

	return sid
}
