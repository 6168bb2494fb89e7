package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/pkg/auth"
)

const principalKey = "principal"

// SessionConfig defines how the session cookie is written
type SessionConfig struct {
	CookieName string
	Secure     bool
}

// AuthMiddleware reads the session cookie and enforces route roles
type AuthMiddleware struct {
	sessions *auth.SessionService
	config   SessionConfig
	logger   zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *auth.SessionService, config SessionConfig, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		config:   config,
		logger:   logger,
	}
}

// LoadSession attaches the principal from a valid session cookie to the
// request. An invalid or expired cookie is cleared and the request goes on
// anonymously.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.config.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		principal, err := m.sessions.Parse(token)
		if err != nil {
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Discarding invalid session cookie")
			m.ClearSession(c)
			c.Next()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RoleRequired redirects to the home page unless the session holds role
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || principal.Role != role {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// StartSession issues a session for p and writes the cookie
func (m *AuthMiddleware) StartSession(c *gin.Context, p auth.Principal) error {
	token, err := m.sessions.Issue(p)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.config.CookieName, token, int(m.sessions.TTL().Seconds()), "/", "", m.config.Secure, true)
	c.Set(principalKey, p)
	return nil
}

// ClearSession expires the session cookie
func (m *AuthMiddleware) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.config.CookieName, "", -1, "/", "", m.config.Secure, true)
	c.Set(principalKey, nil)
}

// GetPrincipal returns the authenticated principal of the request, if any
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
