package onboarding

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"growthai/portal/pkg/security"
)

// SessionCookie is the cookie carrying the signed session id
const SessionCookie = "growthai_session"

const sessionKey = "sessionID"

// CookieOptions controls how the session cookie is written
type CookieOptions struct {
	Secure bool
	Path   string
}

// SessionMiddleware resolves the visitor session from the session cookie.
// A missing, invalid or expired cookie starts a fresh session.
func SessionMiddleware(service *Service, issuer *security.TokenIssuer, opts CookieOptions, logger *zap.Logger) gin.HandlerFunc {
	if opts.Path == "" {
		opts.Path = "/"
	}

	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			if id, err := issuer.Parse(raw); err == nil {
				if _, err := service.GetSession(c.Request.Context(), id); err == nil {
					c.Set(sessionKey, id)
					c.Next()
					return
				}
			}
		}

		session, err := service.CreateSession(c.Request.Context())
		if err != nil {
			logger.Error("Failed to create session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		token, err := issuer.Issue(session.ID)
		if err != nil {
			logger.Error("Failed to sign session token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(issuer.TTL().Seconds()), opts.Path, "", opts.Secure, true)
		c.Set(sessionKey, session.ID)
		c.Next()
	}
}

// SessionID returns the session resolved by SessionMiddleware
func SessionID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
