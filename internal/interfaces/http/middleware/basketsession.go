package middleware

import (
	"github.com/booktime/backend/internal/infrastructure/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Basket session context keys
const (
	BasketIDKey      = "basket_id"
	BasketTokenKey   = "basket_token"
	BasketCookieName = "basket_session"
)

// BasketSessionConfig holds cookie settings for the basket session
type BasketSessionConfig struct {
	Store        session.Store
	CookieDomain string
	CookieSecure bool
	Logger       *zap.Logger
}

// BasketSession resolves the anonymous basket cookie into a basket ID.
// It never creates a session; handlers bind a basket lazily on first add.
func BasketSession(cfg BasketSessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(BasketCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		c.Set(BasketTokenKey, token)

		basketID, found, err := cfg.Store.Get(c.Request.Context(), token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("failed to resolve basket session", zap.Error(err))
			}
			c.Next()
			return
		}
		if found {
			c.Set(BasketIDKey, basketID)
		}

		c.Next()
	}
}

// GetBasketID returns the basket ID resolved from the session cookie, if any
func GetBasketID(c *gin.Context) *uuid.UUID {
	if value, exists := c.Get(BasketIDKey); exists {
		if id, ok := value.(uuid.UUID); ok {
			return &id
		}
	}
	return nil
}

// GetBasketToken returns the session token from the cookie, if any
func GetBasketToken(c *gin.Context) string {
	if value, exists := c.Get(BasketTokenKey); exists {
		if token, ok := value.(string); ok {
			return token
		}
	}
	return ""
}

// BindBasketSession binds a basket to the client's session, issuing the
// cookie when the client does not carry one yet
func BindBasketSession(c *gin.Context, cfg BasketSessionConfig, basketID uuid.UUID) error {
	token := GetBasketToken(c)
	if token == "" {
		token = session.NewToken()
		c.SetCookie(
			BasketCookieName,
			token,
			int(session.DefaultTTL.Seconds()),
			"/",
			cfg.CookieDomain,
			cfg.CookieSecure,
			true,
		)
		c.Set(BasketTokenKey, token)
	}

	return cfg.Store.Set(c.Request.Context(), token, basketID, session.DefaultTTL)
}

// ClearBasketSession drops the session binding and expires the cookie
func ClearBasketSession(c *gin.Context, cfg BasketSessionConfig) error {
	token := GetBasketToken(c)
	if token == "" {
		return nil
	}

	c.SetCookie(BasketCookieName, "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
	return cfg.Store.Delete(c.Request.Context(), token)
}
