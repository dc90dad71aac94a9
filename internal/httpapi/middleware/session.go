package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/personachat/server/internal/auth"
	"github.com/personachat/server/internal/identity"
)

const (
	UserKey      = "current_user"
	SessionIDKey = "session_id"

	// SessionCookieName holds a signed JWT whose subject is the session row id.
	SessionCookieName = "pc_session"
)

// SessionCache is the optional read-through cache in front of the session
// store. Any error is treated as a miss.
type SessionCache interface {
	GetSessionUser(ctx context.Context, sessionID string) (*identity.User, error)
	SetSessionUser(ctx context.Context, sessionID string, u *identity.User, ttl time.Duration) error
	DeleteSessionUser(ctx context.Context, sessionID string) error
}

const cacheTTL = 5 * time.Minute

// Session resolves the session cookie to a user and stores both on the
// request context. Requests without a valid session simply continue
// anonymous; endpoints decide what that means.
func Session(svc *identity.Service, cache SessionCache, secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sid, err := auth.ParseToken(token, auth.PurposeSession, secret)
		if err != nil {
			c.Next()
			return
		}
		c.Set(SessionIDKey, sid)

		ctx := c.Request.Context()
		if cache != nil {
			if u, err := cache.GetSessionUser(ctx, sid); err == nil && u != nil {
				c.Set(UserKey, u)
				c.Next()
				return
			}
		}

		u, err := svc.SessionUser(ctx, sid)
		if err != nil {
			if !errors.Is(err, identity.ErrNoSession) {
				log.Error("session lookup failed", zap.String("request_id", c.GetString(RequestIDKey)), zap.Error(err))
			}
			c.Next()
			return
		}

		if cache != nil {
			if err := cache.SetSessionUser(ctx, sid, u, cacheTTL); err != nil {
				log.Warn("session cache write failed", zap.Error(err))
			}
		}
		c.Set(UserKey, u)
		c.Next()
	}
}

// CurrentUser returns the signed-in user for this request, if any.
func CurrentUser(c *gin.Context) (*identity.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*identity.User)
	return u, ok
}
