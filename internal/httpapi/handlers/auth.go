package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/personachat/server/internal/auth"
	"github.com/personachat/server/internal/httpapi/middleware"
	"github.com/personachat/server/internal/identity"
)

const stateTTL = 10 * time.Minute

// GetGoogleClientID exposes the OAuth client id to the frontend.
func (h *Handler) GetGoogleClientID(c *gin.Context) {
	c.Header("Cross-Origin-Opener-Policy", "same-origin-allow-popups")
	c.JSON(http.StatusOK, gin.H{"clientId": h.Cfg.GoogleClientID})
}

type googleAuthReq struct {
	IDToken string `json:"idToken"`
}

// HandleGoogleAuth verifies a client-supplied ID token and returns the
// asserted profile. It does not establish a session; the redirect flow does.
func (h *Handler) HandleGoogleAuth(c *gin.Context) {
	var req googleAuthReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	p, err := h.Google.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) {
			h.Log.Error("google token verification failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":    p.DisplayName,
		"email":   p.Email,
		"picture": p.Picture,
	})
}

// BeginGoogleLogin redirects to the Google consent screen with a signed
// state token.
func (h *Handler) BeginGoogleLogin(c *gin.Context) {
	state, err := auth.SignToken("login", auth.PurposeState, h.Cfg.SessionSecret, stateTTL)
	if err != nil {
		h.Log.Error("failed to sign oauth state", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Redirect(http.StatusFound, h.Google.AuthCodeURL(state))
}

// GoogleCallback completes the sign-in: verify state, exchange the code,
// find-or-create the user, persist a session, set the cookie. Every failure
// lands back on the dashboard.
func (h *Handler) GoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := auth.ParseToken(c.Query("state"), auth.PurposeState, h.Cfg.SessionSecret); err != nil {
		h.Log.Warn("oauth callback with bad state", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	accessToken, err := h.Google.Exchange(ctx, code)
	if err != nil {
		h.Log.Error("oauth code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	profile, err := h.Google.UserInfo(ctx, accessToken)
	if err != nil {
		h.Log.Error("oauth userinfo fetch failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := h.Identity.EnsureUser(ctx, profile)
	if err != nil {
		h.Log.Error("failed to upsert user", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	sess, err := h.Identity.CreateSession(ctx, user.ID)
	if err != nil {
		h.Log.Error("failed to create session", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	token, err := auth.SignToken(sess.ID, auth.PurposeSession, h.Cfg.SessionSecret, identity.SessionTTL)
	if err != nil {
		h.Log.Error("failed to sign session token", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.SetCookie(middleware.SessionCookieName, token, int(identity.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout tears the session down and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if sid := c.GetString(middleware.SessionIDKey); sid != "" {
		if err := h.Identity.DeleteSession(c.Request.Context(), sid); err != nil {
			h.Log.Error("failed to delete session", zap.Error(err))
		}
		if h.Cache != nil {
			_ = h.Cache.DeleteSessionUser(c.Request.Context(), sid)
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// CurrentUser reflects the session state for the dashboard header.
func (h *Handler) CurrentUser(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"displayName": u.DisplayName,
			"picture":     u.Picture,
			"email":       u.Email,
		},
	})
}
