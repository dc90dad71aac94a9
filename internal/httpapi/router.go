package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/personachat/server/internal/config"
	"github.com/personachat/server/internal/httpapi/handlers"
	"github.com/personachat/server/internal/httpapi/middleware"
	"github.com/personachat/server/internal/identity"
)

func NewRouter(cfg config.Config, log *zap.Logger, h *handlers.Handler, idSvc *identity.Service, cache middleware.SessionCache) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Session(idSvc, cache, cfg.SessionSecret, log))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed."})
	})

	api := r.Group("/api")
	api.GET("/google-client-id", h.GetGoogleClientID)
	api.POST("/auth/google", h.HandleGoogleAuth)
	api.GET("/user", h.CurrentUser)

	chatGroup := api.Group("")
	if cfg.ChatRateRPS > 0 {
		chatGroup.Use(middleware.RateLimit(cfg.ChatRateRPS, cfg.ChatRateBurst))
	}
	chatGroup.POST("/chat", h.Chat)

	r.GET("/auth/google", h.BeginGoogleLogin)
	r.GET("/auth/google/callback", h.GoogleCallback)
	r.GET("/logout", h.Logout)

	// everything else is the static dashboard
	fileServer := http.FileServer(http.Dir(cfg.PublicDir))
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found."})
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})

	return r
}
