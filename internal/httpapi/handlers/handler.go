package handlers

import (
	"go.uber.org/zap"

	"github.com/personachat/server/internal/auth"
	"github.com/personachat/server/internal/chat"
	"github.com/personachat/server/internal/config"
	"github.com/personachat/server/internal/httpapi/middleware"
	"github.com/personachat/server/internal/identity"
)

type Handler struct {
	Cfg      config.Config
	Log      *zap.Logger
	ChatSvc  *chat.Service
	Identity *identity.Service
	Google   *auth.Google
	Cache    middleware.SessionCache
}

func NewHandler(cfg config.Config, log *zap.Logger, chatSvc *chat.Service, idSvc *identity.Service, google *auth.Google, cache middleware.SessionCache) *Handler {
	return &Handler{
		Cfg:      cfg,
		Log:      log,
		ChatSvc:  chatSvc,
		Identity: idSvc,
		Google:   google,
		Cache:    cache,
	}
}
