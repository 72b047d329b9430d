package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/anatomica-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:    handlerset.Auth,
		AuthMiddleware: mw.Auth,
		UserHandler:    handlerset.User,
		CueHandler:     handlerset.Cue,
		DigestHandler:  handlerset.Digest,
		SSEHandler:     handlerset.SSE,
		AllowedOrigins: cfg.AllowedOrigins,
		ServiceName:    cfg.ServiceName,
	})
}
