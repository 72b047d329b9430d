package app

import (
	"github.com/yungbote/anatomica-backend/internal/handlers"
	"github.com/yungbote/anatomica-backend/internal/sse"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	User   *handlers.UserHandler
	Cue    *handlers.CueHandler
	Digest *handlers.DigestHandler
	SSE    *handlers.SSEHandler
}

func wireHandlers(serviceset Services, hub *sse.SSEHub) Handlers {
	return Handlers{
		Auth:   handlers.NewAuthHandler(serviceset.Auth),
		User:   handlers.NewUserHandler(serviceset.User),
		Cue:    handlers.NewCueHandler(serviceset.CueSession),
		Digest: handlers.NewDigestHandler(serviceset.Digest),
		SSE:    handlers.NewSSEHandler(hub),
	}
}
