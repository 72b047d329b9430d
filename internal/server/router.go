package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/anatomica-backend/internal/handlers"
	"github.com/yungbote/anatomica-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	CueHandler     *handlers.CueHandler
	DigestHandler  *handlers.DigestHandler
	SSEHandler     *handlers.SSEHandler
	AllowedOrigins []string
	ServiceName    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "anatomica"
	}
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.AttachTraceContext())

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Cueing
	api := protected.Group("/api")
	{
		api.POST("/cues/session", cfg.CueHandler.StartSession)
		api.DELETE("/cues/session", cfg.CueHandler.EndSession)
		api.POST("/cues/triggers", cfg.CueHandler.IngestTrigger)
		api.GET("/cues/ready", cfg.CueHandler.Ready)
		api.POST("/cues/:id/actions", cfg.CueHandler.Action)
		api.GET("/cues/preferences", cfg.CueHandler.GetPreferences)
		api.PUT("/cues/preferences", cfg.CueHandler.UpdatePreferences)
		api.GET("/cues/analytics", cfg.CueHandler.GetAnalytics)
		api.GET("/digest", cfg.DigestHandler.GetDigest)
	}
	// SSE
	protected.GET("/sse/stream", cfg.SSEHandler.Stream)

	return router
}
