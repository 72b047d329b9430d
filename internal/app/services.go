package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/anatomica-backend/internal/clients/redis"
	"github.com/yungbote/anatomica-backend/internal/cueing"
	"github.com/yungbote/anatomica-backend/internal/logger"
	"github.com/yungbote/anatomica-backend/internal/services"
	"github.com/yungbote/anatomica-backend/internal/sse"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	CueSession services.CueSessionService
	Digest     services.DigestService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	hub *sse.SSEHub,
	bus redis.CueBus,
) (Services, error) {
	catalog, err := cueing.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return Services{}, fmt.Errorf("load cue catalog: %w", err)
	}

	authService := services.NewAuthService(db, log, reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(db, log, reposet.User)
	cueSessionService := services.NewCueSessionService(
		db,
		log,
		reposet.CuePreferences,
		reposet.CueAnalytics,
		reposet.CueRecord,
		hub,
		bus,
		catalog,
		cueing.RealClock(),
	)
	digestService := services.NewDigestService(db, log, reposet.CueRecord, cueSessionService, hub, cueing.RealClock())

	return Services{
		Auth:       authService,
		User:       userService,
		CueSession: cueSessionService,
		Digest:     digestService,
	}, nil
}
