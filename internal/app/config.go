package app

import (
	"strings"
	"time"

	"github.com/yungbote/anatomica-backend/internal/logger"
	"github.com/yungbote/anatomica-backend/internal/utils"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CatalogPath     string
	AllowedOrigins  []string
	RedisEnabled    bool
	ServiceName     string
	Environment     string
	Version         string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	var origins []string
	if raw := utils.GetEnv("ALLOWED_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		CatalogPath:     utils.GetEnv("CUE_CATALOG_PATH", "", log),
		AllowedOrigins:  origins,
		RedisEnabled:    utils.GetEnvAsBool("REDIS_ENABLED", false, log),
		ServiceName:     utils.GetEnv("SERVICE_NAME", "anatomica", log),
		Environment:     utils.GetEnv("ENVIRONMENT", "development", log),
		Version:         utils.GetEnv("SERVICE_VERSION", "", log),
	}
}
