package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/anatomica-backend/internal/logger"
	"github.com/yungbote/anatomica-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	UserToken      repos.UserTokenRepo
	CuePreferences repos.CuePreferencesRepo
	CueAnalytics   repos.CueAnalyticsRepo
	CueRecord      repos.CueRecordRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserToken:      repos.NewUserTokenRepo(db, log),
		CuePreferences: repos.NewCuePreferencesRepo(db, log),
		CueAnalytics:   repos.NewCueAnalyticsRepo(db, log),
		CueRecord:      repos.NewCueRecordRepo(db, log),
	}
}
