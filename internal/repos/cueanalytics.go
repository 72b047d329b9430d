package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/anatomica-backend/internal/logger"
	"github.com/yungbote/anatomica-backend/internal/types"
)

type CueAnalyticsRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CueAnalytics, error)
	Upsert(ctx context.Context, tx *gorm.DB, analytics *types.CueAnalytics) (*types.CueAnalytics, error)
}

type cueAnalyticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCueAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) CueAnalyticsRepo {
	repoLog := baseLog.With("repo", "CueAnalyticsRepo")
	return &cueAnalyticsRepo{db: db, log: repoLog}
}

func (r *cueAnalyticsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CueAnalytics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil, nil
	}

	var analytics types.CueAnalytics
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&analytics).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &analytics, nil
}

func (r *cueAnalyticsRepo) Upsert(ctx context.Context, tx *gorm.DB, analytics *types.CueAnalytics) (*types.CueAnalytics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if analytics == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_generated", "total_viewed", "total_clicked", "total_dismissed",
				"engagement_rate", "click_through_rate", "completion_rate",
				"by_trigger", "by_priority", "updated_at",
			}),
		}).
		Create(analytics).Error; err != nil {
		return nil, err
	}
	return analytics, nil
}
