package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/anatomica-backend/internal/logger"
	"github.com/yungbote/anatomica-backend/internal/types"
)

type CueRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.CueRecord) ([]*types.CueRecord, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CueRecord, error)
	CountByUserAndTriggerType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, triggerType string) (int64, error)
}

type cueRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCueRecordRepo(db *gorm.DB, baseLog *logger.Logger) CueRecordRepo {
	repoLog := baseLog.With("repo", "CueRecordRepo")
	return &cueRecordRepo{db: db, log: repoLog}
}

func (r *cueRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.CueRecord) ([]*types.CueRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(records) == 0 {
		return []*types.CueRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *cueRecordRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CueRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CueRecord
	if userID == uuid.Nil {
		return results, nil
	}
	if limit <= 0 {
		limit = 100
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("retired_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *cueRecordRepo) CountByUserAndTriggerType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, triggerType string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if userID == uuid.Nil || triggerType == "" {
		return 0, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.CueRecord{}).
		Where("user_id = ? AND trigger_type = ?", userID, triggerType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
