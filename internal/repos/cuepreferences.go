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

type CuePreferencesRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CuePreferences, error)
	Upsert(ctx context.Context, tx *gorm.DB, prefs *types.CuePreferences) (*types.CuePreferences, error)
}

type cuePreferencesRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCuePreferencesRepo(db *gorm.DB, baseLog *logger.Logger) CuePreferencesRepo {
	repoLog := baseLog.With("repo", "CuePreferencesRepo")
	return &cuePreferencesRepo{db: db, log: repoLog}
}

// GetByUserID returns nil, nil when no record exists yet; the caller
// falls back to defaults.
func (r *cuePreferencesRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CuePreferences, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil, nil
	}

	var prefs types.CuePreferences
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *cuePreferencesRepo) Upsert(ctx context.Context, tx *gorm.DB, prefs *types.CuePreferences) (*types.CuePreferences, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if prefs == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"global_frequency", "by_trigger", "by_priority", "preferred_style",
				"quiet_hours", "max_cues_per_day", "max_cues_per_session",
				"group_similar", "enable_sounds", "enable_vibration", "updated_at",
			}),
		}).
		Create(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}
