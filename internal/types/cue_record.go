package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CueRecord archives a cue once it leaves the live session (dismissed,
// completed or expired). The trigger snapshot and the engagement log go
// into jsonb; the columns carry what analytics queries actually filter
// on.
type CueRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TriggerType string         `gorm:"column:trigger_type;not null;index" json:"trigger_type"`
	TemplateID  string         `gorm:"column:template_id;not null" json:"template_id"`
	Priority    string         `gorm:"column:priority;not null;index" json:"priority"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	FinalStatus string         `gorm:"column:final_status;not null" json:"final_status"`
	WasRead     bool           `gorm:"column:was_read;not null;default:false" json:"was_read"`
	Trigger     datatypes.JSON `gorm:"type:jsonb;column:trigger" json:"trigger"`
	Engagement  datatypes.JSON `gorm:"type:jsonb;column:engagement" json:"engagement"`
	CuedAt      time.Time      `gorm:"column:cued_at;not null" json:"cued_at"`
	RetiredAt   time.Time      `gorm:"column:retired_at;not null" json:"retired_at"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CueRecord) TableName() string { return "cue_record" }
