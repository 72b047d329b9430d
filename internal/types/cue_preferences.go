package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CuePreferences is the durable per-user preference record. The
// frequency maps and quiet-hours window live in jsonb; the engine-side
// representation is cueing.Preferences and the session service converts
// between the two at session start/end.
type CuePreferences struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	GlobalFrequency string         `gorm:"column:global_frequency;not null;default:'sometimes'" json:"global_frequency"`
	ByTrigger       datatypes.JSON `gorm:"type:jsonb;column:by_trigger" json:"by_trigger"`
	ByPriority      datatypes.JSON `gorm:"type:jsonb;column:by_priority" json:"by_priority"`
	PreferredStyle  string         `gorm:"column:preferred_style;not null;default:'banner'" json:"preferred_style"`
	QuietHours      datatypes.JSON `gorm:"type:jsonb;column:quiet_hours" json:"quiet_hours"`
	MaxCuesPerDay   int            `gorm:"column:max_cues_per_day;not null;default:10" json:"max_cues_per_day"`
	MaxCuesPerSess  int            `gorm:"column:max_cues_per_session;not null;default:3" json:"max_cues_per_session"`
	GroupSimilar    bool           `gorm:"column:group_similar;not null;default:true" json:"group_similar"`
	EnableSounds    bool           `gorm:"column:enable_sounds;not null;default:false" json:"enable_sounds"`
	EnableVibration bool           `gorm:"column:enable_vibration;not null;default:false" json:"enable_vibration"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CuePreferences) TableName() string { return "cue_preferences" }
