package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CueAnalytics is the durable rolling aggregate, one row per user,
// written back whenever a session ends. Breakdown tables are jsonb.
type CueAnalytics struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TotalGenerated   int            `gorm:"column:total_generated;not null;default:0" json:"total_generated"`
	TotalViewed      int            `gorm:"column:total_viewed;not null;default:0" json:"total_viewed"`
	TotalClicked     int            `gorm:"column:total_clicked;not null;default:0" json:"total_clicked"`
	TotalDismissed   int            `gorm:"column:total_dismissed;not null;default:0" json:"total_dismissed"`
	EngagementRate   float64        `gorm:"column:engagement_rate;not null;default:0" json:"engagement_rate"`
	ClickThroughRate float64        `gorm:"column:click_through_rate;not null;default:0" json:"click_through_rate"`
	CompletionRate   float64        `gorm:"column:completion_rate;not null;default:0" json:"completion_rate"`
	ByTrigger        datatypes.JSON `gorm:"type:jsonb;column:by_trigger" json:"by_trigger"`
	ByPriority       datatypes.JSON `gorm:"type:jsonb;column:by_priority" json:"by_priority"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CueAnalytics) TableName() string { return "cue_analytics" }
