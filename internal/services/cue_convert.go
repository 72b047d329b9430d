package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/anatomica-backend/internal/cueing"
	"github.com/yungbote/anatomica-backend/internal/types"
)

// Conversions between the engine's in-memory records and the durable
// gorm models. The engine never sees gorm; the session service owns the
// boundary.

func prefsToModel(userID uuid.UUID, p cueing.Preferences, now time.Time) *types.CuePreferences {
	byTrigger, _ := json.Marshal(p.FrequencyByTrigger)
	byPriority, _ := json.Marshal(p.FrequencyByPriority)
	quietHours, _ := json.Marshal(p.QuietHours)
	return &types.CuePreferences{
		ID:              uuid.New(),
		UserID:          userID,
		GlobalFrequency: string(p.GlobalFrequency),
		ByTrigger:       datatypes.JSON(byTrigger),
		ByPriority:      datatypes.JSON(byPriority),
		PreferredStyle:  string(p.PreferredStyle),
		QuietHours:      datatypes.JSON(quietHours),
		MaxCuesPerDay:   p.MaxCuesPerDay,
		MaxCuesPerSess:  p.MaxCuesPerSession,
		GroupSimilar:    p.GroupSimilarCues,
		EnableSounds:    p.EnableSounds,
		EnableVibration: p.EnableVibration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func prefsFromModel(m *types.CuePreferences) cueing.Preferences {
	p := cueing.DefaultPreferences()
	if m == nil {
		return p
	}
	p.GlobalFrequency = cueing.Frequency(m.GlobalFrequency)
	p.PreferredStyle = cueing.NotificationStyle(m.PreferredStyle)
	p.MaxCuesPerDay = m.MaxCuesPerDay
	p.MaxCuesPerSession = m.MaxCuesPerSess
	p.GroupSimilarCues = m.GroupSimilar
	p.EnableSounds = m.EnableSounds
	p.EnableVibration = m.EnableVibration
	if len(m.ByTrigger) > 0 {
		byTrigger := map[cueing.TriggerType]cueing.Frequency{}
		if err := json.Unmarshal(m.ByTrigger, &byTrigger); err == nil {
			p.FrequencyByTrigger = byTrigger
		}
	}
	if len(m.ByPriority) > 0 {
		byPriority := map[cueing.Priority]cueing.Frequency{}
		if err := json.Unmarshal(m.ByPriority, &byPriority); err == nil {
			p.FrequencyByPriority = byPriority
		}
	}
	if len(m.QuietHours) > 0 {
		var quietHours cueing.QuietHours
		if err := json.Unmarshal(m.QuietHours, &quietHours); err == nil {
			p.QuietHours = quietHours
		}
	}
	return p
}

func analyticsToModel(userID uuid.UUID, a *cueing.Analytics, now time.Time) *types.CueAnalytics {
	if a == nil {
		a = cueing.NewAnalytics()
	}
	byTrigger, _ := json.Marshal(a.ByTrigger)
	byPriority, _ := json.Marshal(a.ByPriority)
	return &types.CueAnalytics{
		ID:               uuid.New(),
		UserID:           userID,
		TotalGenerated:   a.TotalGenerated,
		TotalViewed:      a.TotalViewed,
		TotalClicked:     a.TotalClicked,
		TotalDismissed:   a.TotalDismissed,
		EngagementRate:   a.EngagementRate,
		ClickThroughRate: a.ClickThroughRate,
		CompletionRate:   a.CompletionRate,
		ByTrigger:        datatypes.JSON(byTrigger),
		ByPriority:       datatypes.JSON(byPriority),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func analyticsFromModel(m *types.CueAnalytics) *cueing.Analytics {
	a := cueing.NewAnalytics()
	if m == nil {
		return a
	}
	a.TotalGenerated = m.TotalGenerated
	a.TotalViewed = m.TotalViewed
	a.TotalClicked = m.TotalClicked
	a.TotalDismissed = m.TotalDismissed
	a.EngagementRate = m.EngagementRate
	a.ClickThroughRate = m.ClickThroughRate
	a.CompletionRate = m.CompletionRate
	if len(m.ByTrigger) > 0 {
		byTrigger := map[cueing.TriggerType]*cueing.DimensionStats{}
		if err := json.Unmarshal(m.ByTrigger, &byTrigger); err == nil {
			a.ByTrigger = byTrigger
		}
	}
	if len(m.ByPriority) > 0 {
		byPriority := map[cueing.Priority]*cueing.DimensionStats{}
		if err := json.Unmarshal(m.ByPriority, &byPriority); err == nil {
			a.ByPriority = byPriority
		}
	}
	return a
}

func cueToRecord(userID uuid.UUID, c *cueing.Cue, now time.Time) *types.CueRecord {
	trigger, _ := json.Marshal(c.Trigger)
	engagement, _ := json.Marshal(c.Engagement)
	return &types.CueRecord{
		ID:          c.ID,
		UserID:      userID,
		TriggerType: string(c.Trigger.Type),
		TemplateID:  c.TemplateID,
		Priority:    string(c.Priority),
		Title:       c.Title,
		FinalStatus: string(c.Status.Kind),
		WasRead:     c.Status.Read,
		Trigger:     datatypes.JSON(trigger),
		Engagement:  datatypes.JSON(engagement),
		CuedAt:      c.CreatedAt,
		RetiredAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
