package cueing

import (
	"strings"
	"time"
)

// TriggerType is a closed enumeration. Adding a type means touching
// Valid, Label and the default catalog, all compile-visible places.
type TriggerType string

const (
	TriggerSymptomEntry       TriggerType = "symptom-entry"
	TriggerLabView            TriggerType = "lab-view"
	TriggerBiomarkerChange    TriggerType = "biomarker-change"
	TriggerMedicationReminder TriggerType = "medication-reminder"
	TriggerTimeBased          TriggerType = "time-based"
	TriggerLearningMilestone  TriggerType = "learning-milestone"
	TriggerHealthAnniversary  TriggerType = "health-anniversary"
	TriggerStructureClick     TriggerType = "structure-click"
	TriggerSearchQuery        TriggerType = "search-query"
	TriggerIdlePrompt         TriggerType = "idle-prompt"
)

func AllTriggerTypes() []TriggerType {
	return []TriggerType{
		TriggerSymptomEntry,
		TriggerLabView,
		TriggerBiomarkerChange,
		TriggerMedicationReminder,
		TriggerTimeBased,
		TriggerLearningMilestone,
		TriggerHealthAnniversary,
		TriggerStructureClick,
		TriggerSearchQuery,
		TriggerIdlePrompt,
	}
}

func (t TriggerType) Valid() bool {
	switch t {
	case TriggerSymptomEntry, TriggerLabView, TriggerBiomarkerChange,
		TriggerMedicationReminder, TriggerTimeBased, TriggerLearningMilestone,
		TriggerHealthAnniversary, TriggerStructureClick, TriggerSearchQuery,
		TriggerIdlePrompt:
		return true
	default:
		return false
	}
}

func (t TriggerType) Label() string {
	switch t {
	case TriggerSymptomEntry:
		return "Symptom entry"
	case TriggerLabView:
		return "Lab result viewed"
	case TriggerBiomarkerChange:
		return "Biomarker change"
	case TriggerMedicationReminder:
		return "Medication reminder"
	case TriggerTimeBased:
		return "Scheduled"
	case TriggerLearningMilestone:
		return "Learning milestone"
	case TriggerHealthAnniversary:
		return "Health anniversary"
	case TriggerStructureClick:
		return "Anatomy selection"
	case TriggerSearchQuery:
		return "Search"
	case TriggerIdlePrompt:
		return "Idle prompt"
	default:
		return string(t)
	}
}

type TimeOfDayBucket string

const (
	TimeOfDayMorning   TimeOfDayBucket = "morning"
	TimeOfDayAfternoon TimeOfDayBucket = "afternoon"
	TimeOfDayEvening   TimeOfDayBucket = "evening"
	TimeOfDayNight     TimeOfDayBucket = "night"
)

func BucketForHour(hour int) TimeOfDayBucket {
	switch {
	case hour >= 5 && hour < 12:
		return TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return TimeOfDayAfternoon
	case hour >= 17 && hour < 22:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}

// Context is the snapshot of what the user was doing when the trigger
// fired. It rides along on the trigger and is never mutated afterwards.
type Context struct {
	CurrentView        string          `json:"current_view"`
	RecentActivity     []string        `json:"recent_activity,omitempty"`
	ActiveConditions   []string        `json:"active_conditions,omitempty"`
	RecentSymptoms     []string        `json:"recent_symptoms,omitempty"`
	ViewedStructures   []string        `json:"viewed_structures,omitempty"`
	SearchHistory      []string        `json:"search_history,omitempty"`
	TimeOfDay          TimeOfDayBucket `json:"time_of_day"`
	DayOfWeek          time.Weekday    `json:"day_of_week"`
	LearningStreakDays int             `json:"learning_streak_days"`
}

// Trigger records why a cue might fire. Read-only once constructed; it
// lives exactly as long as the cue it spawns.
type Trigger struct {
	Type       TriggerType       `json:"type"`
	SourceID   string            `json:"source_id"`
	SourceName string            `json:"source_name"`
	Details    map[string]string `json:"details,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Context    Context           `json:"context"`
}

func newTrigger(t TriggerType, sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return Trigger{
		Type:       t,
		SourceID:   strings.TrimSpace(sourceID),
		SourceName: strings.TrimSpace(sourceName),
		Details:    details,
		OccurredAt: at.UTC(),
		Context:    ctx,
	}
}

func NewSymptomTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerSymptomEntry, sourceID, sourceName, details, ctx, at)
}

func NewLabViewTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerLabView, sourceID, sourceName, details, ctx, at)
}

func NewBiomarkerChangeTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerBiomarkerChange, sourceID, sourceName, details, ctx, at)
}

func NewMedicationReminderTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerMedicationReminder, sourceID, sourceName, details, ctx, at)
}

func NewTimeBasedTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerTimeBased, sourceID, sourceName, details, ctx, at)
}

func NewLearningMilestoneTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerLearningMilestone, sourceID, sourceName, details, ctx, at)
}

func NewHealthAnniversaryTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerHealthAnniversary, sourceID, sourceName, details, ctx, at)
}

func NewStructureClickTrigger(structureID string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerStructureClick, structureID, StructureName(structureID), details, ctx, at)
}

func NewSearchQueryTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerSearchQuery, sourceID, sourceName, details, ctx, at)
}

func NewIdlePromptTrigger(sourceID, sourceName string, details map[string]string, ctx Context, at time.Time) Trigger {
	return newTrigger(TriggerIdlePrompt, sourceID, sourceName, details, ctx, at)
}

// StructureName maps an anatomy-viewer structure id to its display
// name. Unknown ids fall back to the raw id so a new structure in the
// viewer degrades to an ugly label, never a missing cue.
func StructureName(structureID string) string {
	switch strings.ToLower(strings.TrimSpace(structureID)) {
	case "heart":
		return "Heart"
	case "liver":
		return "Liver"
	case "lungs":
		return "Lungs"
	case "kidneys":
		return "Kidneys"
	case "brain":
		return "Brain"
	case "stomach":
		return "Stomach"
	case "pancreas":
		return "Pancreas"
	case "thyroid":
		return "Thyroid"
	case "spleen":
		return "Spleen"
	case "intestines":
		return "Intestines"
	case "bladder":
		return "Bladder"
	case "spine":
		return "Spine"
	default:
		return strings.TrimSpace(structureID)
	}
}
