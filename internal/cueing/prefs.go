package cueing

import (
	"fmt"
	"regexp"
	"time"
)

// QuietHours suppresses non-urgent cues inside a time-of-day window.
// The window is allowed to wrap past midnight (22:00-07:00).
type QuietHours struct {
	Enabled     bool           `json:"enabled"`
	Start       string         `json:"start"`
	End         string         `json:"end"`
	Days        []time.Weekday `json:"days,omitempty"`
	AllowUrgent bool           `json:"allow_urgent"`
}

// Preferences is the entire tunable surface, one record per user.
// GroupSimilarCues, sounds, vibration and the preferred style are
// presentation hints consumed by the UI, not by the gate.
type Preferences struct {
	GlobalFrequency     Frequency                 `json:"global_frequency"`
	FrequencyByTrigger  map[TriggerType]Frequency `json:"frequency_by_trigger,omitempty"`
	FrequencyByPriority map[Priority]Frequency    `json:"frequency_by_priority,omitempty"`
	PreferredStyle      NotificationStyle         `json:"preferred_style"`
	QuietHours          QuietHours                `json:"quiet_hours"`
	MaxCuesPerDay       int                       `json:"max_cues_per_day"`
	MaxCuesPerSession   int                       `json:"max_cues_per_session"`
	GroupSimilarCues    bool                      `json:"group_similar_cues"`
	EnableSounds        bool                      `json:"enable_sounds"`
	EnableVibration     bool                      `json:"enable_vibration"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		GlobalFrequency:     FrequencySometimes,
		FrequencyByTrigger:  map[TriggerType]Frequency{},
		FrequencyByPriority: map[Priority]Frequency{},
		PreferredStyle:      StyleBanner,
		QuietHours: QuietHours{
			Enabled:     false,
			Start:       "22:00",
			End:         "07:00",
			AllowUrgent: true,
		},
		MaxCuesPerDay:     10,
		MaxCuesPerSession: 3,
		GroupSimilarCues:  true,
		EnableSounds:      false,
		EnableVibration:   false,
	}
}

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validate surfaces malformed preferences at load time. A record that
// passes here can never make the gate misbehave mid-session.
func (p Preferences) Validate() error {
	if !p.GlobalFrequency.Valid() {
		return fmt.Errorf("preferences: unknown global frequency %q", p.GlobalFrequency)
	}
	for tt, f := range p.FrequencyByTrigger {
		if !tt.Valid() {
			return fmt.Errorf("preferences: unknown trigger type %q in frequency overrides", tt)
		}
		if !f.Valid() {
			return fmt.Errorf("preferences: unknown frequency %q for trigger %q", f, tt)
		}
	}
	for pr, f := range p.FrequencyByPriority {
		if !pr.Valid() {
			return fmt.Errorf("preferences: unknown priority %q in frequency overrides", pr)
		}
		if !f.Valid() {
			return fmt.Errorf("preferences: unknown frequency %q for priority %q", f, pr)
		}
	}
	if !p.PreferredStyle.Valid() {
		return fmt.Errorf("preferences: unknown notification style %q", p.PreferredStyle)
	}
	if p.MaxCuesPerDay <= 0 {
		return fmt.Errorf("preferences: max cues per day must be positive")
	}
	if p.MaxCuesPerSession <= 0 {
		return fmt.Errorf("preferences: max cues per session must be positive")
	}
	if p.QuietHours.Enabled {
		if !hhmmRe.MatchString(p.QuietHours.Start) {
			return fmt.Errorf("preferences: quiet hours start %q is not HH:MM", p.QuietHours.Start)
		}
		if !hhmmRe.MatchString(p.QuietHours.End) {
			return fmt.Errorf("preferences: quiet hours end %q is not HH:MM", p.QuietHours.End)
		}
	}
	return nil
}
