package cueing

import "time"

// StatusKind is the cue lifecycle state. Dismissed, completed and
// expired are terminal; once reached, no transition has any effect.
type StatusKind string

const (
	StatusActive    StatusKind = "active"
	StatusSnoozed   StatusKind = "snoozed"
	StatusDismissed StatusKind = "dismissed"
	StatusCompleted StatusKind = "completed"
	StatusExpired   StatusKind = "expired"
)

// Status is a tagged variant rather than a bag of booleans, so a cue
// cannot be simultaneously dismissed and active. Read rides alongside
// the kind: a snoozed cue can still have been read.
type Status struct {
	Kind        StatusKind `json:"kind"`
	Read        bool       `json:"read"`
	SnoozeUntil *time.Time `json:"snooze_until,omitempty"`
}

func NewStatus() Status {
	return Status{Kind: StatusActive}
}

func (s Status) IsActive() bool {
	return s.Kind == StatusActive || s.Kind == StatusSnoozed
}

func (s Status) IsSnoozed() bool {
	return s.Kind == StatusSnoozed
}

func (s Status) IsTerminal() bool {
	switch s.Kind {
	case StatusDismissed, StatusCompleted, StatusExpired:
		return true
	default:
		return false
	}
}

// Action is a user (or UI) interaction fed back into the lifecycle.
type Action string

const (
	ActionViewed    Action = "viewed"
	ActionClicked   Action = "clicked"
	ActionDismissed Action = "dismissed"
	ActionSnoozed   Action = "snoozed"
	ActionCompleted Action = "completed"
)

func (a Action) Valid() bool {
	switch a {
	case ActionViewed, ActionClicked, ActionDismissed, ActionSnoozed, ActionCompleted:
		return true
	default:
		return false
	}
}

const DefaultSnooze = 60 * time.Minute

// ApplyAction is the single pure transition function. Terminal states
// absorb every action, which makes dismiss/complete idempotent.
func ApplyAction(s Status, a Action, now time.Time, snoozeFor time.Duration) Status {
	if s.IsTerminal() {
		return s
	}
	switch a {
	case ActionViewed:
		s.Read = true
	case ActionClicked:
		// engagement-only, status unchanged
	case ActionDismissed:
		s.Kind = StatusDismissed
		s.SnoozeUntil = nil
	case ActionSnoozed:
		if snoozeFor <= 0 {
			snoozeFor = DefaultSnooze
		}
		until := now.Add(snoozeFor)
		s.Kind = StatusSnoozed
		s.SnoozeUntil = &until
	case ActionCompleted:
		s.Kind = StatusCompleted
		s.SnoozeUntil = nil
	}
	return s
}

// wake clears an elapsed snooze. Only the readiness sweep calls this.
func (s Status) wake(now time.Time) Status {
	if s.Kind == StatusSnoozed && s.SnoozeUntil != nil && !now.Before(*s.SnoozeUntil) {
		s.Kind = StatusActive
		s.SnoozeUntil = nil
	}
	return s
}

// expire retires a cue whose expiration timestamp has passed.
func (s Status) expire() Status {
	if s.IsTerminal() {
		return s
	}
	s.Kind = StatusExpired
	s.SnoozeUntil = nil
	return s
}
