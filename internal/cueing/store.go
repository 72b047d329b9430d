package cueing

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/anatomica-backend/internal/logger"
)

// Store is the per-session aggregate: active cues, history, catalog,
// preferences, analytics, last context and the display counters the
// gate runs against. One instance per user session; all mutation goes
// through it on a single control goroutine. Nothing here blocks.
type Store struct {
	log       *logger.Logger
	clock     Clock
	catalog   *Catalog
	prefs     Preferences
	analytics *Analytics

	active  []*Cue
	byID    map[uuid.UUID]*Cue
	history []*Cue

	lastContext Context

	sessionShown int
	dayShown     int
	dayStart     time.Time
}

func NewStore(catalog *Catalog, prefs Preferences, analytics *Analytics, clock Clock, baseLog *logger.Logger) *Store {
	if clock == nil {
		clock = RealClock()
	}
	if analytics == nil {
		analytics = NewAnalytics()
	}
	var log *logger.Logger
	if baseLog != nil {
		log = baseLog.With("component", "CueStore")
	}
	now := clock.Now()
	return &Store{
		log:       log,
		clock:     clock,
		catalog:   catalog,
		prefs:     prefs,
		analytics: analytics,
		byID:      make(map[uuid.UUID]*Cue),
		dayStart:  startOfDay(now),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// rollDay resets the per-day display counter when the calendar day
// changes. Evaluated lazily, like every other time-based behavior.
func (s *Store) rollDay(now time.Time) {
	day := startOfDay(now)
	if day.After(s.dayStart) {
		s.dayStart = day
		s.dayShown = 0
	}
}

// HandleTrigger runs the full generation path: resolve a template,
// render the cue, count it as generated, then gate it. The returned
// bool says whether the cue was accepted for display; a suppressed cue
// is not retained. Session/day counters move only on accept, so
// generated-but-suppressed cues never eat into the caps.
func (s *Store) HandleTrigger(trig Trigger, vars map[string]string, target TargetContent) (*Cue, bool) {
	s.lastContext = trig.Context

	tpl, ok := s.catalog.Resolve(trig.Type)
	if !ok {
		// No template for this trigger type: a normal nothing-to-do
		// outcome, not an error.
		if s.log != nil {
			s.log.Debug("No template for trigger type", "trigger_type", trig.Type)
		}
		return nil, false
	}

	now := s.clock.Now()
	cue := Render(tpl, trig, vars, target, now)
	s.analytics.RecordGenerated(cue)

	s.rollDay(now)
	if !ShouldShow(cue, s.prefs, s.sessionShown, s.clock) {
		if s.log != nil {
			s.log.Debug("Cue suppressed by visibility gate", "template_id", tpl.ID, "priority", cue.Priority)
		}
		return cue, false
	}
	if s.dayShown >= s.prefs.MaxCuesPerDay {
		if s.log != nil {
			s.log.Debug("Cue suppressed by daily cap", "template_id", tpl.ID, "day_shown", s.dayShown)
		}
		return cue, false
	}

	s.sessionShown++
	s.dayShown++
	s.active = append(s.active, cue)
	s.byID[cue.ID] = cue
	if s.log != nil {
		s.log.Debug("Cue accepted for display", "cue_id", cue.ID, "template_id", tpl.ID, "session_shown", s.sessionShown)
	}
	return cue, true
}

// ActionInput carries everything a UI callback can attach to a
// lifecycle transition.
type ActionInput struct {
	Action         Action `json:"action"`
	DurationMs     int64  `json:"duration_ms,omitempty"`
	SnoozeMinutes  int    `json:"snooze_minutes,omitempty"`
	FeedbackRating int    `json:"feedback_rating,omitempty"`
}

// Apply records a user action against an active cue. An unknown id is
// a silent no-op so UI double-clicks and stale references stay
// harmless. Returns the cue if the action was applied.
func (s *Store) Apply(id uuid.UUID, in ActionInput) *Cue {
	cue, ok := s.byID[id]
	if !ok || !in.Action.Valid() {
		return nil
	}
	if cue.Status.IsTerminal() {
		// Re-invoking a terminal transition is a no-op, not an error.
		return cue
	}

	now := s.clock.Now()
	if cue.expiredBy(now) {
		// Past its expiration the cue is inactive even though no sweep
		// has retired it yet; the action lands on an expired cue.
		cue.Status = cue.Status.expire()
		s.retire(cue)
		return cue
	}
	prev := cue.Status
	snoozeFor := time.Duration(in.SnoozeMinutes) * time.Minute
	cue.Status = ApplyAction(prev, in.Action, now, snoozeFor)

	if cue.Engagement == nil {
		cue.Engagement = &Engagement{}
	}
	cue.Engagement.Actions = append(cue.Engagement.Actions, EngagementAction{
		Action:     in.Action,
		At:         now,
		DurationMs: in.DurationMs,
	})
	switch in.Action {
	case ActionViewed:
		if in.DurationMs > 0 {
			cue.Engagement.TotalViewTimeMs += in.DurationMs
		}
	case ActionClicked:
		cue.Engagement.ClickThrough = true
	case ActionCompleted:
		cue.Engagement.Completed = true
	}
	if in.FeedbackRating >= 1 && in.FeedbackRating <= 5 {
		cue.Engagement.FeedbackRating = in.FeedbackRating
	}

	// Analytics fold: first-time flag flips only.
	if !prev.Read && cue.Status.Read {
		s.analytics.RecordFirstView(cue)
	}
	if in.Action == ActionClicked && !clickedBefore(cue) {
		s.analytics.RecordFirstClick(cue)
	}
	if in.Action == ActionDismissed {
		s.analytics.RecordFirstDismiss(cue)
	}

	if cue.Status.IsTerminal() {
		s.retire(cue)
	}
	return cue
}

// clickedBefore looks for a click earlier than the one just appended.
func clickedBefore(cue *Cue) bool {
	if cue.Engagement == nil {
		return false
	}
	count := 0
	for _, a := range cue.Engagement.Actions {
		if a.Action == ActionClicked {
			count++
		}
	}
	return count > 1
}

// ReadyToShow is the readiness sweep: the one place where lazy
// expiration and snooze-wake happen. Expired cues move to history as a
// side effect; woken cues lose their snoozed kind.
func (s *Store) ReadyToShow() []*Cue {
	now := s.clock.Now()
	ready := make([]*Cue, 0, len(s.active))
	remaining := s.active[:0]
	for _, cue := range s.active {
		if cue.expiredBy(now) {
			cue.Status = cue.Status.expire()
			delete(s.byID, cue.ID)
			s.history = append(s.history, cue)
			if s.log != nil {
				s.log.Debug("Cue expired during readiness sweep", "cue_id", cue.ID)
			}
			continue
		}
		cue.Status = cue.Status.wake(now)
		remaining = append(remaining, cue)
		if cue.Status.Kind == StatusActive {
			ready = append(ready, cue)
		}
	}
	s.active = remaining
	return ready
}

// retire moves a terminal cue from the active collection to history.
func (s *Store) retire(cue *Cue) {
	delete(s.byID, cue.ID)
	for i, c := range s.active {
		if c.ID == cue.ID {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
	s.history = append(s.history, cue)
}

func (s *Store) Get(id uuid.UUID) (*Cue, bool) {
	cue, ok := s.byID[id]
	return cue, ok
}

func (s *Store) ActiveCount() int { return len(s.active) }

func (s *Store) SessionShown() int { return s.sessionShown }

// History returns retired cues in retirement order.
func (s *Store) History() []*Cue {
	out := make([]*Cue, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) Analytics() *Analytics { return s.analytics }

func (s *Store) Preferences() Preferences { return s.prefs }

// SetPreferences swaps the preference record mid-session. Counters are
// kept; a lowered cap applies to the next gate evaluation.
func (s *Store) SetPreferences(p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.prefs = p
	return nil
}

func (s *Store) LastContext() Context { return s.lastContext }
