package cueing

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// TargetContent points a cue at the catalog entry it promotes.
type TargetContent struct {
	ContentID      string            `json:"content_id"`
	ContentType    ContentType       `json:"content_type"`
	NavigationPath string            `json:"navigation_path,omitempty"`
	DeepLink       map[string]string `json:"deep_link,omitempty"`
}

// EngagementAction is one timestamped entry in a cue's action log.
type EngagementAction struct {
	Action     Action    `json:"action"`
	At         time.Time `json:"at"`
	DurationMs int64     `json:"duration_ms,omitempty"`
}

// Engagement accumulates user interaction with a single cue. Created
// lazily on the first lifecycle transition.
type Engagement struct {
	Actions         []EngagementAction `json:"actions"`
	TotalViewTimeMs int64              `json:"total_view_time_ms"`
	ClickThrough    bool               `json:"click_through"`
	Completed       bool               `json:"completed"`
	FeedbackRating  int                `json:"feedback_rating,omitempty"`
}

// Cue is the central entity: everything except Status and Engagement is
// fixed at creation.
type Cue struct {
	ID             uuid.UUID         `json:"id"`
	Trigger        Trigger           `json:"trigger"`
	TemplateID     string            `json:"template_id"`
	Priority       Priority          `json:"priority"`
	Title          string            `json:"title"`
	Summary        string            `json:"summary"`
	Body           string            `json:"body"`
	Relevance      string            `json:"relevance"`
	Target         TargetContent     `json:"target"`
	Style          NotificationStyle `json:"style"`
	DisplaySeconds int               `json:"display_seconds,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	ExpiresAt      *time.Time        `json:"expires_at,omitempty"`
	Status         Status            `json:"status"`
	Engagement     *Engagement       `json:"engagement,omitempty"`
}

// expiredBy reports whether the expiration timestamp has passed. A cue
// with no expiration never expires on its own.
func (c *Cue) expiredBy(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Clone deep-copies a cue. Callers that hand a cue outside the store's
// control goroutine (response bodies, SSE payloads) must hand out a
// clone, since the store keeps mutating the original.
func (c *Cue) Clone() *Cue {
	if c == nil {
		return nil
	}
	out := *c
	if c.ExpiresAt != nil {
		exp := *c.ExpiresAt
		out.ExpiresAt = &exp
	}
	if c.Status.SnoozeUntil != nil {
		until := *c.Status.SnoozeUntil
		out.Status.SnoozeUntil = &until
	}
	if c.Engagement != nil {
		eng := *c.Engagement
		eng.Actions = append([]EngagementAction(nil), c.Engagement.Actions...)
		out.Engagement = &eng
	}
	if c.Target.DeepLink != nil {
		deepLink := make(map[string]string, len(c.Target.DeepLink))
		for k, v := range c.Target.DeepLink {
			deepLink[k] = v
		}
		out.Target.DeepLink = deepLink
	}
	return &out
}

// CloneCues clones a slice of cues.
func CloneCues(cues []*Cue) []*Cue {
	if cues == nil {
		return nil
	}
	out := make([]*Cue, len(cues))
	for i, c := range cues {
		out[i] = c.Clone()
	}
	return out
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Interpolate substitutes every {{key}} token from vars. Unmatched
// tokens stay verbatim; a partially populated variable set is normal,
// not an error.
func Interpolate(text string, vars map[string]string) string {
	if text == "" || len(vars) == 0 {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		if val, ok := vars[key]; ok {
			return val
		}
		return match
	})
}

// Render builds a fully formed cue from a template and trigger. Pure:
// no store insertion, no counters, no clock reads beyond the passed-in
// creation time.
func Render(tpl Template, trig Trigger, vars map[string]string, target TargetContent, now time.Time) *Cue {
	cue := &Cue{
		ID:             uuid.New(),
		Trigger:        trig,
		TemplateID:     tpl.ID,
		Priority:       tpl.Priority,
		Title:          Interpolate(tpl.TitleTemplate, vars),
		Summary:        Interpolate(tpl.SummaryTemplate, vars),
		Body:           Interpolate(tpl.BodyTemplate, vars),
		Relevance:      Interpolate(tpl.RelevanceTemplate, vars),
		Target:         target,
		Style:          tpl.Style,
		DisplaySeconds: tpl.DisplaySeconds,
		CreatedAt:      now.UTC(),
		Status:         NewStatus(),
	}
	if tpl.ExpirationHours > 0 {
		exp := cue.CreatedAt.Add(time.Duration(tpl.ExpirationHours) * time.Hour)
		cue.ExpiresAt = &exp
	}
	return cue
}
