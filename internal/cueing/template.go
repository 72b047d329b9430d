package cueing

import (
	"fmt"
	"strings"
)

// Priority in descending urgency.
type Priority string

const (
	PriorityUrgent     Priority = "urgent"
	PriorityImportant  Priority = "important"
	PrioritySuggested  Priority = "suggested"
	PriorityNiceToKnow Priority = "nice-to-know"
)

func AllPriorities() []Priority {
	return []Priority{PriorityUrgent, PriorityImportant, PrioritySuggested, PriorityNiceToKnow}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityImportant, PrioritySuggested, PriorityNiceToKnow:
		return true
	default:
		return false
	}
}

// Rank orders priorities by urgency, 0 being the most urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityImportant:
		return 1
	case PrioritySuggested:
		return 2
	case PriorityNiceToKnow:
		return 3
	default:
		return 4
	}
}

type NotificationStyle string

const (
	StyleBanner    NotificationStyle = "banner"
	StyleToast     NotificationStyle = "toast"
	StyleBadge     NotificationStyle = "badge"
	StyleSpotlight NotificationStyle = "spotlight"
	StyleInline    NotificationStyle = "inline"
	StyleModal     NotificationStyle = "modal"
)

func (s NotificationStyle) Valid() bool {
	switch s {
	case StyleBanner, StyleToast, StyleBadge, StyleSpotlight, StyleInline, StyleModal:
		return true
	default:
		return false
	}
}

// ContentType tags what kind of catalog entry a cue links to. The
// content bodies themselves are authored elsewhere.
type ContentType string

const (
	ContentTopic     ContentType = "topic"
	ContentQuiz      ContentType = "quiz"
	ContentFlashcard ContentType = "flashcard"
	ContentArticle   ContentType = "article"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentTopic, ContentQuiz, ContentFlashcard, ContentArticle:
		return true
	default:
		return false
	}
}

// Frequency forms an ordered scale: never < rarely < sometimes < often < always.
type Frequency string

const (
	FrequencyNever     Frequency = "never"
	FrequencyRarely    Frequency = "rarely"
	FrequencySometimes Frequency = "sometimes"
	FrequencyOften     Frequency = "often"
	FrequencyAlways    Frequency = "always"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyNever, FrequencyRarely, FrequencySometimes, FrequencyOften, FrequencyAlways:
		return true
	default:
		return false
	}
}

func (f Frequency) Rank() int {
	switch f {
	case FrequencyNever:
		return 0
	case FrequencyRarely:
		return 1
	case FrequencySometimes:
		return 2
	case FrequencyOften:
		return 3
	case FrequencyAlways:
		return 4
	default:
		return -1
	}
}

// Template is an authored message skeleton. Loaded once, never mutated
// at runtime. Text fields use {{placeholder}} substitution.
type Template struct {
	ID                string            `yaml:"id"`
	Trigger           TriggerType       `yaml:"trigger"`
	Priority          Priority          `yaml:"priority"`
	TitleTemplate     string            `yaml:"title"`
	SummaryTemplate   string            `yaml:"summary"`
	BodyTemplate      string            `yaml:"body"`
	RelevanceTemplate string            `yaml:"relevance"`
	ContentType       ContentType       `yaml:"content_type"`
	Style             NotificationStyle `yaml:"style"`
	DisplaySeconds    int               `yaml:"display_seconds"`
	ExpirationHours   int               `yaml:"expiration_hours"`
}

func validateTemplate(t Template) error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("template id required")
	}
	if !t.Trigger.Valid() {
		return fmt.Errorf("template %q: unknown trigger type %q", t.ID, t.Trigger)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("template %q: unknown priority %q", t.ID, t.Priority)
	}
	if !t.Style.Valid() {
		return fmt.Errorf("template %q: unknown notification style %q", t.ID, t.Style)
	}
	if !t.ContentType.Valid() {
		return fmt.Errorf("template %q: unknown content type %q", t.ID, t.ContentType)
	}
	if strings.TrimSpace(t.TitleTemplate) == "" {
		return fmt.Errorf("template %q: title required", t.ID)
	}
	if t.DisplaySeconds < 0 {
		return fmt.Errorf("template %q: negative display duration", t.ID)
	}
	if t.ExpirationHours < 0 {
		return fmt.Errorf("template %q: negative expiration", t.ID)
	}
	return nil
}

// Catalog is an immutable, order-preserving table of templates.
// Resolution policy: first-registered template for a trigger type wins.
// Deterministic on purpose; there is no scoring.
type Catalog struct {
	templates []Template
}

// NewCatalog validates every template up front so an authoring mistake
// fails at load time, not mid-session.
func NewCatalog(templates ...Template) (*Catalog, error) {
	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		if err := validateTemplate(t); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true
	}
	out := make([]Template, len(templates))
	copy(out, templates)
	return &Catalog{templates: out}, nil
}

// Resolve returns the first template registered for the trigger type.
// Absence is not an error; the trigger simply produces no cue.
func (c *Catalog) Resolve(t TriggerType) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	for _, tpl := range c.templates {
		if tpl.Trigger == t {
			return tpl, true
		}
	}
	return Template{}, false
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.templates)
}

// Templates returns a copy; the catalog itself stays immutable.
func (c *Catalog) Templates() []Template {
	if c == nil {
		return nil
	}
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// DefaultCatalog covers every trigger type so the engine is usable
// without an authored YAML catalog.
func DefaultCatalog() *Catalog {
	cat, err := NewCatalog(
		Template{
			ID:                "symptom-entry-default",
			Trigger:           TriggerSymptomEntry,
			Priority:          PriorityImportant,
			TitleTemplate:     "Understanding {{symptom}}",
			SummaryTemplate:   "Learn what {{symptom}} can mean and when to seek care.",
			BodyTemplate:      "You logged {{symptom}}. A short read covers common causes, self-care, and warning signs worth a call to your clinician.",
			RelevanceTemplate: "Suggested because you logged {{symptom}} today.",
			ContentType:       ContentTopic,
			Style:             StyleBanner,
			ExpirationHours:   24,
		},
		Template{
			ID:                "lab-view-default",
			Trigger:           TriggerLabView,
			Priority:          PrioritySuggested,
			TitleTemplate:     "What does {{lab_name}} measure?",
			SummaryTemplate:   "A plain-language guide to your {{lab_name}} result.",
			BodyTemplate:      "Your {{lab_name}} result is in. This guide explains the reference range and what values outside it can mean.",
			RelevanceTemplate: "Suggested because you opened a {{lab_name}} result.",
			ContentType:       ContentArticle,
			Style:             StyleInline,
			ExpirationHours:   48,
		},
		Template{
			ID:                "biomarker-change-default",
			Trigger:           TriggerBiomarkerChange,
			Priority:          PriorityUrgent,
			TitleTemplate:     "Your {{biomarker}} changed",
			SummaryTemplate:   "{{biomarker}} moved from {{previous}} to {{current}}.",
			BodyTemplate:      "A notable change in {{biomarker}} was detected. Learn what drives this number and which changes matter.",
			RelevanceTemplate: "Flagged because {{biomarker}} changed since your last reading.",
			ContentType:       ContentTopic,
			Style:             StyleModal,
			ExpirationHours:   12,
		},
		Template{
			ID:                "medication-reminder-default",
			Trigger:           TriggerMedicationReminder,
			Priority:          PriorityImportant,
			TitleTemplate:     "About {{medication}}",
			SummaryTemplate:   "How {{medication}} works and what to watch for.",
			BodyTemplate:      "A two-minute refresher on {{medication}}: how it works, common side effects, and interactions to avoid.",
			RelevanceTemplate: "Suggested alongside your {{medication}} reminder.",
			ContentType:       ContentTopic,
			Style:             StyleToast,
			ExpirationHours:   24,
		},
		Template{
			ID:                "time-based-default",
			Trigger:           TriggerTimeBased,
			Priority:          PriorityNiceToKnow,
			TitleTemplate:     "Today's health topic",
			SummaryTemplate:   "A quick read picked for your {{time_of_day}}.",
			BodyTemplate:      "Keep your streak going with a short topic matched to your recent activity.",
			RelevanceTemplate: "Part of your daily learning rotation.",
			ContentType:       ContentTopic,
			Style:             StyleBadge,
			ExpirationHours:   24,
		},
		Template{
			ID:                "learning-milestone-default",
			Trigger:           TriggerLearningMilestone,
			Priority:          PrioritySuggested,
			TitleTemplate:     "Milestone: {{milestone}}",
			SummaryTemplate:   "You reached {{milestone}}. Ready for the next step?",
			BodyTemplate:      "Nice work on {{milestone}}. A follow-up quiz locks in what you learned.",
			RelevanceTemplate: "Unlocked by reaching {{milestone}}.",
			ContentType:       ContentQuiz,
			Style:             StyleSpotlight,
			ExpirationHours:   72,
		},
		Template{
			ID:                "health-anniversary-default",
			Trigger:           TriggerHealthAnniversary,
			Priority:          PriorityNiceToKnow,
			TitleTemplate:     "One year with {{condition}}",
			SummaryTemplate:   "A look back at managing {{condition}}.",
			BodyTemplate:      "It has been a year since {{condition}} was added to your profile. See what has changed in the guidance since then.",
			RelevanceTemplate: "Anniversary of {{condition}} in your health profile.",
			ContentType:       ContentArticle,
			Style:             StyleInline,
			ExpirationHours:   168,
		},
		Template{
			ID:                "structure-click-default",
			Trigger:           TriggerStructureClick,
			Priority:          PrioritySuggested,
			TitleTemplate:     "Explore the {{structure}}",
			SummaryTemplate:   "Anatomy and common conditions of the {{structure}}.",
			BodyTemplate:      "You selected the {{structure}} in the viewer. Dive into how it works and the conditions that affect it.",
			RelevanceTemplate: "Based on your selection in the anatomy viewer.",
			ContentType:       ContentTopic,
			Style:             StyleSpotlight,
			ExpirationHours:   6,
		},
		Template{
			ID:                "search-query-default",
			Trigger:           TriggerSearchQuery,
			Priority:          PrioritySuggested,
			TitleTemplate:     "More on \"{{query}}\"",
			SummaryTemplate:   "Curated reading related to your search.",
			BodyTemplate:      "Your search for \"{{query}}\" matches a curated topic with illustrations and a self-check quiz.",
			RelevanceTemplate: "Matched to your recent search.",
			ContentType:       ContentTopic,
			Style:             StyleInline,
			ExpirationHours:   12,
		},
		Template{
			ID:                "idle-prompt-default",
			Trigger:           TriggerIdlePrompt,
			Priority:          PriorityNiceToKnow,
			TitleTemplate:     "Pick up where you left off",
			SummaryTemplate:   "Your {{streak}}-day streak is waiting.",
			BodyTemplate:      "A five-minute flashcard round keeps your learning streak alive.",
			RelevanceTemplate: "You have been away for a while.",
			ContentType:       ContentFlashcard,
			Style:             StyleToast,
		},
	)
	if err != nil {
		// Built-ins are compile-time data; a validation failure here is
		// a programmer error.
		panic(err)
	}
	return cat
}
