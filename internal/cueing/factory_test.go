package cueing

import (
	"strings"
	"testing"
	"time"
)

func TestInterpolate(t *testing.T) {
	cases := []struct {
		name string
		text string
		vars map[string]string
		want string
	}{
		{
			name: "single_token",
			text: "Understanding {{symptom}}",
			vars: map[string]string{"symptom": "headache"},
			want: "Understanding headache",
		},
		{
			name: "repeated_token",
			text: "{{name}} and {{name}} again",
			vars: map[string]string{"name": "liver"},
			want: "liver and liver again",
		},
		{
			name: "unmatched_token_left_verbatim",
			text: "Your {{biomarker}} moved to {{current}}",
			vars: map[string]string{"biomarker": "HbA1c"},
			want: "Your HbA1c moved to {{current}}",
		},
		{
			name: "no_vars",
			text: "Plain {{token}}",
			vars: nil,
			want: "Plain {{token}}",
		},
		{
			name: "token_with_spaces",
			text: "Hello {{ name }}",
			vars: map[string]string{"name": "world"},
			want: "Hello world",
		},
		{
			name: "empty_text",
			text: "",
			vars: map[string]string{"a": "b"},
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpolate(tc.text, tc.vars)
			if got != tc.want {
				t.Fatalf("Interpolate(%q)=%q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestRenderSymptomCue(t *testing.T) {
	clk := clockAt("2026-03-02T10:00:00Z")
	tpl, ok := DefaultCatalog().Resolve(TriggerSymptomEntry)
	if !ok {
		t.Fatalf("no default template for symptom-entry")
	}
	trig := NewSymptomTrigger("sym-1", "Symptom log", nil, Context{}, clk.Now())

	cue := Render(tpl, trig, map[string]string{"symptom": "headache"}, TargetContent{
		ContentID:   "topic-headache-types",
		ContentType: ContentTopic,
	}, clk.Now())

	if cue.Title != "Understanding headache" {
		t.Fatalf("title=%q, want %q", cue.Title, "Understanding headache")
	}
	for _, field := range []string{cue.Title, cue.Summary, cue.Body, cue.Relevance} {
		if strings.Contains(field, "{{") {
			t.Fatalf("rendered field still contains a placeholder: %q", field)
		}
	}
	if cue.Priority != PriorityImportant {
		t.Fatalf("priority=%q, want %q", cue.Priority, PriorityImportant)
	}
	if cue.ExpiresAt == nil {
		t.Fatalf("expected an expiration timestamp")
	}
	wantExp := clk.Now().Add(24 * time.Hour)
	if !cue.ExpiresAt.Equal(wantExp) {
		t.Fatalf("expires_at=%v, want %v", cue.ExpiresAt, wantExp)
	}
	if cue.Status.Kind != StatusActive || cue.Status.Read || cue.Status.IsSnoozed() {
		t.Fatalf("unexpected initial status: %+v", cue.Status)
	}
	if cue.Engagement != nil {
		t.Fatalf("engagement should be lazily created, got %+v", cue.Engagement)
	}
}

func TestRenderWithoutExpiration(t *testing.T) {
	clk := clockAt("2026-03-02T10:00:00Z")
	tpl, ok := DefaultCatalog().Resolve(TriggerIdlePrompt)
	if !ok {
		t.Fatalf("no default template for idle-prompt")
	}
	if tpl.ExpirationHours != 0 {
		t.Fatalf("idle-prompt template should carry no expiration, got %d", tpl.ExpirationHours)
	}
	trig := NewIdlePromptTrigger("idle-1", "Idle timer", nil, Context{}, clk.Now())
	cue := Render(tpl, trig, map[string]string{"streak": "4"}, TargetContent{}, clk.Now())
	if cue.ExpiresAt != nil {
		t.Fatalf("cue with no expiration hours must never expire, got %v", cue.ExpiresAt)
	}
	if cue.expiredBy(clk.Now().Add(365 * 24 * time.Hour)) {
		t.Fatalf("cue without expiration reported expired after a year")
	}
}
