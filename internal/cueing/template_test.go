package cueing

import (
	"strings"
	"testing"
)

func TestDefaultCatalogCoversAllTriggerTypes(t *testing.T) {
	cat := DefaultCatalog()
	for _, tt := range AllTriggerTypes() {
		if _, ok := cat.Resolve(tt); !ok {
			t.Fatalf("default catalog has no template for %q", tt)
		}
	}
}

func TestResolveFirstRegisteredWins(t *testing.T) {
	first := Template{
		ID:            "symptom-a",
		Trigger:       TriggerSymptomEntry,
		Priority:      PriorityImportant,
		TitleTemplate: "first",
		ContentType:   ContentTopic,
		Style:         StyleBanner,
	}
	second := first
	second.ID = "symptom-b"
	second.TitleTemplate = "second"

	cat, err := NewCatalog(first, second)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	got, ok := cat.Resolve(TriggerSymptomEntry)
	if !ok || got.ID != "symptom-a" {
		t.Fatalf("Resolve picked %q, want first-registered symptom-a", got.ID)
	}
}

func TestCatalogValidation(t *testing.T) {
	valid := Template{
		ID:            "ok",
		Trigger:       TriggerSymptomEntry,
		Priority:      PriorityImportant,
		TitleTemplate: "t",
		ContentType:   ContentTopic,
		Style:         StyleBanner,
	}

	cases := []struct {
		name    string
		mutate  func(Template) Template
		wantErr string
	}{
		{
			name:    "missing_id",
			mutate:  func(t Template) Template { t.ID = ""; return t },
			wantErr: "id required",
		},
		{
			name:    "unknown_trigger",
			mutate:  func(t Template) Template { t.Trigger = "mood-swing"; return t },
			wantErr: "unknown trigger type",
		},
		{
			name:    "unknown_priority",
			mutate:  func(t Template) Template { t.Priority = "critical"; return t },
			wantErr: "unknown priority",
		},
		{
			name:    "unknown_style",
			mutate:  func(t Template) Template { t.Style = "popup"; return t },
			wantErr: "unknown notification style",
		},
		{
			name:    "unknown_content_type",
			mutate:  func(t Template) Template { t.ContentType = "podcast"; return t },
			wantErr: "unknown content type",
		},
		{
			name:    "missing_title",
			mutate:  func(t Template) Template { t.TitleTemplate = " "; return t },
			wantErr: "title required",
		},
		{
			name:    "negative_expiration",
			mutate:  func(t Template) Template { t.ExpirationHours = -1; return t },
			wantErr: "negative expiration",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.mutate(valid))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}

	if _, err := NewCatalog(valid, valid); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("duplicate ids should fail validation, got %v", err)
	}
}

func TestParseCatalogYAML(t *testing.T) {
	data := []byte(`
templates:
  - id: symptom-custom
    trigger: symptom-entry
    priority: urgent
    title: "Heads up about {{symptom}}"
    summary: "Short summary"
    content_type: topic
    style: modal
    expiration_hours: 6
  - id: lab-custom
    trigger: lab-view
    priority: suggested
    title: "About {{lab_name}}"
    content_type: article
    style: inline
`)
	cat, err := ParseCatalog(data)
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("catalog length=%d, want 2", cat.Len())
	}
	tpl, ok := cat.Resolve(TriggerSymptomEntry)
	if !ok {
		t.Fatalf("symptom-entry template missing after parse")
	}
	if tpl.Priority != PriorityUrgent || tpl.ExpirationHours != 6 {
		t.Fatalf("parsed template fields wrong: %+v", tpl)
	}
}

func TestParseCatalogRejectsBadAuthoring(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "empty", data: "templates: []"},
		{name: "not_yaml", data: "{{{"},
		{
			name: "bad_content_type",
			data: `
templates:
  - id: x
    trigger: symptom-entry
    priority: urgent
    title: t
    content_type: podcast
    style: modal
`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tc.data)); err == nil {
				t.Fatalf("expected load-time error")
			}
		})
	}
}
