package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/anatomica-backend/internal/cueing"
)

func TestPrefsRoundTrip(t *testing.T) {
	p := cueing.DefaultPreferences()
	p.GlobalFrequency = cueing.FrequencyOften
	p.FrequencyByTrigger = map[cueing.TriggerType]cueing.Frequency{
		cueing.TriggerIdlePrompt: cueing.FrequencyNever,
	}
	p.FrequencyByPriority = map[cueing.Priority]cueing.Frequency{
		cueing.PriorityNiceToKnow: cueing.FrequencyRarely,
	}
	p.QuietHours = cueing.QuietHours{
		Enabled:     true,
		Start:       "21:30",
		End:         "06:45",
		Days:        []time.Weekday{time.Saturday, time.Sunday},
		AllowUrgent: true,
	}
	p.MaxCuesPerDay = 4
	p.MaxCuesPerSession = 2
	p.EnableSounds = true

	userID := uuid.New()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	row := prefsToModel(userID, p, now)
	if row.UserID != userID {
		t.Fatalf("UserID = %s, want %s", row.UserID, userID)
	}
	got := prefsFromModel(row)

	if got.GlobalFrequency != p.GlobalFrequency {
		t.Errorf("GlobalFrequency = %q, want %q", got.GlobalFrequency, p.GlobalFrequency)
	}
	if got.FrequencyByTrigger[cueing.TriggerIdlePrompt] != cueing.FrequencyNever {
		t.Errorf("FrequencyByTrigger lost: %v", got.FrequencyByTrigger)
	}
	if got.FrequencyByPriority[cueing.PriorityNiceToKnow] != cueing.FrequencyRarely {
		t.Errorf("FrequencyByPriority lost: %v", got.FrequencyByPriority)
	}
	if !got.QuietHours.Enabled || got.QuietHours.Start != "21:30" || got.QuietHours.End != "06:45" {
		t.Errorf("QuietHours = %+v, want %+v", got.QuietHours, p.QuietHours)
	}
	if len(got.QuietHours.Days) != 2 || got.QuietHours.Days[0] != time.Saturday {
		t.Errorf("QuietHours.Days = %v", got.QuietHours.Days)
	}
	if !got.QuietHours.AllowUrgent {
		t.Error("QuietHours.AllowUrgent lost")
	}
	if got.MaxCuesPerDay != 4 || got.MaxCuesPerSession != 2 {
		t.Errorf("caps = %d/%d, want 4/2", got.MaxCuesPerDay, got.MaxCuesPerSession)
	}
	if !got.EnableSounds {
		t.Error("EnableSounds lost")
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("round-tripped preferences invalid: %v", err)
	}
}

func TestPrefsFromModelNilDefaults(t *testing.T) {
	got := prefsFromModel(nil)
	want := cueing.DefaultPreferences()
	if got.GlobalFrequency != want.GlobalFrequency {
		t.Errorf("GlobalFrequency = %q, want default %q", got.GlobalFrequency, want.GlobalFrequency)
	}
	if got.MaxCuesPerSession != want.MaxCuesPerSession {
		t.Errorf("MaxCuesPerSession = %d, want default %d", got.MaxCuesPerSession, want.MaxCuesPerSession)
	}
}

func TestAnalyticsRoundTrip(t *testing.T) {
	a := cueing.NewAnalytics()
	a.TotalGenerated = 10
	a.TotalViewed = 4
	a.TotalClicked = 2
	a.TotalDismissed = 1
	a.EngagementRate = 0.4
	a.ClickThroughRate = 0.2
	a.CompletionRate = 0.3
	a.ByTrigger = map[cueing.TriggerType]*cueing.DimensionStats{
		cueing.TriggerSymptomEntry: {Generated: 6, Viewed: 3, Clicked: 2, Dismissed: 1},
	}
	a.ByPriority = map[cueing.Priority]*cueing.DimensionStats{
		cueing.PriorityImportant: {Generated: 10, Viewed: 4, Clicked: 2, Dismissed: 1},
	}

	userID := uuid.New()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	got := analyticsFromModel(analyticsToModel(userID, a, now))

	if got.TotalGenerated != 10 || got.TotalViewed != 4 || got.TotalClicked != 2 || got.TotalDismissed != 1 {
		t.Fatalf("totals = %d/%d/%d/%d", got.TotalGenerated, got.TotalViewed, got.TotalClicked, got.TotalDismissed)
	}
	if got.EngagementRate != 0.4 || got.ClickThroughRate != 0.2 || got.CompletionRate != 0.3 {
		t.Fatalf("rates = %v/%v/%v", got.EngagementRate, got.ClickThroughRate, got.CompletionRate)
	}
	stats := got.ByTrigger[cueing.TriggerSymptomEntry]
	if stats == nil || stats.Generated != 6 || stats.Clicked != 2 {
		t.Fatalf("ByTrigger[symptom-entry] = %+v", stats)
	}
	if got.ByPriority[cueing.PriorityImportant] == nil {
		t.Fatal("ByPriority[important] lost")
	}
}

func TestAnalyticsFromModelNil(t *testing.T) {
	got := analyticsFromModel(nil)
	if got == nil {
		t.Fatal("expected fresh analytics, got nil")
	}
	if got.TotalGenerated != 0 {
		t.Fatalf("TotalGenerated = %d, want 0", got.TotalGenerated)
	}
}

func TestCueToRecord(t *testing.T) {
	tpl, ok := cueing.DefaultCatalog().Resolve(cueing.TriggerSymptomEntry)
	if !ok {
		t.Fatal("no default template for symptom-entry")
	}
	t0 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	trig := cueing.NewSymptomTrigger("sym-1", "headache", map[string]string{"symptom": "headache"}, cueing.Context{}, t0)
	cue := cueing.Render(tpl, trig, map[string]string{"symptom": "headache"}, cueing.TargetContent{ContentID: "topic-headache-types"}, t0)
	cue.Status = cueing.ApplyAction(cue.Status, cueing.ActionDismissed, t0.Add(time.Minute), 0)

	userID := uuid.New()
	rec := cueToRecord(userID, cue, t0.Add(2*time.Minute))

	if rec.ID != cue.ID {
		t.Errorf("ID = %s, want %s", rec.ID, cue.ID)
	}
	if rec.TriggerType != "symptom-entry" {
		t.Errorf("TriggerType = %q", rec.TriggerType)
	}
	if rec.FinalStatus != "dismissed" {
		t.Errorf("FinalStatus = %q, want dismissed", rec.FinalStatus)
	}
	if !rec.CuedAt.Equal(t0) {
		t.Errorf("CuedAt = %v, want %v", rec.CuedAt, t0)
	}
	if len(rec.Trigger) == 0 {
		t.Error("trigger snapshot not serialized")
	}
}
