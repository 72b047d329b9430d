package cueing

import (
	"testing"
)

func ratesInRange(a *Analytics) bool {
	for _, r := range []float64{a.EngagementRate, a.ClickThroughRate, a.CompletionRate} {
		if r < 0 || r > 1 {
			return false
		}
	}
	return true
}

func TestAnalyticsFold(t *testing.T) {
	clk := clockAt("2026-03-02T10:00:00Z")
	prefs := DefaultPreferences()
	prefs.MaxCuesPerSession = 100
	prefs.MaxCuesPerDay = 100
	store := NewStore(DefaultCatalog(), prefs, NewAnalytics(), clk, nil)

	var cues []*Cue
	for i := 0; i < 5; i++ {
		cue, accepted := fireSymptom(t, store, clk)
		if !accepted {
			t.Fatalf("cue %d not accepted", i)
		}
		cues = append(cues, cue)
	}

	store.Apply(cues[0].ID, ActionInput{Action: ActionViewed, DurationMs: 1000})
	store.Apply(cues[0].ID, ActionInput{Action: ActionClicked})
	store.Apply(cues[1].ID, ActionInput{Action: ActionViewed})
	store.Apply(cues[2].ID, ActionInput{Action: ActionDismissed})

	a := store.Analytics()
	if a.TotalGenerated != 5 {
		t.Fatalf("generated=%d, want 5", a.TotalGenerated)
	}
	if a.TotalViewed != 2 {
		t.Fatalf("viewed=%d, want 2", a.TotalViewed)
	}
	if a.TotalClicked != 1 {
		t.Fatalf("clicked=%d, want 1", a.TotalClicked)
	}
	if a.TotalDismissed != 1 {
		t.Fatalf("dismissed=%d, want 1", a.TotalDismissed)
	}
	if a.EngagementRate != 0.4 {
		t.Fatalf("engagement rate=%v, want 0.4", a.EngagementRate)
	}
	if a.ClickThroughRate != 0.2 {
		t.Fatalf("click-through rate=%v, want 0.2", a.ClickThroughRate)
	}
	if a.CompletionRate != 0.2 {
		t.Fatalf("completion rate=%v, want 0.2", a.CompletionRate)
	}
	if !ratesInRange(a) {
		t.Fatalf("rates out of [0,1]: %+v", a)
	}

	byTrig := a.ByTrigger[TriggerSymptomEntry]
	if byTrig == nil || byTrig.Generated != 5 || byTrig.Viewed != 2 || byTrig.Clicked != 1 || byTrig.Dismissed != 1 {
		t.Fatalf("trigger breakdown wrong: %+v", byTrig)
	}
	byPrio := a.ByPriority[PriorityImportant]
	if byPrio == nil || byPrio.Generated != 5 {
		t.Fatalf("priority breakdown wrong: %+v", byPrio)
	}
}

func TestAnalyticsRepeatedViewsCountOnce(t *testing.T) {
	clk := clockAt("2026-03-02T10:00:00Z")
	store := newTestStore(t, clk)
	cue, _ := fireSymptom(t, store, clk)

	store.Apply(cue.ID, ActionInput{Action: ActionViewed, DurationMs: 1000})
	store.Apply(cue.ID, ActionInput{Action: ActionViewed, DurationMs: 2000})
	store.Apply(cue.ID, ActionInput{Action: ActionClicked})
	store.Apply(cue.ID, ActionInput{Action: ActionClicked})

	a := store.Analytics()
	if a.TotalViewed != 1 {
		t.Fatalf("repeat views inflated the counter: %d", a.TotalViewed)
	}
	if a.TotalClicked != 1 {
		t.Fatalf("repeat clicks inflated the counter: %d", a.TotalClicked)
	}
	if cue.Engagement.TotalViewTimeMs != 3000 {
		t.Fatalf("view time should accumulate across views: %d", cue.Engagement.TotalViewTimeMs)
	}
}

func TestAnalyticsDismissHeavySequenceStaysInRange(t *testing.T) {
	clk := clockAt("2026-03-02T10:00:00Z")
	prefs := DefaultPreferences()
	prefs.MaxCuesPerSession = 100
	prefs.MaxCuesPerDay = 100
	store := NewStore(DefaultCatalog(), prefs, NewAnalytics(), clk, nil)

	// Dismissals without views would push (viewed-dismissed)/generated
	// negative; the completion rate must clamp at 0.
	for i := 0; i < 3; i++ {
		cue, _ := fireSymptom(t, store, clk)
		store.Apply(cue.ID, ActionInput{Action: ActionDismissed})
	}
	a := store.Analytics()
	if a.CompletionRate != 0 {
		t.Fatalf("completion rate=%v, want clamp to 0", a.CompletionRate)
	}
	if !ratesInRange(a) {
		t.Fatalf("rates out of [0,1]: %+v", a)
	}
}

func TestAnalyticsZeroGeneratedGuard(t *testing.T) {
	a := NewAnalytics()
	a.recompute()
	if a.EngagementRate != 0 || a.ClickThroughRate != 0 || a.CompletionRate != 0 {
		t.Fatalf("rates should stay 0 with nothing generated: %+v", a)
	}
}
