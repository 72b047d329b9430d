package cueing

import (
	"testing"
	"time"
)

func gateCue(priority Priority, trigType TriggerType) *Cue {
	return &Cue{
		Priority: priority,
		Trigger:  Trigger{Type: trigType},
		Status:   NewStatus(),
	}
}

func TestShouldShowSessionCap(t *testing.T) {
	clk := clockAt("2026-03-02T12:00:00Z")
	prefs := DefaultPreferences()
	prefs.MaxCuesPerSession = 3
	cue := gateCue(PriorityUrgent, TriggerSymptomEntry)

	for count := 0; count < 3; count++ {
		if !ShouldShow(cue, prefs, count, clk) {
			t.Fatalf("count=%d below cap should show", count)
		}
	}
	// The cap is independent of priority and trigger settings.
	for count := 3; count < 10; count++ {
		if ShouldShow(cue, prefs, count, clk) {
			t.Fatalf("count=%d at/over cap should suppress", count)
		}
	}
}

func TestShouldShowNeverVetoes(t *testing.T) {
	clk := clockAt("2026-03-02T12:00:00Z")

	cases := []struct {
		name  string
		prefs func() Preferences
		cue   *Cue
		want  bool
	}{
		{
			name: "priority_never_vetoes_urgent",
			prefs: func() Preferences {
				p := DefaultPreferences()
				p.FrequencyByPriority[PriorityUrgent] = FrequencyNever
				return p
			},
			cue:  gateCue(PriorityUrgent, TriggerSymptomEntry),
			want: false,
		},
		{
			name: "trigger_never_vetoes",
			prefs: func() Preferences {
				p := DefaultPreferences()
				p.FrequencyByTrigger[TriggerLabView] = FrequencyNever
				return p
			},
			cue:  gateCue(PrioritySuggested, TriggerLabView),
			want: false,
		},
		{
			name: "rarely_is_not_a_veto",
			prefs: func() Preferences {
				p := DefaultPreferences()
				p.FrequencyByPriority[PrioritySuggested] = FrequencyRarely
				p.FrequencyByTrigger[TriggerLabView] = FrequencySometimes
				return p
			},
			cue:  gateCue(PrioritySuggested, TriggerLabView),
			want: true,
		},
		{
			name: "never_precedes_quiet_hours_bypass",
			prefs: func() Preferences {
				p := DefaultPreferences()
				p.FrequencyByPriority[PriorityUrgent] = FrequencyNever
				p.QuietHours.Enabled = true
				p.QuietHours.AllowUrgent = true
				return p
			},
			cue:  gateCue(PriorityUrgent, TriggerBiomarkerChange),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ShouldShow(tc.cue, tc.prefs(), 0, clk)
			if got != tc.want {
				t.Fatalf("ShouldShow=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestShouldShowQuietHours(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.QuietHours = QuietHours{
		Enabled:     true,
		Start:       "22:00",
		End:         "07:00",
		AllowUrgent: true,
	}

	cases := []struct {
		name     string
		at       string
		priority Priority
		want     bool
	}{
		{name: "urgent_bypasses_at_2330", at: "2026-03-02T23:30:00Z", priority: PriorityUrgent, want: true},
		{name: "suggested_suppressed_at_2330", at: "2026-03-02T23:30:00Z", priority: PrioritySuggested, want: false},
		{name: "suggested_suppressed_at_0300", at: "2026-03-03T03:00:00Z", priority: PrioritySuggested, want: false},
		{name: "suggested_shows_at_noon", at: "2026-03-02T12:00:00Z", priority: PrioritySuggested, want: true},
		{name: "boundary_start_is_quiet", at: "2026-03-02T22:00:00Z", priority: PriorityImportant, want: false},
		{name: "boundary_end_is_not_quiet", at: "2026-03-03T07:00:00Z", priority: PriorityImportant, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clk := clockAt(tc.at)
			cue := gateCue(tc.priority, TriggerSymptomEntry)
			got := ShouldShow(cue, prefs, 0, clk)
			if got != tc.want {
				t.Fatalf("ShouldShow at %s priority %s = %v, want %v", tc.at, tc.priority, got, tc.want)
			}
		})
	}
}

func TestShouldShowQuietHoursNoUrgentBypass(t *testing.T) {
	clk := clockAt("2026-03-02T23:30:00Z")
	prefs := DefaultPreferences()
	prefs.QuietHours = QuietHours{Enabled: true, Start: "22:00", End: "07:00", AllowUrgent: false}

	if ShouldShow(gateCue(PriorityUrgent, TriggerBiomarkerChange), prefs, 0, clk) {
		t.Fatalf("urgent cue should be suppressed when allow_urgent is false")
	}
}

func TestShouldShowQuietHoursDays(t *testing.T) {
	// 2026-03-02 is a Monday.
	clk := clockAt("2026-03-02T23:30:00Z")
	prefs := DefaultPreferences()
	prefs.QuietHours = QuietHours{
		Enabled: true,
		Start:   "22:00",
		End:     "07:00",
		Days:    []time.Weekday{time.Saturday, time.Sunday},
	}

	if !ShouldShow(gateCue(PrioritySuggested, TriggerSymptomEntry), prefs, 0, clk) {
		t.Fatalf("weekend-only quiet hours should not apply on a Monday")
	}

	prefs.QuietHours.Days = []time.Weekday{time.Monday}
	if ShouldShow(gateCue(PrioritySuggested, TriggerSymptomEntry), prefs, 0, clk) {
		t.Fatalf("quiet hours scoped to Monday should apply on a Monday night")
	}
}

func TestShouldShowQuietHoursDaysOvernight(t *testing.T) {
	// A window scoped to its start day keeps suppressing past midnight:
	// Monday 22:00-07:00 covers 03:00 Tuesday but not 03:00 Wednesday.
	prefs := DefaultPreferences()
	prefs.QuietHours = QuietHours{
		Enabled: true,
		Start:   "22:00",
		End:     "07:00",
		Days:    []time.Weekday{time.Monday},
	}

	cases := []struct {
		name string
		at   string
		want bool
	}{
		// 2026-03-02 is a Monday.
		{name: "monday_night_quiet", at: "2026-03-02T23:30:00Z", want: false},
		{name: "tuesday_early_morning_still_quiet", at: "2026-03-03T03:00:00Z", want: false},
		{name: "tuesday_night_not_quiet", at: "2026-03-03T23:30:00Z", want: true},
		{name: "wednesday_early_morning_not_quiet", at: "2026-03-04T03:00:00Z", want: true},
		{name: "monday_noon_not_quiet", at: "2026-03-02T12:00:00Z", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clk := clockAt(tc.at)
			got := ShouldShow(gateCue(PrioritySuggested, TriggerSymptomEntry), prefs, 0, clk)
			if got != tc.want {
				t.Fatalf("ShouldShow at %s = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}
