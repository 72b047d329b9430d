package cueing

import "time"

// ShouldShow is the whole visibility policy, evaluated in a fixed
// order with a short-circuit on the first failing rule:
//
//  1. session cap
//  2. per-priority "never" veto
//  3. per-trigger-type "never" veto
//  4. quiet hours (urgent may bypass)
//
// Frequency levels above "never" are deliberately not enforced here;
// the caps plus the veto are the entire deterministic rate limit, which
// keeps the gate trivially testable. GlobalFrequency is carried in the
// preferences but never consulted by the gate.
func ShouldShow(cue *Cue, prefs Preferences, sessionCount int, clock Clock) bool {
	if cue == nil {
		return false
	}
	if sessionCount >= prefs.MaxCuesPerSession {
		return false
	}
	if prefs.FrequencyByPriority[cue.Priority] == FrequencyNever {
		return false
	}
	if prefs.FrequencyByTrigger[cue.Trigger.Type] == FrequencyNever {
		return false
	}
	if prefs.QuietHours.Enabled && quietHoursActive(prefs.QuietHours, clock) {
		if !prefs.QuietHours.AllowUrgent || cue.Priority != PriorityUrgent {
			return false
		}
	}
	return true
}

// quietHoursActive compares the current HH:MM against the window using
// cur >= start || cur < end, which models a window that wraps past
// midnight (22:00-07:00 is active at 23:30 and at 03:00). The optional
// Days list scopes the window to the weekday it STARTS on: past
// midnight the applicable day is yesterday, so a Monday 22:00-07:00
// window still suppresses at 03:00 Tuesday.
func quietHoursActive(q QuietHours, clock Clock) bool {
	now := clock.Now()
	cur := now.Format("15:04")
	switch {
	case cur >= q.Start:
		return len(q.Days) == 0 || weekdayIn(q.Days, now.Weekday())
	case cur < q.End:
		return len(q.Days) == 0 || weekdayIn(q.Days, (now.Weekday()+6)%7)
	default:
		return false
	}
}

func weekdayIn(days []time.Weekday, d time.Weekday) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}
