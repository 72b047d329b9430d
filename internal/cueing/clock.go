package cueing

import "time"

// Clock is injected everywhere the engine compares wall-clock time
// (quiet hours, expiration, snooze wake). Nothing in the engine runs on
// a timer; time-based transitions happen lazily when a sweep or gate
// evaluation asks for the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func RealClock() Clock { return realClock{} }
