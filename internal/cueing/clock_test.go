package cueing

import "time"

// fakeClock is shared by the package tests; advance it by mutating t.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func clockAt(layout string) *fakeClock {
	t, err := time.Parse(time.RFC3339, layout)
	if err != nil {
		panic(err)
	}
	return &fakeClock{t: t.UTC()}
}
