package cueing

// DimensionStats is one row of a breakdown table.
type DimensionStats struct {
	Generated int `json:"generated"`
	Viewed    int `json:"viewed"`
	Clicked   int `json:"clicked"`
	Dismissed int `json:"dismissed"`
}

// Analytics is a rolling aggregate folded over every lifecycle event.
// It makes no decisions; the lifecycle code tells it exactly which
// counter to bump.
type Analytics struct {
	TotalGenerated int `json:"total_generated"`
	TotalViewed    int `json:"total_viewed"`
	TotalClicked   int `json:"total_clicked"`
	TotalDismissed int `json:"total_dismissed"`

	EngagementRate   float64 `json:"engagement_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
	CompletionRate   float64 `json:"completion_rate"`

	ByTrigger  map[TriggerType]*DimensionStats `json:"by_trigger"`
	ByPriority map[Priority]*DimensionStats    `json:"by_priority"`
}

func NewAnalytics() *Analytics {
	return &Analytics{
		ByTrigger:  make(map[TriggerType]*DimensionStats),
		ByPriority: make(map[Priority]*DimensionStats),
	}
}

// Snapshot deep-copies the aggregate so readers outside the store's
// control goroutine never observe a half-folded update.
func (a *Analytics) Snapshot() *Analytics {
	if a == nil {
		return NewAnalytics()
	}
	out := *a
	out.ByTrigger = make(map[TriggerType]*DimensionStats, len(a.ByTrigger))
	for k, v := range a.ByTrigger {
		row := *v
		out.ByTrigger[k] = &row
	}
	out.ByPriority = make(map[Priority]*DimensionStats, len(a.ByPriority))
	for k, v := range a.ByPriority {
		row := *v
		out.ByPriority[k] = &row
	}
	return &out
}

func (a *Analytics) row(cue *Cue) (*DimensionStats, *DimensionStats) {
	if a.ByTrigger == nil {
		a.ByTrigger = make(map[TriggerType]*DimensionStats)
	}
	if a.ByPriority == nil {
		a.ByPriority = make(map[Priority]*DimensionStats)
	}
	byTrig := a.ByTrigger[cue.Trigger.Type]
	if byTrig == nil {
		byTrig = &DimensionStats{}
		a.ByTrigger[cue.Trigger.Type] = byTrig
	}
	byPrio := a.ByPriority[cue.Priority]
	if byPrio == nil {
		byPrio = &DimensionStats{}
		a.ByPriority[cue.Priority] = byPrio
	}
	return byTrig, byPrio
}

func (a *Analytics) RecordGenerated(cue *Cue) {
	if cue == nil {
		return
	}
	a.TotalGenerated++
	byTrig, byPrio := a.row(cue)
	byTrig.Generated++
	byPrio.Generated++
	a.recompute()
}

// RecordFirstView is called once per cue, the first time it is read.
func (a *Analytics) RecordFirstView(cue *Cue) {
	if cue == nil {
		return
	}
	a.TotalViewed++
	byTrig, byPrio := a.row(cue)
	byTrig.Viewed++
	byPrio.Viewed++
	a.recompute()
}

func (a *Analytics) RecordFirstClick(cue *Cue) {
	if cue == nil {
		return
	}
	a.TotalClicked++
	byTrig, byPrio := a.row(cue)
	byTrig.Clicked++
	byPrio.Clicked++
	a.recompute()
}

func (a *Analytics) RecordFirstDismiss(cue *Cue) {
	if cue == nil {
		return
	}
	a.TotalDismissed++
	byTrig, byPrio := a.row(cue)
	byTrig.Dismissed++
	byPrio.Dismissed++
	a.recompute()
}

// recompute derives the three rates, guarded against division by zero
// and clamped into [0, 1].
func (a *Analytics) recompute() {
	if a.TotalGenerated == 0 {
		return
	}
	total := float64(a.TotalGenerated)
	a.EngagementRate = clampRate(float64(a.TotalViewed) / total)
	a.ClickThroughRate = clampRate(float64(a.TotalClicked) / total)
	a.CompletionRate = clampRate(float64(a.TotalViewed-a.TotalDismissed) / total)
}

func clampRate(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
