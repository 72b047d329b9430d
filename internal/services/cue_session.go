package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/anatomica-backend/internal/clients/redis"
	"github.com/yungbote/anatomica-backend/internal/cueing"
	"github.com/yungbote/anatomica-backend/internal/logger"
	"github.com/yungbote/anatomica-backend/internal/repos"
	"github.com/yungbote/anatomica-backend/internal/requestdata"
	"github.com/yungbote/anatomica-backend/internal/sse"
	"github.com/yungbote/anatomica-backend/internal/types"
)

// TriggerInput is the wire shape for an inbound trigger event. The
// service turns it into a typed engine trigger; unknown types are
// rejected before they reach the engine.
type TriggerInput struct {
	Type       cueing.TriggerType   `json:"type"`
	SourceID   string               `json:"source_id"`
	SourceName string               `json:"source_name"`
	Details    map[string]string    `json:"details,omitempty"`
	Variables  map[string]string    `json:"variables,omitempty"`
	Target     cueing.TargetContent `json:"target"`
	Context    cueing.Context       `json:"context"`
	AtHour     *int                 `json:"at_hour,omitempty"`
}

// CueSessionService owns one live cue store per signed-in user. The
// store expects a single control goroutine; the service's mutex is
// what provides that single control thread across concurrent HTTP
// requests. Session state is memory-only until EndSession persists
// preferences, analytics and the retired-cue history.
type CueSessionService interface {
	StartSession(ctx context.Context, initial cueing.Context) error
	EndSession(ctx context.Context) error
	IngestTrigger(ctx context.Context, in TriggerInput) (*cueing.Cue, bool, error)
	Ready(ctx context.Context) ([]*cueing.Cue, error)
	Action(ctx context.Context, cueID uuid.UUID, in cueing.ActionInput) (*cueing.Cue, error)
	GetPreferences(ctx context.Context) (cueing.Preferences, error)
	UpdatePreferences(ctx context.Context, p cueing.Preferences) error
	GetAnalytics(ctx context.Context) (*cueing.Analytics, error)
	LastContext(ctx context.Context) (cueing.Context, bool)
}

type cueSessionService struct {
	db            *gorm.DB
	log           *logger.Logger
	prefsRepo     repos.CuePreferencesRepo
	analyticsRepo repos.CueAnalyticsRepo
	recordRepo    repos.CueRecordRepo
	hub           *sse.SSEHub
	bus           redis.CueBus
	catalog       *cueing.Catalog
	clock         cueing.Clock

	mu       sync.Mutex
	sessions map[uuid.UUID]*cueing.Store
}

func NewCueSessionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	prefsRepo repos.CuePreferencesRepo,
	analyticsRepo repos.CueAnalyticsRepo,
	recordRepo repos.CueRecordRepo,
	hub *sse.SSEHub,
	bus redis.CueBus,
	catalog *cueing.Catalog,
	clock cueing.Clock,
) CueSessionService {
	if clock == nil {
		clock = cueing.RealClock()
	}
	return &cueSessionService{
		db:            db,
		log:           baseLog.With("service", "CueSessionService"),
		prefsRepo:     prefsRepo,
		analyticsRepo: analyticsRepo,
		recordRepo:    recordRepo,
		hub:           hub,
		bus:           bus,
		catalog:       catalog,
		clock:         clock,
		sessions:      make(map[uuid.UUID]*cueing.Store),
	}
}

func (s *cueSessionService) userID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("not authenticated")
	}
	return rd.UserID, nil
}

func (s *cueSessionService) session(userID uuid.UUID) (*cueing.Store, error) {
	store, ok := s.sessions[userID]
	if !ok {
		return nil, fmt.Errorf("no active cue session")
	}
	return store, nil
}

// StartSession builds a fresh in-memory store seeded from the user's
// persisted preferences and lifetime analytics. Starting twice is a
// no-op; the existing session keeps its counters.
func (s *cueSessionService) StartSession(ctx context.Context, initial cueing.Context) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[userID]; ok {
		return nil
	}

	prefsRow, err := s.prefsRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("load cue preferences: %w", err)
	}
	analyticsRow, err := s.analyticsRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("load cue analytics: %w", err)
	}

	store := cueing.NewStore(s.catalog, prefsFromModel(prefsRow), analyticsFromModel(analyticsRow), s.clock, s.log)
	s.sessions[userID] = store
	s.log.Info("Cue session started", "user_id", userID, "initial_view", initial.CurrentView)
	return nil
}

// EndSession persists what the session accumulated and drops the
// store. Preferences and analytics are upserted; every retired cue
// becomes a history row. Active non-terminal cues are simply dropped,
// matching the session-scoped lifetime of the store.
func (s *cueSessionService) EndSession(ctx context.Context) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	store, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}

	now := s.clock.Now()
	history := store.History()
	records := make([]*types.CueRecord, 0, len(history))
	for _, cue := range history {
		records = append(records, cueToRecord(userID, cue, now))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.prefsRepo.Upsert(ctx, tx, prefsToModel(userID, store.Preferences(), now)); err != nil {
			return fmt.Errorf("persist cue preferences: %w", err)
		}
		if _, err := s.analyticsRepo.Upsert(ctx, tx, analyticsToModel(userID, store.Analytics(), now)); err != nil {
			return fmt.Errorf("persist cue analytics: %w", err)
		}
		if len(records) > 0 {
			if _, err := s.recordRepo.Create(ctx, tx, records); err != nil {
				return fmt.Errorf("archive cue history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Cue session persistence failed", "user_id", userID, "error", err)
		return err
	}
	s.log.Info("Cue session ended", "user_id", userID, "archived", len(records))
	return nil
}

// IngestTrigger builds a typed trigger from the wire input and runs it
// through the session store. Accepted cues are pushed to the user's
// SSE channel and onto the cross-instance bus.
func (s *cueSessionService) IngestTrigger(ctx context.Context, in TriggerInput) (*cueing.Cue, bool, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, false, err
	}
	if !in.Type.Valid() {
		return nil, false, fmt.Errorf("unknown trigger type %q", in.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	store, err := s.session(userID)
	if err != nil {
		return nil, false, err
	}

	now := s.clock.Now()
	trigCtx := in.Context
	if trigCtx.TimeOfDay == "" {
		hour := now.Hour()
		if in.AtHour != nil {
			hour = *in.AtHour
		}
		trigCtx.TimeOfDay = cueing.BucketForHour(hour)
		trigCtx.DayOfWeek = now.Weekday()
	}

	var trig cueing.Trigger
	switch in.Type {
	case cueing.TriggerSymptomEntry:
		trig = cueing.NewSymptomTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	case cueing.TriggerLabView:
		trig = cueing.NewLabViewTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	case cueing.TriggerBiomarkerChange:
		trig = cueing.NewBiomarkerChangeTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	case cueing.TriggerMedicationReminder:
		trig = cueing.NewMedicationReminderTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	case cueing.TriggerTimeBased:
		trig = cueing.NewTimeBasedTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	case cueing.TriggerLearningMilestone:
		trig = cueing.NewLearningMilestoneTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	case cueing.TriggerHealthAnniversary:
		trig = cueing.NewHealthAnniversaryTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	case cueing.TriggerStructureClick:
		trig = cueing.NewStructureClickTrigger(in.SourceID, in.Details, trigCtx, now)
	case cueing.TriggerSearchQuery:
		trig = cueing.NewSearchQueryTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	case cueing.TriggerIdlePrompt:
		trig = cueing.NewIdlePromptTrigger(in.SourceID, in.SourceName, in.Details, trigCtx, now)
	}

	vars := mergeVars(in.Variables, in.Details)
	if in.Type == cueing.TriggerStructureClick {
		if _, ok := vars["structure"]; !ok {
			if vars == nil {
				vars = map[string]string{}
			}
			vars["structure"] = cueing.StructureName(in.SourceID)
		}
	}

	cue, accepted := store.HandleTrigger(trig, vars, in.Target)
	// Clone before anything escapes the lock: the store keeps mutating
	// the original on later lifecycle calls.
	cue = cue.Clone()
	if accepted {
		msg := sse.SSEMessage{
			Channel: sse.CueChannel(userID),
			Event:   sse.SSEEventCueOffered,
			Data:    cue,
		}
		s.hub.Broadcast(msg)
		if s.bus != nil {
			if err := s.bus.Publish(ctx, msg); err != nil {
				s.log.Warn("Cue bus publish failed", "user_id", userID, "error", err)
			}
		}
	}
	return cue, accepted, nil
}

// mergeVars layers explicit interpolation variables over the trigger
// details, so "{{symptom}}" resolves from either without the caller
// sending the same value twice.
func mergeVars(vars, details map[string]string) map[string]string {
	if len(details) == 0 {
		return vars
	}
	merged := make(map[string]string, len(vars)+len(details))
	for k, v := range details {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}
	return merged
}

func (s *cueSessionService) Ready(ctx context.Context) ([]*cueing.Cue, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	store, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	return cueing.CloneCues(store.ReadyToShow()), nil
}

func (s *cueSessionService) Action(ctx context.Context, cueID uuid.UUID, in cueing.ActionInput) (*cueing.Cue, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	store, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	cue := store.Apply(cueID, in).Clone()
	if cue != nil && cue.Status.IsTerminal() {
		s.hub.Broadcast(sse.SSEMessage{
			Channel: sse.CueChannel(userID),
			Event:   sse.SSEEventCueRetired,
			Data:    map[string]any{"cue_id": cue.ID, "status": cue.Status.Kind},
		})
	}
	return cue, nil
}

// GetPreferences prefers the live session copy; without a session it
// falls back to the persisted row (or defaults).
func (s *cueSessionService) GetPreferences(ctx context.Context) (cueing.Preferences, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return cueing.Preferences{}, err
	}
	s.mu.Lock()
	store, ok := s.sessions[userID]
	if ok {
		prefs := store.Preferences()
		s.mu.Unlock()
		return prefs, nil
	}
	s.mu.Unlock()
	row, err := s.prefsRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return cueing.Preferences{}, fmt.Errorf("load cue preferences: %w", err)
	}
	return prefsFromModel(row), nil
}

// UpdatePreferences validates, updates the live session if one exists,
// and persists immediately so a crash between sessions loses nothing.
func (s *cueSessionService) UpdatePreferences(ctx context.Context, p cueing.Preferences) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if store, ok := s.sessions[userID]; ok {
		if err := store.SetPreferences(p); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.mu.Unlock()

	if _, err := s.prefsRepo.Upsert(ctx, nil, prefsToModel(userID, p, s.clock.Now())); err != nil {
		return fmt.Errorf("persist cue preferences: %w", err)
	}
	return nil
}

func (s *cueSessionService) GetAnalytics(ctx context.Context) (*cueing.Analytics, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	store, ok := s.sessions[userID]
	if ok {
		snap := store.Analytics().Snapshot()
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()
	row, err := s.analyticsRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load cue analytics: %w", err)
	}
	return analyticsFromModel(row), nil
}

// LastContext exposes the most recent trigger context of the live
// session, if any. The digest builder uses it as its input snapshot.
func (s *cueSessionService) LastContext(ctx context.Context) (cueing.Context, bool) {
	userID, err := s.userID(ctx)
	if err != nil {
		return cueing.Context{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.sessions[userID]
	if !ok {
		return cueing.Context{}, false
	}
	return store.LastContext(), true
}
