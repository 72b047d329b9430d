package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/anatomica-backend/internal/cueing"
	"github.com/yungbote/anatomica-backend/internal/logger"
	"github.com/yungbote/anatomica-backend/internal/requestdata"
	"github.com/yungbote/anatomica-backend/internal/sse"
	"github.com/yungbote/anatomica-backend/internal/types"
)

type stubPrefsRepo struct{}

func (stubPrefsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CuePreferences, error) {
	return nil, nil
}

func (stubPrefsRepo) Upsert(ctx context.Context, tx *gorm.DB, prefs *types.CuePreferences) (*types.CuePreferences, error) {
	return prefs, nil
}

type stubAnalyticsRepo struct{}

func (stubAnalyticsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CueAnalytics, error) {
	return nil, nil
}

func (stubAnalyticsRepo) Upsert(ctx context.Context, tx *gorm.DB, analytics *types.CueAnalytics) (*types.CueAnalytics, error) {
	return analytics, nil
}

type stubRecordRepo struct{}

func (stubRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.CueRecord) ([]*types.CueRecord, error) {
	return records, nil
}

func (stubRecordRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CueRecord, error) {
	return nil, nil
}

func (stubRecordRepo) CountByUserAndTriggerType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, triggerType string) (int64, error) {
	return 0, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newSessionFixture(t *testing.T) (CueSessionService, context.Context) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	hub := sse.NewSSEHub(log)
	clock := fixedClock{at: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	svc := NewCueSessionService(nil, log, stubPrefsRepo{}, stubAnalyticsRepo{}, stubRecordRepo{}, hub, nil, cueing.DefaultCatalog(), clock)

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: uuid.New()})
	if err := svc.StartSession(ctx, cueing.Context{CurrentView: "dashboard"}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	return svc, ctx
}

func ingestSymptomCue(t *testing.T, svc CueSessionService, ctx context.Context) *cueing.Cue {
	t.Helper()
	cue, accepted, err := svc.IngestTrigger(ctx, TriggerInput{
		Type:     cueing.TriggerSymptomEntry,
		SourceID: "sym-1",
		Details:  map[string]string{"symptom": "headache"},
	})
	if err != nil {
		t.Fatalf("IngestTrigger: %v", err)
	}
	if !accepted {
		t.Fatal("expected cue to be accepted under default preferences")
	}
	return cue
}

// Cues handed out of the service are detached copies: a later lifecycle
// transition must not show through a previously returned cue.
func TestReturnedCuesDetachedFromSession(t *testing.T) {
	svc, ctx := newSessionFixture(t)
	offered := ingestSymptomCue(t, svc, ctx)

	ready, err := svc.Ready(ctx)
	if err != nil {
		t.Fatalf("Ready: %v", err)
	}
	if len(ready) != 1 {
		t.Fatalf("ready count = %d, want 1", len(ready))
	}
	snapshot := ready[0]
	if snapshot.Status.Kind != cueing.StatusActive {
		t.Fatalf("snapshot status = %q, want active", snapshot.Status.Kind)
	}

	if _, err := svc.Action(ctx, offered.ID, cueing.ActionInput{Action: cueing.ActionDismissed}); err != nil {
		t.Fatalf("Action: %v", err)
	}

	if snapshot.Status.Kind != cueing.StatusActive {
		t.Errorf("earlier snapshot mutated to %q after dismiss", snapshot.Status.Kind)
	}
	if offered.Status.Kind != cueing.StatusActive {
		t.Errorf("offered cue mutated to %q after dismiss", offered.Status.Kind)
	}
	if snapshot.Engagement != nil {
		t.Errorf("earlier snapshot grew an engagement log: %+v", snapshot.Engagement)
	}
}

// One writer applying actions and one reader marshaling Ready results
// must not touch the same cue memory. Run with -race.
func TestConcurrentActionsAndReads(t *testing.T) {
	svc, ctx := newSessionFixture(t)
	cue := ingestSymptomCue(t, svc, ctx)

	const iterations = 300
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			if _, err := svc.Action(ctx, cue.ID, cueing.ActionInput{Action: cueing.ActionViewed, DurationMs: 5}); err != nil {
				t.Errorf("Action: %v", err)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			ready, err := svc.Ready(ctx)
			if err != nil {
				t.Errorf("Ready: %v", err)
				return
			}
			if _, err := json.Marshal(ready); err != nil {
				t.Errorf("marshal ready cues: %v", err)
				return
			}
			if _, err := svc.GetAnalytics(ctx); err != nil {
				t.Errorf("GetAnalytics: %v", err)
				return
			}
		}
	}()

	wg.Wait()

	final, err := svc.Action(ctx, cue.ID, cueing.ActionInput{Action: cueing.ActionViewed})
	if err != nil {
		t.Fatalf("final Action: %v", err)
	}
	if final == nil || !final.Status.Read {
		t.Fatal("cue not marked read after repeated views")
	}
}
