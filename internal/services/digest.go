package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/anatomica-backend/internal/cueing"
	"github.com/yungbote/anatomica-backend/internal/logger"
	"github.com/yungbote/anatomica-backend/internal/repos"
	"github.com/yungbote/anatomica-backend/internal/requestdata"
	"github.com/yungbote/anatomica-backend/internal/sse"
)

// DigestResponse packs the digest with a short history summary so the
// UI can show "3 cues this week about the heart" style context without
// a second round trip.
type DigestResponse struct {
	Digest         cueing.Digest              `json:"digest"`
	RecentCues     []RecentCueSummary         `json:"recent_cues,omitempty"`
	CuesByTrigger  map[cueing.TriggerType]int `json:"cues_by_trigger,omitempty"`
	SessionContext *cueing.Context            `json:"session_context,omitempty"`
}

type RecentCueSummary struct {
	Title       string `json:"title"`
	TriggerType string `json:"trigger_type"`
	FinalStatus string `json:"final_status"`
}

type DigestService interface {
	GetDigest(ctx context.Context, maxItems int) (*DigestResponse, error)
}

type digestService struct {
	db         *gorm.DB
	log        *logger.Logger
	recordRepo repos.CueRecordRepo
	sessions   CueSessionService
	hub        *sse.SSEHub
	clock      cueing.Clock
}

func NewDigestService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recordRepo repos.CueRecordRepo,
	sessions CueSessionService,
	hub *sse.SSEHub,
	clock cueing.Clock,
) DigestService {
	if clock == nil {
		clock = cueing.RealClock()
	}
	return &digestService{
		db:         db,
		log:        baseLog.With("service", "DigestService"),
		recordRepo: recordRepo,
		sessions:   sessions,
		hub:        hub,
		clock:      clock,
	}
}

const recentCueLimit = 10

// GetDigest assembles the recommendation digest from the live session
// context, and in parallel pulls the recent cue history and per-trigger
// counts that accompany it.
func (s *digestService) GetDigest(ctx context.Context, maxItems int) (*DigestResponse, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	userID := rd.UserID

	snapshot, live := s.sessions.LastContext(ctx)

	resp := &DigestResponse{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.recordRepo.GetByUserID(gctx, nil, userID, recentCueLimit)
		if err != nil {
			return fmt.Errorf("load recent cues: %w", err)
		}
		summaries := make([]RecentCueSummary, 0, len(records))
		for _, rec := range records {
			summaries = append(summaries, RecentCueSummary{
				Title:       rec.Title,
				TriggerType: rec.TriggerType,
				FinalStatus: rec.FinalStatus,
			})
		}
		mu.Lock()
		resp.RecentCues = summaries
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		counts := make(map[cueing.TriggerType]int)
		for _, tt := range cueing.AllTriggerTypes() {
			n, err := s.recordRepo.CountByUserAndTriggerType(gctx, nil, userID, string(tt))
			if err != nil {
				return fmt.Errorf("count cues for %s: %w", tt, err)
			}
			if n > 0 {
				counts[tt] = int(n)
			}
		}
		mu.Lock()
		resp.CuesByTrigger = counts
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.Digest = cueing.BuildDigest(snapshot, s.clock.Now(), maxItems)
	if live {
		resp.SessionContext = &snapshot
	}

	if live && len(resp.Digest.Items) > 0 {
		s.hub.Broadcast(sse.SSEMessage{
			Channel: sse.CueChannel(userID),
			Event:   sse.SSEEventDigestReady,
			Data:    map[string]any{"items": len(resp.Digest.Items)},
		})
	}
	return resp, nil
}
