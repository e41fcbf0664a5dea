package cache

import (
	"context"
	"sync"
	"time"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

// In-memory store implementations. Suitable for a single instance and
// for tests; multi-instance deployments use the redis/postgres
// adapters so state survives restarts and is shared across replicas.

type MemoryGrantStore struct {
	mu        sync.RWMutex
	records   map[string]domain.PlaybackGrant
	retention time.Duration
}

func NewMemoryGrantStore(retention time.Duration) *MemoryGrantStore {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &MemoryGrantStore{records: map[string]domain.PlaybackGrant{}, retention: retention}
}

func (s *MemoryGrantStore) Put(_ context.Context, grant domain.PlaybackGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[grant.JobID] = grant
	return nil
}

func (s *MemoryGrantStore) Get(_ context.Context, jobID string) (*domain.PlaybackGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.records[jobID]
	if !ok {
		return nil, nil
	}
	// An aged record not yet swept still reads as absent.
	if grant.ExpiredAt(time.Now().UTC(), s.retention) {
		return nil, nil
	}
	copied := grant
	return &copied, nil
}

func (s *MemoryGrantStore) Cleanup(_ context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, grant := range s.records {
		if grant.ExpiredAt(now, s.retention) {
			delete(s.records, id)
		}
	}
	return nil
}

type MemoryProgressStore struct {
	mu      sync.RWMutex
	records map[string]domain.WatchProgress
	ttl     time.Duration
}

func NewMemoryProgressStore(ttl time.Duration) *MemoryProgressStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &MemoryProgressStore{records: map[string]domain.WatchProgress{}, ttl: ttl}
}

func progressKey(viewerID, videoID string) string {
	return viewerID + "::" + videoID
}

func (s *MemoryProgressStore) Merge(_ context.Context, report domain.ProgressReport, now time.Time) (domain.WatchProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := progressKey(report.ViewerID, report.VideoID)
	var stored *domain.WatchProgress
	if existing, ok := s.records[key]; ok {
		stored = &existing
	}
	merged := domain.MergeProgress(stored, report, now)
	s.records[key] = merged
	return merged, nil
}

func (s *MemoryProgressStore) Get(_ context.Context, viewerID, videoID string) (*domain.WatchProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[progressKey(viewerID, videoID)]
	if !ok {
		return nil, nil
	}
	copied := record
	return &copied, nil
}

func (s *MemoryProgressStore) Cleanup(_ context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, record := range s.records {
		if now.Sub(record.UpdatedAt) > s.ttl {
			delete(s.records, key)
		}
	}
	return nil
}
