package ports

import (
	"context"
	"time"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

// PlaybackGrantStore holds write-once playback grants keyed by job id.
// Get returns nil (not an error) when no live grant exists, covering
// both never-completed and expired records.
type PlaybackGrantStore interface {
	Put(ctx context.Context, grant domain.PlaybackGrant) error
	Get(ctx context.Context, jobID string) (*domain.PlaybackGrant, error)
	Cleanup(ctx context.Context, now time.Time) error
}

// WatchProgressStore persists per-(viewer, video) watch state. Merge
// must apply domain.MergeProgress atomically with respect to
// concurrent reports for the same key; Get never creates a record.
type WatchProgressStore interface {
	Merge(ctx context.Context, report domain.ProgressReport, now time.Time) (domain.WatchProgress, error)
	Get(ctx context.Context, viewerID, videoID string) (*domain.WatchProgress, error)
	Cleanup(ctx context.Context, now time.Time) error
}
