package application

import (
	"context"
	"strings"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/contracts"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

// ReportProgress folds one telemetry report into the viewer's record.
// Client numbers are untrusted: they are validated for shape, and the
// store merge enforces the monotonic invariants so a backward seek or
// replayed report can never revoke the watched state.
func (s *Service) ReportProgress(ctx context.Context, actor Actor, report domain.ProgressReport) (contracts.ProgressResponse, error) {
	if strings.TrimSpace(actor.ViewerID) == "" {
		return contracts.ProgressResponse{}, domain.ErrUnauthorized
	}
	report.ViewerID = actor.ViewerID
	report.VideoID = strings.TrimSpace(report.VideoID)
	if err := report.Validate(); err != nil {
		return contracts.ProgressResponse{}, err
	}

	now := s.nowFn()
	if err := s.progress.Cleanup(ctx, now); err != nil {
		s.logger.WarnContext(ctx, "progress cleanup failed", "error", err)
	}
	merged, err := s.progress.Merge(ctx, report, now)
	if err != nil {
		return contracts.ProgressResponse{}, err
	}
	return progressResponse(merged), nil
}

// GetProgress reads the stored record, returning zeroed defaults when
// the pair has never reported. Reading never creates a record.
func (s *Service) GetProgress(ctx context.Context, actor Actor, videoID string) (contracts.ProgressResponse, error) {
	if strings.TrimSpace(actor.ViewerID) == "" {
		return contracts.ProgressResponse{}, domain.ErrUnauthorized
	}
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return contracts.ProgressResponse{}, domain.ErrInvalidInput
	}
	record, err := s.progress.Get(ctx, actor.ViewerID, videoID)
	if err != nil {
		return contracts.ProgressResponse{}, err
	}
	if record == nil {
		return contracts.ProgressResponse{ID: videoID}, nil
	}
	return progressResponse(*record), nil
}

func progressResponse(record domain.WatchProgress) contracts.ProgressResponse {
	return contracts.ProgressResponse{
		ID:              record.VideoID,
		SecondsWatched:  record.SecondsWatched,
		DurationSeconds: record.DurationSeconds,
		Watched:         record.Watched,
		DownloadEnabled: record.Watched,
	}
}
