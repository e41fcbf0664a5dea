package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

// AuthorizePlayback validates a playback capability and returns the
// upstream source the proxy may stream from. The allowlist check runs
// against the stored URL, never anything client-supplied.
func (s *Service) AuthorizePlayback(ctx context.Context, actor Actor, jobID, token string) (StreamSource, error) {
	if strings.TrimSpace(actor.ViewerID) == "" {
		return StreamSource{}, domain.ErrUnauthorized
	}
	jobID = strings.TrimSpace(jobID)
	token = strings.TrimSpace(token)
	if jobID == "" || token == "" {
		return StreamSource{}, domain.ErrInvalidInput
	}
	grant, err := s.grants.Get(ctx, jobID)
	if err != nil {
		return StreamSource{}, err
	}
	if grant == nil || grant.ExpiredAt(s.nowFn(), s.cfg.GrantRetention) {
		return StreamSource{}, domain.ErrNotFound
	}
	if !grant.TokenMatches(token) {
		return StreamSource{}, domain.ErrForbidden
	}
	if !s.allowlist.Allows(grant.OutputURL) {
		s.logger.WarnContext(ctx, "stored output url rejected by allowlist", "job_id", jobID)
		return StreamSource{}, domain.ErrInvalidSource
	}
	return StreamSource{JobID: jobID, SourceURL: grant.OutputURL, FileName: videoFileName(jobID)}, nil
}

// AuthorizeDownload gates the full-file download on server-side watch
// state. A completed job with a valid play token is not enough; the
// viewer must have watched the video.
func (s *Service) AuthorizeDownload(ctx context.Context, actor Actor, jobID string) (StreamSource, error) {
	if strings.TrimSpace(actor.ViewerID) == "" {
		return StreamSource{}, domain.ErrUnauthorized
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return StreamSource{}, domain.ErrInvalidInput
	}
	record, err := s.progress.Get(ctx, actor.ViewerID, jobID)
	if err != nil {
		return StreamSource{}, err
	}
	if record == nil || !record.Watched {
		return StreamSource{}, domain.ErrDownloadLocked
	}
	grant, err := s.grants.Get(ctx, jobID)
	if err != nil {
		return StreamSource{}, err
	}
	if grant == nil || grant.ExpiredAt(s.nowFn(), s.cfg.GrantRetention) {
		return StreamSource{}, domain.ErrNotFound
	}
	if !s.allowlist.Allows(grant.OutputURL) {
		s.logger.WarnContext(ctx, "stored output url rejected by allowlist", "job_id", jobID)
		return StreamSource{}, domain.ErrInvalidSource
	}
	return StreamSource{JobID: jobID, SourceURL: grant.OutputURL, FileName: videoFileName(jobID)}, nil
}

// SweepStores runs the age-based eviction on both stores. Called by
// the background sweeper.
func (s *Service) SweepStores(ctx context.Context) error {
	now := s.nowFn()
	if err := s.grants.Cleanup(ctx, now); err != nil {
		return err
	}
	return s.progress.Cleanup(ctx, now)
}

func videoFileName(jobID string) string {
	return fmt.Sprintf("video-%s.mp4", jobID)
}
