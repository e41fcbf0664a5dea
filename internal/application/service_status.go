package application

import (
	"context"
	"strings"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/contracts"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

// JobStatus polls the upstream job and translates its lifecycle into
// the client-facing status shape. On first observed completion with a
// resolvable output it mints a playback grant; the upstream URL itself
// is never part of the response. Upstream transport failures are
// reported as a failed status, not an error, so pollers always get a
// parseable body.
func (s *Service) JobStatus(ctx context.Context, actor Actor, jobID, model string) (contracts.VideoStatusResponse, error) {
	if strings.TrimSpace(actor.ViewerID) == "" {
		return contracts.VideoStatusResponse{}, domain.ErrUnauthorized
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return contracts.VideoStatusResponse{}, domain.ErrInvalidInput
	}

	cred, err := s.credentials.Resolve(ctx, strings.TrimSpace(model))
	if err != nil {
		return contracts.VideoStatusResponse{}, err
	}

	snap, err := s.generator.JobStatus(ctx, cred, jobID)
	if err != nil {
		s.logger.WarnContext(ctx, "upstream status poll failed", "job_id", jobID, "provider", cred.Provider, "error", err)
		return contracts.VideoStatusResponse{
			ID:        jobID,
			Status:    string(domain.JobStateFailed),
			ErrorType: string(domain.FailureUpstreamError),
			Error:     "video generation status unavailable",
		}, nil
	}

	state := domain.NormalizeJobState(snap.Status)
	s.logger.InfoContext(ctx, "job status polled", "job_id", jobID, "status", string(state), "progress", snap.Progress)

	if state == domain.JobStateFailed || snap.ErrorMessage != "" {
		return contracts.VideoStatusResponse{
			ID:        jobID,
			Status:    string(domain.JobStateFailed),
			ErrorType: string(domain.ClassifyFailure(snap.ErrorMessage)),
			Error:     snap.ErrorMessage,
		}, nil
	}

	if domain.IsPendingState(state) {
		progress := snap.Progress
		return contracts.VideoStatusResponse{ID: jobID, Status: string(state), Progress: &progress}, nil
	}

	if state == domain.JobStateCompleted {
		return s.completeJob(ctx, cred, jobID, snap.OutputURL, snap.FileID, snap.CompletedAt)
	}

	// Unrecognized upstream status passes through verbatim.
	progress := snap.Progress
	return contracts.VideoStatusResponse{ID: jobID, Status: string(state), Progress: &progress}, nil
}

func (s *Service) completeJob(ctx context.Context, cred ports.Credential, jobID, outputURL, fileID string, completedAt int64) (contracts.VideoStatusResponse, error) {
	if completedAt == 0 {
		completedAt = s.nowFn().Unix()
	}
	if outputURL == "" && fileID != "" {
		outputURL = s.generator.FileContentURL(cred, fileID)
	}
	if outputURL == "" {
		// Dead-end: completed upstream but nothing fetchable. Playback
		// is simply unavailable for this job.
		s.logger.WarnContext(ctx, "completed job has no resolvable output", "job_id", jobID)
		return contracts.VideoStatusResponse{ID: jobID, Status: string(domain.JobStateCompleted), CompletedAt: completedAt}, nil
	}

	// Re-polling a completed job returns the existing token instead of
	// rotating it, so tokens already handed out stay valid until the
	// grant expires.
	existing, err := s.grants.Get(ctx, jobID)
	if err != nil {
		return contracts.VideoStatusResponse{}, err
	}
	if existing != nil {
		return contracts.VideoStatusResponse{ID: jobID, Status: string(domain.JobStateCompleted), CompletedAt: completedAt, PlayToken: existing.PlayToken}, nil
	}

	now := s.nowFn()
	if err := s.grants.Cleanup(ctx, now); err != nil {
		s.logger.WarnContext(ctx, "grant cleanup failed", "error", err)
	}
	token, err := domain.NewPlayToken()
	if err != nil {
		return contracts.VideoStatusResponse{}, err
	}
	grant := domain.PlaybackGrant{JobID: jobID, OutputURL: outputURL, PlayToken: token, CreatedAt: now}
	if err := s.grants.Put(ctx, grant); err != nil {
		return contracts.VideoStatusResponse{}, err
	}
	return contracts.VideoStatusResponse{ID: jobID, Status: string(domain.JobStateCompleted), CompletedAt: completedAt, PlayToken: token}, nil
}
