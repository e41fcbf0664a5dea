package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

func seedGrant(t *testing.T, deps testDeps, jobID, outputURL string) domain.PlaybackGrant {
	t.Helper()
	token, err := domain.NewPlayToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	grant := domain.PlaybackGrant{JobID: jobID, OutputURL: outputURL, PlayToken: token, CreatedAt: time.Now().UTC()}
	if err := deps.grants.Put(context.Background(), grant); err != nil {
		t.Fatalf("seed grant: %v", err)
	}
	return grant
}

func TestAuthorizePlayback(t *testing.T) {
	deps := newService(t)
	grant := seedGrant(t, deps, "job-1", "https://videos.openai.com/outputs/job-1.mp4")

	source, err := deps.service.AuthorizePlayback(context.Background(), viewer, "job-1", grant.PlayToken)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if source.SourceURL != grant.OutputURL {
		t.Fatalf("expected stored url, got %s", source.SourceURL)
	}
	if source.FileName != "video-job-1.mp4" {
		t.Fatalf("unexpected file name %s", source.FileName)
	}
}

func TestAuthorizePlaybackTokenExactness(t *testing.T) {
	deps := newService(t)
	grant := seedGrant(t, deps, "job-1", "https://videos.openai.com/outputs/job-1.mp4")

	// A prefix of the real token is a valid-looking string but must fail.
	if _, err := deps.service.AuthorizePlayback(context.Background(), viewer, "job-1", grant.PlayToken[:32]); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for prefix token, got %v", err)
	}
	other, _ := domain.NewPlayToken()
	if _, err := deps.service.AuthorizePlayback(context.Background(), viewer, "job-1", other); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for wrong token, got %v", err)
	}
}

func TestAuthorizePlaybackMissingOrExpiredGrant(t *testing.T) {
	deps := newService(t)
	if _, err := deps.service.AuthorizePlayback(context.Background(), viewer, "job-x", "sometoken"); err != domain.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	aged := domain.PlaybackGrant{JobID: "job-old", OutputURL: "https://videos.openai.com/a.mp4", PlayToken: "tok", CreatedAt: time.Now().UTC().Add(-25 * time.Hour)}
	if err := deps.grants.Put(context.Background(), aged); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := deps.service.AuthorizePlayback(context.Background(), viewer, "job-old", "tok"); err != domain.ErrNotFound {
		t.Fatalf("expired grant must read as absent, got %v", err)
	}
}

func TestAuthorizePlaybackRejectsDisallowedHost(t *testing.T) {
	deps := newService(t)
	grant := seedGrant(t, deps, "job-evil", "https://evil.example.com/video.mp4")
	if _, err := deps.service.AuthorizePlayback(context.Background(), viewer, "job-evil", grant.PlayToken); err != domain.ErrInvalidSource {
		t.Fatalf("expected invalid source, got %v", err)
	}
}

func TestAuthorizePlaybackInputChecks(t *testing.T) {
	deps := newService(t)
	if _, err := deps.service.AuthorizePlayback(context.Background(), viewer, "", "tok"); err != domain.ErrInvalidInput {
		t.Fatalf("expected invalid input for missing id, got %v", err)
	}
	if _, err := deps.service.AuthorizePlayback(context.Background(), viewer, "job-1", ""); err != domain.ErrInvalidInput {
		t.Fatalf("expected invalid input for missing token, got %v", err)
	}
}

func TestAuthorizeDownloadGate(t *testing.T) {
	deps := newService(t)
	grant := seedGrant(t, deps, "job-1", "https://videos.openai.com/outputs/job-1.mp4")

	// Valid grant and token are not enough without watched state.
	if _, err := deps.service.AuthorizeDownload(context.Background(), viewer, "job-1"); err != domain.ErrDownloadLocked {
		t.Fatalf("expected download locked, got %v", err)
	}

	if _, err := deps.service.ReportProgress(context.Background(), viewer, domain.ProgressReport{VideoID: "job-1", SecondsWatched: 60, DurationSeconds: 60, Ended: true}); err != nil {
		t.Fatalf("report: %v", err)
	}
	source, err := deps.service.AuthorizeDownload(context.Background(), viewer, "job-1")
	if err != nil {
		t.Fatalf("authorize download: %v", err)
	}
	if source.SourceURL != grant.OutputURL {
		t.Fatalf("unexpected source %s", source.SourceURL)
	}
}

func TestAuthorizeDownloadPerViewer(t *testing.T) {
	deps := newService(t)
	seedGrant(t, deps, "job-1", "https://videos.openai.com/outputs/job-1.mp4")

	other := viewer
	other.ViewerID = "other@example.com"
	if _, err := deps.service.ReportProgress(context.Background(), other, domain.ProgressReport{VideoID: "job-1", SecondsWatched: 60, DurationSeconds: 60, Ended: true}); err != nil {
		t.Fatalf("report: %v", err)
	}
	// The first viewer still has no watched state.
	if _, err := deps.service.AuthorizeDownload(context.Background(), viewer, "job-1"); err != domain.ErrDownloadLocked {
		t.Fatalf("watch state must be per viewer, got %v", err)
	}
}

func TestSweepStores(t *testing.T) {
	deps := newService(t)
	aged := domain.PlaybackGrant{JobID: "job-old", OutputURL: "https://videos.openai.com/a.mp4", PlayToken: "tok", CreatedAt: time.Now().UTC().Add(-25 * time.Hour)}
	if err := deps.grants.Put(context.Background(), aged); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := deps.service.SweepStores(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if grant, _ := deps.grants.Get(context.Background(), "job-old"); grant != nil {
		t.Fatalf("sweep should evict aged grants")
	}
}
