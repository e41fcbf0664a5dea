package application_test

import (
	"context"
	"testing"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/application"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

func TestReportProgressSequence(t *testing.T) {
	deps := newService(t)
	ctx := context.Background()

	reports := []struct {
		seconds float64
		want    bool
	}{
		{20, false},
		{95, true},
		{30, true}, // backward seek must not unset watched
	}
	for _, step := range reports {
		out, err := deps.service.ReportProgress(ctx, viewer, domain.ProgressReport{VideoID: "job-1", SecondsWatched: step.seconds, DurationSeconds: 100})
		if err != nil {
			t.Fatalf("report %v: %v", step.seconds, err)
		}
		if out.Watched != step.want {
			t.Fatalf("after %v seconds expected watched=%v, got %+v", step.seconds, step.want, out)
		}
		if out.DownloadEnabled != out.Watched {
			t.Fatalf("downloadEnabled must mirror watched, got %+v", out)
		}
	}

	final, err := deps.service.GetProgress(ctx, viewer, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if final.SecondsWatched != 95 {
		t.Fatalf("expected max seconds 95, got %v", final.SecondsWatched)
	}
}

func TestGetProgressNeverCreates(t *testing.T) {
	deps := newService(t)
	ctx := context.Background()

	out, err := deps.service.GetProgress(ctx, viewer, "job-unseen")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Watched || out.SecondsWatched != 0 {
		t.Fatalf("never-reported pair must read zeroed, got %+v", out)
	}
	if record, _ := deps.progress.Get(ctx, viewer.ViewerID, "job-unseen"); record != nil {
		t.Fatalf("read must not create a record")
	}
}

func TestReportProgressValidation(t *testing.T) {
	deps := newService(t)
	ctx := context.Background()

	if _, err := deps.service.ReportProgress(ctx, viewer, domain.ProgressReport{VideoID: "", SecondsWatched: 1, DurationSeconds: 2}); err != domain.ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := deps.service.ReportProgress(ctx, viewer, domain.ProgressReport{VideoID: "job-1", SecondsWatched: -5, DurationSeconds: 100}); err != domain.ErrInvalidInput {
		t.Fatalf("expected invalid input for negative seconds, got %v", err)
	}
	if _, err := deps.service.ReportProgress(ctx, application.Actor{}, domain.ProgressReport{VideoID: "job-1", SecondsWatched: 1, DurationSeconds: 2}); err != domain.ErrUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
