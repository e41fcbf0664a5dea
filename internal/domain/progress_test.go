package domain

import (
	"testing"
	"time"
)

func TestMergeProgressMonotonic(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var stored *WatchProgress

	ratios := []float64{0.2, 0.95, 0.3}
	duration := 100.0
	for _, ratio := range ratios {
		merged := MergeProgress(stored, ProgressReport{
			ViewerID:        "viewer@example.com",
			VideoID:         "job-1",
			SecondsWatched:  ratio * duration,
			DurationSeconds: duration,
		}, now)
		stored = &merged
	}

	if !stored.Watched {
		t.Fatalf("expected watched to latch on after 0.95 report")
	}
	if stored.SecondsWatched != 95 {
		t.Fatalf("expected max seconds 95, got %v", stored.SecondsWatched)
	}
}

func TestMergeProgressThresholdBoundary(t *testing.T) {
	now := time.Now().UTC()

	exact := MergeProgress(nil, ProgressReport{VideoID: "job-1", SecondsWatched: 95, DurationSeconds: 100}, now)
	if !exact.Watched {
		t.Fatalf("ratio exactly 0.95 must count as watched")
	}

	below := MergeProgress(nil, ProgressReport{VideoID: "job-1", SecondsWatched: 94.99, DurationSeconds: 100}, now)
	if below.Watched {
		t.Fatalf("ratio below 0.95 must not count as watched")
	}

	ended := MergeProgress(nil, ProgressReport{VideoID: "job-1", SecondsWatched: 10, DurationSeconds: 100, Ended: true}, now)
	if !ended.Watched {
		t.Fatalf("ended=true must count as watched regardless of ratio")
	}
}

func TestMergeProgressZeroDuration(t *testing.T) {
	merged := MergeProgress(nil, ProgressReport{VideoID: "job-1", SecondsWatched: 50, DurationSeconds: 0}, time.Now().UTC())
	if merged.Watched {
		t.Fatalf("zero duration must not divide to watched")
	}
}

func TestMergeProgressTakesFreshDuration(t *testing.T) {
	now := time.Now().UTC()
	first := MergeProgress(nil, ProgressReport{VideoID: "job-1", SecondsWatched: 50, DurationSeconds: 120}, now)
	second := MergeProgress(&first, ProgressReport{VideoID: "job-1", SecondsWatched: 10, DurationSeconds: 90}, now)
	if second.DurationSeconds != 90 {
		t.Fatalf("duration should be taken fresh, got %v", second.DurationSeconds)
	}
	if second.SecondsWatched != 50 {
		t.Fatalf("seconds should keep the max, got %v", second.SecondsWatched)
	}
}

func TestProgressReportValidate(t *testing.T) {
	bad := []ProgressReport{
		{VideoID: ""},
		{VideoID: "job-1", SecondsWatched: -1},
		{VideoID: "job-1", DurationSeconds: -0.5},
	}
	for i, report := range bad {
		if err := report.Validate(); err != ErrInvalidInput {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if err := (ProgressReport{VideoID: "job-1", SecondsWatched: 1, DurationSeconds: 2}).Validate(); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}
}
