package domain

import (
	"math"
	"time"
)

// WatchedThreshold is the cumulative watch ratio at which a video
// counts as watched and downloading unlocks.
const WatchedThreshold = 0.95

// WatchProgress tracks how much of a video a viewer has watched.
// SecondsWatched and Watched are monotonic: seconds never decrease and
// Watched never reverts once true, regardless of later reports.
type WatchProgress struct {
	ViewerID        string    `json:"viewer_id"`
	VideoID         string    `json:"video_id"`
	SecondsWatched  float64   `json:"seconds_watched"`
	DurationSeconds float64   `json:"duration_seconds"`
	Watched         bool      `json:"watched"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProgressReport struct {
	ViewerID        string
	VideoID         string
	SecondsWatched  float64
	DurationSeconds float64
	Ended           bool
}

func (r ProgressReport) Validate() error {
	if r.VideoID == "" {
		return ErrInvalidInput
	}
	for _, v := range []float64{r.SecondsWatched, r.DurationSeconds} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return ErrInvalidInput
		}
	}
	return nil
}

// WatchRatio guards against a zero or unreported duration.
func (r ProgressReport) WatchRatio() float64 {
	if r.DurationSeconds <= 0 {
		return 0
	}
	return r.SecondsWatched / r.DurationSeconds
}

// MergeProgress folds a telemetry report into the stored record.
// stored may be nil for a first report. Duration is taken fresh from
// the report; seconds take the max; watched only ever latches on.
func MergeProgress(stored *WatchProgress, report ProgressReport, now time.Time) WatchProgress {
	merged := WatchProgress{
		ViewerID:        report.ViewerID,
		VideoID:         report.VideoID,
		SecondsWatched:  report.SecondsWatched,
		DurationSeconds: report.DurationSeconds,
		Watched:         report.Ended || report.WatchRatio() >= WatchedThreshold,
		UpdatedAt:       now,
	}
	if stored != nil {
		if stored.SecondsWatched > merged.SecondsWatched {
			merged.SecondsWatched = stored.SecondsWatched
		}
		merged.Watched = merged.Watched || stored.Watched
	}
	return merged
}
