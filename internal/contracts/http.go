package contracts

// External payload field names are part of the wire interface consumed
// by the player UI and stay camelCase.

type VideoStatusResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Progress    *int   `json:"progress,omitempty"`
	ErrorType   string `json:"errorType,omitempty"`
	Error       string `json:"error,omitempty"`
	CompletedAt int64  `json:"completedAt,omitempty"`
	PlayToken   string `json:"playToken,omitempty"`
}

type ProgressRequest struct {
	ID              string   `json:"id"`
	SecondsWatched  *float64 `json:"secondsWatched"`
	DurationSeconds *float64 `json:"durationSeconds"`
	Ended           bool     `json:"ended"`
}

type ProgressResponse struct {
	ID              string  `json:"id"`
	SecondsWatched  float64 `json:"secondsWatched"`
	DurationSeconds float64 `json:"durationSeconds"`
	Watched         bool    `json:"watched"`
	DownloadEnabled bool    `json:"downloadEnabled"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}
