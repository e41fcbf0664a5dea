package domain

import "strings"

type JobState string

const (
	JobStateQueued     JobState = "queued"
	JobStateProcessing JobState = "processing"
	JobStateInProgress JobState = "in_progress"
	JobStateCompleted  JobState = "completed"
	JobStateFailed     JobState = "failed"
)

type FailureKind string

const (
	FailureModerationBlock FailureKind = "moderation_block"
	FailureUpstreamError   FailureKind = "upstream_error"
)

// IsPendingState reports whether a provider status means the job is
// still being worked on and the poller should keep polling.
func IsPendingState(status JobState) bool {
	switch status {
	case JobStateQueued, JobStateProcessing, JobStateInProgress:
		return true
	}
	return false
}

var moderationMarkers = []string{"moderation", "policy", "safety", "blocked"}

// ClassifyFailure buckets an upstream error message so clients can show
// a moderation-specific message instead of a generic failure.
func ClassifyFailure(message string) FailureKind {
	lowered := strings.ToLower(message)
	for _, marker := range moderationMarkers {
		if strings.Contains(lowered, marker) {
			return FailureModerationBlock
		}
	}
	return FailureUpstreamError
}

func NormalizeJobState(raw string) JobState {
	return JobState(strings.ToLower(strings.TrimSpace(raw)))
}
