package domain

import "testing"

func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		message string
		want    FailureKind
	}{
		{"Your request was rejected by the moderation system", FailureModerationBlock},
		{"content POLICY violation", FailureModerationBlock},
		{"flagged by safety filters", FailureModerationBlock},
		{"request blocked", FailureModerationBlock},
		{"internal server error", FailureUpstreamError},
		{"", FailureUpstreamError},
	}
	for _, tc := range cases {
		if got := ClassifyFailure(tc.message); got != tc.want {
			t.Fatalf("ClassifyFailure(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestIsPendingState(t *testing.T) {
	for _, state := range []JobState{JobStateQueued, JobStateProcessing, JobStateInProgress} {
		if !IsPendingState(state) {
			t.Fatalf("expected %s to be pending", state)
		}
	}
	for _, state := range []JobState{JobStateCompleted, JobStateFailed, JobState("cancelled")} {
		if IsPendingState(state) {
			t.Fatalf("expected %s to not be pending", state)
		}
	}
}
