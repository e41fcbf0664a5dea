package domain

import (
	"testing"
	"time"
)

func TestNewPlayTokenEntropyAndUniqueness(t *testing.T) {
	first, err := NewPlayToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars for 32 bytes, got %d", len(first))
	}
	second, err := NewPlayToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if first == second {
		t.Fatalf("two tokens must not collide")
	}
}

func TestTokenMatchesRejectsPrefix(t *testing.T) {
	token, err := NewPlayToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	grant := PlaybackGrant{JobID: "job-1", PlayToken: token}
	if !grant.TokenMatches(token) {
		t.Fatalf("exact token must match")
	}
	if grant.TokenMatches(token[:32]) {
		t.Fatalf("prefix of the token must not match")
	}
	if grant.TokenMatches(token + "00") {
		t.Fatalf("extended token must not match")
	}
}

func TestGrantExpiry(t *testing.T) {
	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	grant := PlaybackGrant{JobID: "job-1", CreatedAt: created}
	if grant.ExpiredAt(created.Add(23*time.Hour), 24*time.Hour) {
		t.Fatalf("grant inside retention must be live")
	}
	if !grant.ExpiredAt(created.Add(25*time.Hour), 24*time.Hour) {
		t.Fatalf("grant past retention must be expired")
	}
}
