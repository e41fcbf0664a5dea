package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// PlaybackGrant is the server-side record minted when a generation job
// completes. The client only ever sees PlayToken; OutputURL stays
// internal so the upstream's authenticated location is never leaked.
type PlaybackGrant struct {
	JobID     string    `json:"job_id"`
	OutputURL string    `json:"output_url"`
	PlayToken string    `json:"play_token"`
	CreatedAt time.Time `json:"created_at"`
}

const playTokenBytes = 32

// NewPlayToken returns a hex-encoded token with 32 bytes of entropy
// from the platform CSPRNG.
func NewPlayToken() (string, error) {
	buf := make([]byte, playTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate play token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (g PlaybackGrant) ExpiredAt(now time.Time, retention time.Duration) bool {
	return now.Sub(g.CreatedAt) > retention
}

// TokenMatches requires exact equality, constant time. A prefix of the
// stored token must not pass.
func (g PlaybackGrant) TokenMatches(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(g.PlayToken), []byte(candidate)) == 1
}
