package ports

import "time"

// SessionClaims is the verified identity carried by a session token.
type SessionClaims struct {
	UserID    string
	Email     string
	SessionID string
	ExpiresAt time.Time
}

// SessionVerifier validates a raw bearer token from the session
// provider. Verification failures must not distinguish causes to the
// caller; every failure is a uniform 401.
type SessionVerifier interface {
	Verify(raw string) (SessionClaims, error)
}
