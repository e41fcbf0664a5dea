package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/ports"
)

// JWTVerifier validates RS256 session tokens issued by the platform
// session provider. This service only verifies; it never mints tokens
// (the ephemeral signer below exists for local/dev and tests).
type JWTVerifier struct {
	publicKey *rsa.PublicKey
}

func NewJWTVerifier(publicKeyPEM string) (*JWTVerifier, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("jwt public key is required")
	}
	pub, err := parseRSAPublic(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return &JWTVerifier{publicKey: pub}, nil
}

type sessionJWTClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) Verify(raw string) (ports.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &sessionJWTClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return v.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return ports.SessionClaims{}, err
	}
	claims, ok := parsed.Claims.(*sessionJWTClaims)
	if !ok || !parsed.Valid {
		return ports.SessionClaims{}, errors.New("invalid token claims")
	}

	out := ports.SessionClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		SessionID: claims.SessionID,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return out, nil
}

// EphemeralSigner pairs an in-memory keypair with a verifier so local
// runs and tests can mint sessions without the real session provider.
type EphemeralSigner struct {
	privateKey *rsa.PrivateKey
}

func NewEphemeralSigner() (*EphemeralSigner, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	return &EphemeralSigner{privateKey: privateKey}, nil
}

func (s *EphemeralSigner) Sign(claims ports.SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, sessionJWTClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		SessionID: claims.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	return token.SignedString(s.privateKey)
}

func (s *EphemeralSigner) Verifier() *JWTVerifier {
	return &JWTVerifier{publicKey: &s.privateKey.PublicKey}
}

func parseRSAPublic(raw string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(raw))
	if block == nil {
		return nil, errors.New("invalid public PEM")
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}
	keyAny, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := keyAny.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return key, nil
}
