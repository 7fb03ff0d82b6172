// Package jwtauth issues and decodes signed, expiring bearer tokens.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode failures, in the order the checks run. The signature is always
// verified before any claim is inspected, so a tampered expiry surfaces as
// ErrInvalidSignature, never as ErrTokenExpired.
var (
	// ErrInvalidSignature indicates a malformed token, a signature that does
	// not verify against the configured secret, or a disallowed algorithm.
	ErrInvalidSignature = errors.New("token signature is invalid")

	// ErrTokenExpired indicates the token's expiry instant has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrMissingSubject indicates the token carries no subject claim.
	ErrMissingSubject = errors.New("token subject claim is missing")
)

// Codec encodes and decodes access tokens carrying a subject claim.
// It holds the signing secret read-only after construction, so a single
// instance is safe for concurrent use.
type Codec struct {
	secret    []byte
	method    jwt.SigningMethod
	algorithm string
}

// NewCodec creates a Codec from the given configuration.
// Only HMAC algorithms are accepted.
func NewCodec(cfg Config) (*Codec, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok || method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", cfg.Algorithm)
	}
	return &Codec{
		secret:    []byte(cfg.SecretKey),
		method:    method,
		algorithm: cfg.Algorithm,
	}, nil
}

// Issue creates a signed token asserting the given subject, expiring at
// now + ttl. The signature covers the whole payload including the expiry.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the token and returns its subject claim.
// Checks run in a fixed order: signature, then expiry, then subject presence.
func (c *Codec) Decode(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.algorithm}))

	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return "", ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case err != nil:
		return "", ErrInvalidSignature
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
