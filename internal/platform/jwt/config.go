package jwtauth

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable keys for token configuration.
const (
	// EnvKeySecretKey is the signing key for access tokens. Required.
	EnvKeySecretKey = "SECRET_KEY"

	// EnvKeyAlgorithm selects the HMAC signing algorithm. Optional.
	EnvKeyAlgorithm = "ALGORITHM"

	// EnvKeyExpireMinutes sets the access token lifetime in minutes. Optional.
	EnvKeyExpireMinutes = "ACCESS_TOKEN_EXPIRE_MINUTES"
)

const (
	defaultAlgorithm     = "HS256"
	defaultExpireMinutes = 30
)

// Config holds the token codec settings, loaded once at startup
// and immutable afterwards.
type Config struct {
	// SecretKey is the process-wide HMAC signing secret.
	// Rotating it invalidates all previously issued tokens.
	SecretKey string

	// Algorithm is the JWT signing algorithm name (HS256, HS384 or HS512).
	Algorithm string

	// Expiration is the lifetime of newly issued access tokens.
	Expiration time.Duration
}

// LoadConfig reads the token configuration from environment variables.
// A missing SECRET_KEY is a startup error: the server must not run with an
// empty signing secret.
func LoadConfig() (Config, error) {
	secret := os.Getenv(EnvKeySecretKey)
	if secret == "" {
		return Config{}, fmt.Errorf("%s is not set", EnvKeySecretKey)
	}

	algorithm := os.Getenv(EnvKeyAlgorithm)
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}

	minutes := defaultExpireMinutes
	if v := os.Getenv(EnvKeyExpireMinutes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvKeyExpireMinutes, v)
		}
		minutes = n
	}

	return Config{
		SecretKey:  secret,
		Algorithm:  algorithm,
		Expiration: time.Duration(minutes) * time.Minute,
	}, nil
}
