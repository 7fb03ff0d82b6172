// Package storage provides object storage backed avatar uploads.
package storage

import (
	"errors"
	"os"
)

// Environment variable keys for the object storage configuration.
const (
	EnvKeyEndpoint  = "S3_ENDPOINT"
	EnvKeyRegion    = "S3_REGION"
	EnvKeyBucket    = "S3_BUCKET"
	EnvKeyAccessKey = "S3_ACCESS_KEY"
	EnvKeySecretKey = "S3_SECRET_KEY"
)

// ErrNotConfigured is returned when the storage environment variables are absent.
var ErrNotConfigured = errors.New("object storage is not configured")

// Config holds the S3 compatible storage settings (MinIO in development).
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// LoadConfig reads the storage settings from environment variables.
// An empty endpoint means storage is intentionally disabled and yields
// ErrNotConfigured; any other missing value is a configuration mistake.
func LoadConfig() (Config, error) {
	cfg := Config{
		Endpoint:  os.Getenv(EnvKeyEndpoint),
		Region:    os.Getenv(EnvKeyRegion),
		Bucket:    os.Getenv(EnvKeyBucket),
		AccessKey: os.Getenv(EnvKeyAccessKey),
		SecretKey: os.Getenv(EnvKeySecretKey),
	}

	if cfg.Endpoint == "" {
		return Config{}, ErrNotConfigured
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return Config{}, errors.New("S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are required when S3_ENDPOINT is set")
	}
	return cfg, nil
}
