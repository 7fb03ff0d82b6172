package di

import (
	"context"
	"errors"
	"log/slog"

	"contacts_backend/internal/feature/auth/usecase"
	"contacts_backend/internal/platform/storage"
)

// NewAvatarStorage creates the S3 backed avatar storage from environment
// configuration. When storage is not configured the returned value is nil and
// avatar uploads answer 503.
func NewAvatarStorage(ctx context.Context) usecase.AvatarStorage {
	cfg, err := storage.LoadConfig()
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			slog.Warn("object storage not configured, avatar uploads disabled")
		} else {
			slog.Error("invalid object storage configuration, avatar uploads disabled", "error", err)
		}
		return nil
	}

	s, err := storage.NewS3AvatarStorage(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize object storage, avatar uploads disabled", "error", err)
		return nil
	}
	return s
}
