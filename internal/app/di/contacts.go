// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"contacts_backend/internal/feature/contacts/adapters"
	"contacts_backend/internal/feature/contacts/usecase"
	"contacts_backend/internal/platform/cache"
)

// NewContactRepository creates the contact repository backed by PostgreSQL,
// wrapped in a Redis cache for birthday lookups. A nil Redis client makes the
// cache a transparent pass-through.
func NewContactRepository(rdb *redis.Client, db *gorm.DB) usecase.ContactRepository {
	repo := adapters.NewContactPostgres(db)
	// TTL 0: entries expire at the next midnight, when the birthday window moves
	return cache.NewCachingContactRepository(rdb, 0, repo, "contacts")
}
