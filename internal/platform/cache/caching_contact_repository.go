// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// CachingContactRepository decorates a ContactRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
//
// Only the birthday candidate set is cached: it is read on every birthday
// lookup but changes only when a contact is written. All other reads go
// straight to the database.
type CachingContactRepository struct {
	inner     usecase.ContactRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ContactRepository = (*CachingContactRepository)(nil)

// NewCachingContactRepository decorates a ContactRepository with Redis caching.
// If ttl is 0, entries live until the next local midnight, when the birthday
// window shifts. If namespace is empty, it uses "contacts".
func NewCachingContactRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ContactRepository, namespace string) *CachingContactRepository {
	if namespace == "" {
		namespace = "contacts"
	}
	return &CachingContactRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a contact and invalidates the owner's cached birthday set.
func (c *CachingContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if err := c.inner.Create(ctx, contact); err != nil {
		return err
	}
	c.invalidate(ctx, contact.UserID)
	return nil
}

// FindByID delegates to the underlying repository.
func (c *CachingContactRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	return c.inner.FindByID(ctx, userID, id)
}

// Search delegates to the underlying repository.
func (c *CachingContactRepository) Search(ctx context.Context, userID uint, firstName, lastName, email string) ([]entity.Contact, error) {
	return c.inner.Search(ctx, userID, firstName, lastName, email)
}

// Update saves a contact and invalidates the owner's cached birthday set.
func (c *CachingContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	if err := c.inner.Update(ctx, contact); err != nil {
		return err
	}
	c.invalidate(ctx, contact.UserID)
	return nil
}

// Delete removes a contact and invalidates the owner's cached birthday set.
func (c *CachingContactRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// FindWithBirthday retrieves birthday candidates, checking cache first then
// falling back to the database.
func (c *CachingContactRepository) FindWithBirthday(ctx context.Context, userID uint) ([]entity.Contact, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindWithBirthday(ctx, userID)
	}

	key := c.cacheKey(userID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Contact
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindWithBirthday(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.entryTTL()).Err()
	}

	return out, nil
}

// cacheKey generates the birthday cache key for a user.
func (c *CachingContactRepository) cacheKey(userID uint) string {
	return fmt.Sprintf("%s:bday:%d", c.namespace, userID)
}

// entryTTL returns the lifetime for new cache entries.
func (c *CachingContactRepository) entryTTL() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return TimeUntilMidnight()
}

// invalidate removes the user's cached birthday set (best effort).
func (c *CachingContactRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.cacheKey(userID)).Err()
}
