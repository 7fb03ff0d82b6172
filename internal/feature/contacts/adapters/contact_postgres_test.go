package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Contact{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func seedContact(t *testing.T, repo *contactPostgres, userID uint, first, last, email string, birthday *time.Time) *entity.Contact {
	t.Helper()

	contact := &entity.Contact{
		UserID:    userID,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     "555-0100",
		Birthday:  birthday,
	}
	require.NoError(t, repo.Create(context.Background(), contact))
	return contact
}

func TestContactPostgres_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewContactPostgres(db)

		contact := seedContact(t, repo, 1, "Grace", "Hopper", "grace@example.com", nil)

		assert.NotZero(t, contact.ID, "ID is not set")
		assert.False(t, contact.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email within the same owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewContactPostgres(db)

		seedContact(t, repo, 1, "Grace", "Hopper", "grace@example.com", nil)

		dup := &entity.Contact{UserID: 1, FirstName: "G", LastName: "H", Email: "grace@example.com"}
		err := repo.Create(context.Background(), dup)

		assert.Error(t, err, "should return duplicate error")
	})

	t.Run("same email allowed for a different owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewContactPostgres(db)

		seedContact(t, repo, 1, "Grace", "Hopper", "grace@example.com", nil)

		other := &entity.Contact{UserID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"}
		err := repo.Create(context.Background(), other)

		assert.NoError(t, err, "uniqueness must be scoped per owner")
	})
}

func TestContactPostgres_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactPostgres(db)

	created := seedContact(t, repo, 1, "Grace", "Hopper", "grace@example.com", nil)

	t.Run("found for the owner", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), 1, created.ID)

		assert.NoError(t, err)
		assert.Equal(t, "grace@example.com", found.Email)
	})

	t.Run("not visible to another user", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 2, created.ID)

		assert.ErrorIs(t, err, usecase.ErrContactNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 1, 999)

		assert.ErrorIs(t, err, usecase.ErrContactNotFound)
	})
}

func TestContactPostgres_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactPostgres(db)

	seedContact(t, repo, 1, "Grace", "Hopper", "grace@example.com", nil)
	seedContact(t, repo, 1, "Alan", "Turing", "alan@example.com", nil)
	seedContact(t, repo, 2, "Grace", "Kelly", "kelly@example.com", nil)

	t.Run("no filters returns all owned contacts", func(t *testing.T) {
		got, err := repo.Search(context.Background(), 1, "", "", "")

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("case-insensitive partial match on first name", func(t *testing.T) {
		got, err := repo.Search(context.Background(), 1, "gRa", "", "")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Hopper", got[0].LastName)
	})

	t.Run("filters combine", func(t *testing.T) {
		got, err := repo.Search(context.Background(), 1, "Grace", "Turing", "")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("email filter", func(t *testing.T) {
		got, err := repo.Search(context.Background(), 1, "", "", "alan@")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Turing", got[0].LastName)
	})

	t.Run("results are scoped to the owner", func(t *testing.T) {
		got, err := repo.Search(context.Background(), 2, "Grace", "", "")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Kelly", got[0].LastName)
	})
}

func TestContactPostgres_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactPostgres(db)

	created := seedContact(t, repo, 1, "Grace", "Hopper", "grace@example.com", nil)

	created.Phone = "555-0199"
	created.ExtraInfo = "met at conference"
	require.NoError(t, repo.Update(context.Background(), created))

	found, err := repo.FindByID(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0199", found.Phone)
	assert.Equal(t, "met at conference", found.ExtraInfo)
}

func TestContactPostgres_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactPostgres(db)

	created := seedContact(t, repo, 1, "Grace", "Hopper", "grace@example.com", nil)

	t.Run("not deletable by another user", func(t *testing.T) {
		err := repo.Delete(context.Background(), 2, created.ID)

		assert.ErrorIs(t, err, usecase.ErrContactNotFound)
	})

	t.Run("deleted by the owner", func(t *testing.T) {
		require.NoError(t, repo.Delete(context.Background(), 1, created.ID))

		_, err := repo.FindByID(context.Background(), 1, created.ID)
		assert.ErrorIs(t, err, usecase.ErrContactNotFound)
	})

	t.Run("already gone", func(t *testing.T) {
		err := repo.Delete(context.Background(), 1, created.ID)

		assert.ErrorIs(t, err, usecase.ErrContactNotFound)
	})
}

func TestContactPostgres_FindWithBirthday(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactPostgres(db)

	birthday := time.Date(1990, time.May, 2, 0, 0, 0, 0, time.UTC)
	seedContact(t, repo, 1, "Grace", "Hopper", "grace@example.com", &birthday)
	seedContact(t, repo, 1, "Alan", "Turing", "alan@example.com", nil)
	seedContact(t, repo, 2, "Ada", "Lovelace", "ada@example.com", &birthday)

	got, err := repo.FindWithBirthday(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "grace@example.com", got[0].Email)
	require.NotNil(t, got[0].Birthday)
}
