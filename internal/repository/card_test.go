package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardstack/internal/cache"
	"cardstack/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRepo opens an in-memory SQLite database and a miniredis-backed cache,
// both scoped to the test.
func setupRepo(t *testing.T) (CardRepository, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// The pool must stay at one connection or each new connection would see
	// its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Card{}))

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	return NewCardRepository(db), db, mr
}

func seedCard(t *testing.T, db *gorm.DB, ownerID uint, order int, createdAt time.Time) *models.Card {
	t.Helper()
	card := &models.Card{
		Title:           gofakeit.Sentence(3),
		Content:         gofakeit.Paragraph(1, 2, 5, " "),
		Type:            models.CardTypeText,
		BackgroundColor: "#ffffff",
		TextColor:       "#000000",
		Order:           order,
		IsActive:        true,
		CreatedBy:       ownerID,
		CreatedAt:       createdAt,
	}
	require.NoError(t, db.Create(card).Error)
	return card
}

func TestListByOwnerFiltersAndOrders(t *testing.T) {
	repo, db, _ := setupRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older := seedCard(t, db, 1, 1, base.Add(-time.Hour))
	newer := seedCard(t, db, 1, 1, base) // same order, newer creation
	first := seedCard(t, db, 1, 0, base.Add(-2*time.Hour))

	// Excluded: soft-deleted card and another owner's card.
	deleted := seedCard(t, db, 1, 0, base)
	require.NoError(t, db.Model(deleted).Update("is_active", false).Error)
	seedCard(t, db, 2, 0, base)

	cards, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, first.ID, cards[0].ID)
	assert.Equal(t, newer.ID, cards[1].ID, "equal order breaks ties by newest first")
	assert.Equal(t, older.ID, cards[2].ID)
}

func TestListByOwnerEmpty(t *testing.T) {
	repo, _, _ := setupRepo(t)

	cards, err := repo.ListByOwner(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestGetByIDReturnsSoftDeleted(t *testing.T) {
	repo, db, _ := setupRepo(t)
	ctx := context.Background()

	card := seedCard(t, db, 1, 0, time.Now())
	require.NoError(t, db.Model(card).Update("is_active", false).Error)

	got, err := repo.GetByID(ctx, card.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)
	assert.False(t, got.IsActive)
}

func TestGetByIDForeignOwnerIsNotFound(t *testing.T) {
	repo, db, _ := setupRepo(t)
	ctx := context.Background()

	card := seedCard(t, db, 1, 0, time.Now())

	_, err := repo.GetByID(ctx, card.ID, 2)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUpdateOrderSkipsForeignPairs(t *testing.T) {
	repo, db, _ := setupRepo(t)
	ctx := context.Background()

	card := seedCard(t, db, 1, 3, time.Now())

	// Wrong owner: silent no-op, not an error.
	require.NoError(t, repo.UpdateOrder(ctx, card.ID, 2, 9))
	var after models.Card
	require.NoError(t, db.First(&after, card.ID).Error)
	assert.Equal(t, 3, after.Order)

	require.NoError(t, repo.UpdateOrder(ctx, card.ID, 1, 9))
	require.NoError(t, db.First(&after, card.ID).Error)
	assert.Equal(t, 9, after.Order)
}

func TestListCacheInvalidatedOnCreate(t *testing.T) {
	repo, db, mr := setupRepo(t)
	ctx := context.Background()

	seedCard(t, db, 1, 0, time.Now())

	cards, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.True(t, mr.Exists(cache.CardListKey(1)))

	require.NoError(t, repo.Create(ctx, &models.Card{
		Title:           "Second",
		Content:         "Body",
		Type:            models.CardTypeText,
		BackgroundColor: "#ffffff",
		TextColor:       "#000000",
		IsActive:        true,
		CreatedBy:       1,
	}))
	assert.False(t, mr.Exists(cache.CardListKey(1)))

	cards, err = repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestUpdateInvalidatesCardAndList(t *testing.T) {
	repo, db, mr := setupRepo(t)
	ctx := context.Background()

	card := seedCard(t, db, 1, 0, time.Now())

	// Warm both cache entries.
	_, err := repo.GetByID(ctx, card.ID, 1)
	require.NoError(t, err)
	_, err = repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.CardKey(card.ID, 1)))
	require.True(t, mr.Exists(cache.CardListKey(1)))

	card.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, card))
	assert.False(t, mr.Exists(cache.CardKey(card.ID, 1)))
	assert.False(t, mr.Exists(cache.CardListKey(1)))

	got, err := repo.GetByID(ctx, card.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestGetByIDServesCachedEntry(t *testing.T) {
	repo, db, _ := setupRepo(t)
	ctx := context.Background()

	card := seedCard(t, db, 1, 0, time.Now())
	_, err := repo.GetByID(ctx, card.ID, 1)
	require.NoError(t, err)

	// Bypass the repository so the cache and database disagree.
	require.NoError(t, db.Model(card).Update("title", "changed behind the cache").Error)

	got, err := repo.GetByID(ctx, card.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, card.Title, got.Title)
}
