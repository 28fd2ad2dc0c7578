// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"cardstack/internal/cache"
	"cardstack/internal/models"
	"cardstack/internal/observability"

	"gorm.io/gorm"
)

// CardRepository defines persistence operations for cards. Every read and
// write is scoped to the owning user; a card belonging to someone else is
// indistinguishable from a card that does not exist.
type CardRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.Card, error)
	// GetByID deliberately does not filter on is_active: an owner can still
	// fetch a soft-deleted card by direct ID.
	GetByID(ctx context.Context, id, ownerID uint) (*models.Card, error)
	Create(ctx context.Context, card *models.Card) error
	Update(ctx context.Context, card *models.Card) error
	// UpdateOrder sets the display order of a single card, conditional on
	// ownership. A non-matching (id, owner) pair is a no-op, not an error.
	UpdateOrder(ctx context.Context, id, ownerID uint, order int) error
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository returns a new CardRepository implementation.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Card, error) {
	defer observability.TrackQuery("list", "cards")()
	var cards []*models.Card

	key := cache.CardListKey(ownerID)
	err := cache.Aside(ctx, key, &cards, cache.CardListTTL, func() error {
		return r.db.WithContext(ctx).
			Where("created_by = ? AND is_active = ?", ownerID, true).
			Order("display_order ASC, created_at DESC").
			Find(&cards).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if cards == nil {
		cards = []*models.Card{}
	}
	return cards, nil
}

func (r *cardRepository) GetByID(ctx context.Context, id, ownerID uint) (*models.Card, error) {
	defer observability.TrackQuery("get", "cards")()
	var card models.Card

	key := cache.CardKey(id, ownerID)
	err := cache.Aside(ctx, key, &card, cache.CardTTL, func() error {
		return r.db.WithContext(ctx).
			Where("id = ? AND created_by = ?", id, ownerID).
			First(&card).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Card", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &card, nil
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	defer observability.TrackQuery("create", "cards")()
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCardList(ctx, card.CreatedBy)
	return nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	defer observability.TrackQuery("update", "cards")()
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCard(ctx, card.ID, card.CreatedBy)
	return nil
}

func (r *cardRepository) UpdateOrder(ctx context.Context, id, ownerID uint, order int) error {
	defer observability.TrackQuery("update_order", "cards")()
	res := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ? AND created_by = ?", id, ownerID).
		Update("display_order", order)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	// RowsAffected == 0 means the pair was not owned by the caller (or the
	// card does not exist); the batch contract is to skip it silently.
	if res.RowsAffected > 0 {
		cache.InvalidateCard(ctx, id, ownerID)
	}
	return nil
}
