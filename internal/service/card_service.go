package service

import (
	"context"
	"strings"

	"cardstack/internal/models"
	"cardstack/internal/repository"
	"cardstack/internal/validation"
)

// CardService implements the owner-scoped card operations on top of the
// repository. All field-level validation happens here, before any
// persistence attempt.
type CardService struct {
	cardRepo repository.CardRepository
}

// CreateCardInput carries the create payload plus the authenticated owner.
type CreateCardInput struct {
	OwnerID         uint
	Title           string
	Content         string
	Type            string
	ImageURL        string
	ButtonText      string
	ButtonAction    string
	BackgroundColor string
	TextColor       string
	Order           int
}

// UpdateCardInput carries a partial update. Two merge rules coexist, matching
// the historical API contract: Title, Content, Type, BackgroundColor and
// TextColor are replace-if-non-empty (an empty string keeps the old value),
// while ImageURL, ButtonText, ButtonAction and Order are replace-if-present
// (a nil pointer keeps the old value, a pointer to the zero value applies it).
type UpdateCardInput struct {
	OwnerID         uint
	CardID          uint
	Title           string
	Content         string
	Type            string
	BackgroundColor string
	TextColor       string
	ImageURL        *string
	ButtonText      *string
	ButtonAction    *string
	Order           *int
}

// CardOrder is one (id, order) pair of a reorder batch.
type CardOrder struct {
	ID    uint `json:"id"`
	Order int  `json:"order"`
}

// NewCardService returns a CardService backed by the given repository.
func NewCardService(cardRepo repository.CardRepository) *CardService {
	return &CardService{cardRepo: cardRepo}
}

// ListCards returns the caller's active cards ordered by display order
// ascending, then creation time descending.
func (s *CardService) ListCards(ctx context.Context, ownerID uint) ([]*models.Card, error) {
	return s.cardRepo.ListByOwner(ctx, ownerID)
}

// GetCard returns a single card by ID, scoped to the caller. Soft-deleted
// cards are still returned to their owner.
func (s *CardService) GetCard(ctx context.Context, ownerID, cardID uint) (*models.Card, error) {
	return s.cardRepo.GetByID(ctx, cardID, ownerID)
}

// CreateCard validates the payload, applies defaults and persists a new card
// owned by the caller.
func (s *CardService) CreateCard(ctx context.Context, in CreateCardInput) (*models.Card, error) {
	card := &models.Card{
		Title:           strings.TrimSpace(in.Title),
		Content:         strings.TrimSpace(in.Content),
		Type:            in.Type,
		ImageURL:        in.ImageURL,
		ButtonText:      in.ButtonText,
		ButtonAction:    in.ButtonAction,
		BackgroundColor: in.BackgroundColor,
		TextColor:       in.TextColor,
		Order:           in.Order,
		IsActive:        true,
		CreatedBy:       in.OwnerID,
	}

	if card.BackgroundColor == "" {
		card.BackgroundColor = "#ffffff"
	}
	if card.TextColor == "" {
		card.TextColor = "#000000"
	}

	if err := validation.ValidateCard(card); err != nil {
		return nil, err
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCard merges the partial payload into the caller's card and persists
// it. The owner is never changed. The merged record is re-validated against
// the full field contract before the write.
func (s *CardService) UpdateCard(ctx context.Context, in UpdateCardInput) (*models.Card, error) {
	card, err := s.cardRepo.GetByID(ctx, in.CardID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	// Type is only checked when supplied.
	if in.Type != "" && !validation.ValidCardType(in.Type) {
		return nil, models.NewValidationError("Invalid card type")
	}

	if in.Title != "" {
		card.Title = strings.TrimSpace(in.Title)
	}
	if in.Content != "" {
		card.Content = strings.TrimSpace(in.Content)
	}
	if in.Type != "" {
		card.Type = in.Type
	}
	if in.BackgroundColor != "" {
		card.BackgroundColor = in.BackgroundColor
	}
	if in.TextColor != "" {
		card.TextColor = in.TextColor
	}
	if in.ImageURL != nil {
		card.ImageURL = *in.ImageURL
	}
	if in.ButtonText != nil {
		card.ButtonText = *in.ButtonText
	}
	if in.ButtonAction != nil {
		card.ButtonAction = *in.ButtonAction
	}
	if in.Order != nil {
		card.Order = *in.Order
	}

	if err := validation.ValidateCard(card); err != nil {
		return nil, err
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard soft-deletes the caller's card by flipping isActive. The record
// is retained and stays readable by direct ID lookup. There is no
// resurrection operation.
func (s *CardService) DeleteCard(ctx context.Context, ownerID, cardID uint) error {
	card, err := s.cardRepo.GetByID(ctx, cardID, ownerID)
	if err != nil {
		return err
	}

	card.IsActive = false
	return s.cardRepo.Update(ctx, card)
}

// ReorderCards applies a batch of (id, order) pairs as independent updates,
// each conditional on ownership. Pairs that do not match a card owned by the
// caller are skipped silently; the batch is not atomic. Only a storage fault
// aborts the loop.
func (s *CardService) ReorderCards(ctx context.Context, ownerID uint, orders []CardOrder) error {
	for _, co := range orders {
		if err := s.cardRepo.UpdateOrder(ctx, co.ID, ownerID, co.Order); err != nil {
			return err
		}
	}
	return nil
}
