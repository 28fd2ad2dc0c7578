package server

import (
	"encoding/json"

	"cardstack/internal/models"
	"cardstack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCards handles GET /api/cards. It returns the caller's active cards
// ordered by display order ascending, then creation time descending.
func (s *Server) GetCards(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	cards, err := s.cardService.ListCards(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(cards)
}

// GetCard handles GET /api/cards/:id. Soft-deleted cards are still returned
// to their owner; a card owned by someone else is a 404.
func (s *Server) GetCard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	cardID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	card, err := s.cardService.GetCard(c.Context(), userID, cardID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(card)
}

// CreateCard handles POST /api/cards
func (s *Server) CreateCard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title           string `json:"title"`
		Content         string `json:"content"`
		Type            string `json:"type"`
		ImageURL        string `json:"imageUrl"`
		ButtonText      string `json:"buttonText"`
		ButtonAction    string `json:"buttonAction"`
		BackgroundColor string `json:"backgroundColor"`
		TextColor       string `json:"textColor"`
		Order           int    `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	card, err := s.cardService.CreateCard(c.Context(), service.CreateCardInput{
		OwnerID:         userID,
		Title:           req.Title,
		Content:         req.Content,
		Type:            req.Type,
		ImageURL:        req.ImageURL,
		ButtonText:      req.ButtonText,
		ButtonAction:    req.ButtonAction,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
		Order:           req.Order,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(card)
}

// UpdateCard handles PUT /api/cards/:id. Pointer fields distinguish "omitted"
// from "explicitly set to the zero value"; the non-pointer fields keep their
// old value when the payload carries an empty string.
func (s *Server) UpdateCard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	cardID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title           string  `json:"title"`
		Content         string  `json:"content"`
		Type            string  `json:"type"`
		BackgroundColor string  `json:"backgroundColor"`
		TextColor       string  `json:"textColor"`
		ImageURL        *string `json:"imageUrl"`
		ButtonText      *string `json:"buttonText"`
		ButtonAction    *string `json:"buttonAction"`
		Order           *int    `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// An explicit JSON null counts as present for these fields and blanks
	// them, while an absent key keeps the stored value. BodyParser leaves
	// both as nil pointers, so presence is recovered from the raw body.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err == nil {
		if _, ok := raw["imageUrl"]; ok && req.ImageURL == nil {
			req.ImageURL = new(string)
		}
		if _, ok := raw["buttonText"]; ok && req.ButtonText == nil {
			req.ButtonText = new(string)
		}
		if _, ok := raw["buttonAction"]; ok && req.ButtonAction == nil {
			req.ButtonAction = new(string)
		}
		if _, ok := raw["order"]; ok && req.Order == nil {
			req.Order = new(int)
		}
	}

	card, err := s.cardService.UpdateCard(c.Context(), service.UpdateCardInput{
		OwnerID:         userID,
		CardID:          cardID,
		Title:           req.Title,
		Content:         req.Content,
		Type:            req.Type,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
		ImageURL:        req.ImageURL,
		ButtonText:      req.ButtonText,
		ButtonAction:    req.ButtonAction,
		Order:           req.Order,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(card)
}

// DeleteCard handles DELETE /api/cards/:id (soft delete)
func (s *Server) DeleteCard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	cardID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.cardService.DeleteCard(c.Context(), userID, cardID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Card deleted successfully"})
}

// ReorderCards handles PATCH /api/cards/reorder. The batch is best-effort:
// pairs not owned by the caller are skipped silently and the operation still
// reports success.
func (s *Server) ReorderCards(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		CardOrders []service.CardOrder `json:"cardOrders"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	// A missing or null cardOrders field parses to nil; an empty array is a
	// valid (no-op) batch.
	if req.CardOrders == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("cardOrders must be an array"))
	}

	if err := s.cardService.ReorderCards(c.Context(), userID, req.CardOrders); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Cards reordered successfully"})
}
