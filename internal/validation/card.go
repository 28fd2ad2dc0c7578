// Package validation contains pure input validation rules, kept separate
// from the storage layer so they are testable without a database.
package validation

import (
	"regexp"
	"unicode/utf8"

	"cardstack/internal/models"
)

const (
	MaxTitleLen        = 100
	MaxContentLen      = 1000
	MaxButtonTextLen   = 50
	MaxButtonActionLen = 200
)

// imageURLPattern accepts any http or https URL with at least one character
// after the scheme.
var imageURLPattern = regexp.MustCompile(`^https?://.+`)

var cardTypes = map[string]struct{}{
	models.CardTypeText:          {},
	models.CardTypeImage:         {},
	models.CardTypeMixed:         {},
	models.CardTypeInteractive:   {},
	models.CardTypeLargeFeatured: {},
}

// ValidCardType reports whether t is one of the five allowed card types.
func ValidCardType(t string) bool {
	_, ok := cardTypes[t]
	return ok
}

// ValidImageURL reports whether u is empty or a scheme-prefixed URL.
// An absent image URL is always valid.
func ValidImageURL(u string) bool {
	return u == "" || imageURLPattern.MatchString(u)
}

// ValidateCard enforces the full card field contract. It assumes title and
// content have already been trimmed. Returns a *models.AppError with code
// VALIDATION_ERROR on the first violated rule, nil otherwise.
func ValidateCard(card *models.Card) error {
	if card.Title == "" || card.Content == "" || card.Type == "" {
		return models.NewValidationError("Title, content, and type are required")
	}
	// Limits count characters, not bytes
	if utf8.RuneCountInString(card.Title) > MaxTitleLen {
		return models.NewValidationError("Title too long (max 100 characters)")
	}
	if utf8.RuneCountInString(card.Content) > MaxContentLen {
		return models.NewValidationError("Content too long (max 1000 characters)")
	}
	if !ValidCardType(card.Type) {
		return models.NewValidationError("Invalid card type")
	}
	if !ValidImageURL(card.ImageURL) {
		return models.NewValidationError("Invalid image URL")
	}
	if utf8.RuneCountInString(card.ButtonText) > MaxButtonTextLen {
		return models.NewValidationError("Button text too long (max 50 characters)")
	}
	if utf8.RuneCountInString(card.ButtonAction) > MaxButtonActionLen {
		return models.NewValidationError("Button action too long (max 200 characters)")
	}
	return nil
}
