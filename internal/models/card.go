package models

import "time"

// Card type enumeration. No other value is ever persisted.
const (
	CardTypeText          = "text"
	CardTypeImage         = "image"
	CardTypeMixed         = "mixed"
	CardTypeInteractive   = "interactive"
	CardTypeLargeFeatured = "large-featured"
)

// Card is a user-owned, ordered, soft-deletable content unit.
//
// The JSON names are camelCase to match the public API contract. Order is
// stored as display_order because "order" is a reserved word in SQL.
// Soft deletion is the IsActive flag, not gorm.DeletedAt: inactive cards
// drop out of listings but stay addressable by ID for their owner.
type Card struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:100;not null" json:"title"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	Type            string    `gorm:"size:32;not null;index:idx_cards_type_active" json:"type"`
	ImageURL        string    `json:"imageUrl"`
	ButtonText      string    `gorm:"size:50" json:"buttonText"`
	ButtonAction    string    `gorm:"size:200" json:"buttonAction"`
	BackgroundColor string    `gorm:"size:32;default:#ffffff" json:"backgroundColor"`
	TextColor       string    `gorm:"size:32;default:#000000" json:"textColor"`
	Order           int       `gorm:"column:display_order;default:0;index:idx_cards_owner_order,priority:2" json:"order"`
	IsActive        bool      `gorm:"default:true;index:idx_cards_type_active,priority:2" json:"isActive"`
	CreatedBy       uint      `gorm:"not null;index:idx_cards_owner_order,priority:1" json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
