package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a single pledge from one user toward another user's wish.
type Offer struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Hidden    bool            `json:"hidden" gorm:"not null;default:false"`
	ItemID    uint            `json:"item_id" gorm:"not null;index"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	Item Wish `json:"item" gorm:"foreignKey:ItemID"`
	User User `json:"user" gorm:"foreignKey:UserID"`
}
