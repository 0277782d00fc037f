package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wish is a funding target: a gift with a price ceiling and the running
// total of pledges made toward it. Raised never exceeds Price.
type Wish struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:250;not null"`
	Link        string          `json:"link" gorm:"size:2048;not null"`
	Image       string          `json:"image" gorm:"size:2048;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Raised      decimal.Decimal `json:"raised" gorm:"type:decimal(12,2);not null;default:0"`
	Description string          `json:"description" gorm:"size:1024;not null"`
	Copied      int             `json:"copied" gorm:"not null;default:0;index"`
	OwnerID     uint            `json:"owner_id" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Owner  User    `json:"owner" gorm:"foreignKey:OwnerID"`
	Offers []Offer `json:"offers,omitempty" gorm:"foreignKey:ItemID"`
}

// FundingStarted reports whether any money has been pledged. Once true the
// price can no longer change.
func (w *Wish) FundingStarted() bool {
	return w.Raised.GreaterThan(decimal.Zero)
}
