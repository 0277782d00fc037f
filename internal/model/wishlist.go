package model

import "time"

// Wishlist is a named, owned collection of wishes.
type Wishlist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:250;not null"`
	Image     string    `json:"image" gorm:"size:2048;not null"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner User   `json:"owner" gorm:"foreignKey:OwnerID"`
	Items []Wish `json:"items" gorm:"many2many:wishlist_items;"`
}
