package model

import "time"

const (
	// DefaultAbout is stored when a user signs up without a bio.
	DefaultAbout = "Nothing told about myself yet"
	// DefaultAvatar is stored when a user signs up without an avatar.
	DefaultAvatar = "https://i.pravatar.cc/300"
)

// User represents a registered gift registry member.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	About        string    `json:"about" gorm:"size:200;not null"`
	Avatar       string    `json:"avatar" gorm:"size:2048;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Wishes    []Wish     `json:"-" gorm:"foreignKey:OwnerID"`
	Offers    []Offer    `json:"-" gorm:"foreignKey:UserID"`
	Wishlists []Wishlist `json:"-" gorm:"foreignKey:OwnerID"`
}
