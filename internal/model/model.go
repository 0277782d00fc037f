// Package model holds the gorm entities of the gift registry.
package model

// All returns every entity managed by AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Wish{},
		&Offer{},
		&Wishlist{},
		&PledgeLog{},
	}
}
