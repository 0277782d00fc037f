package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"giftregistry/internal/model"
)

// UserProfileResponse is the caller's own profile, email included.
type UserProfileResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	About     string    `json:"about"`
	Avatar    string    `json:"avatar"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPublicResponse is a profile as seen by other users.
type UserPublicResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	About     string    `json:"about"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OfferResponse is a pledge. User is absent for hidden pledges viewed by
// anyone but the pledger.
type OfferResponse struct {
	ID        uint                `json:"id"`
	Amount    decimal.Decimal     `json:"amount"`
	Hidden    bool                `json:"hidden"`
	ItemID    uint                `json:"itemId"`
	Item      *WishResponse       `json:"item,omitempty"`
	User      *UserPublicResponse `json:"user,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// WishResponse is a wish with its owner and, where loaded, its offers.
type WishResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Link        string             `json:"link"`
	Image       string             `json:"image"`
	Price       decimal.Decimal    `json:"price"`
	Raised      decimal.Decimal    `json:"raised"`
	Description string             `json:"description"`
	Copied      int                `json:"copied"`
	Owner       UserPublicResponse `json:"owner"`
	Offers      []OfferResponse    `json:"offers"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// WishlistResponse is a wishlist with its owner and member wishes.
type WishlistResponse struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Image     string             `json:"image"`
	Owner     UserPublicResponse `json:"owner"`
	Items     []WishResponse     `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// AccessTokenResponse is returned by signin.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func newUserProfile(u *model.User) UserProfileResponse {
	return UserProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		About:     u.About,
		Avatar:    u.Avatar,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newUserPublic(u *model.User) UserPublicResponse {
	return UserPublicResponse{
		ID:        u.ID,
		Username:  u.Username,
		About:     u.About,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newUserProfiles(users []model.User) []UserProfileResponse {
	out := make([]UserProfileResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserProfile(&users[i]))
	}
	return out
}

// newOffer shapes an offer for viewerID. A hidden offer shows its pledger
// to the pledger alone.
func newOffer(o *model.Offer, viewerID uint) OfferResponse {
	resp := OfferResponse{
		ID:        o.ID,
		Amount:    o.Amount,
		Hidden:    o.Hidden,
		ItemID:    o.ItemID,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.User.ID != 0 && (!o.Hidden || o.UserID == viewerID) {
		user := newUserPublic(&o.User)
		resp.User = &user
	}
	if o.Item.ID != 0 {
		item := newWish(&o.Item, viewerID)
		resp.Item = &item
	}
	return resp
}

func newOffers(offers []model.Offer, viewerID uint) []OfferResponse {
	out := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		out = append(out, newOffer(&offers[i], viewerID))
	}
	return out
}

func newWish(w *model.Wish, viewerID uint) WishResponse {
	return WishResponse{
		ID:          w.ID,
		Name:        w.Name,
		Link:        w.Link,
		Image:       w.Image,
		Price:       w.Price,
		Raised:      w.Raised,
		Description: w.Description,
		Copied:      w.Copied,
		Owner:       newUserPublic(&w.Owner),
		Offers:      newOffers(w.Offers, viewerID),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func newWishes(wishes []model.Wish, viewerID uint) []WishResponse {
	out := make([]WishResponse, 0, len(wishes))
	for i := range wishes {
		out = append(out, newWish(&wishes[i], viewerID))
	}
	return out
}

func newWishlist(wl *model.Wishlist, viewerID uint) WishlistResponse {
	return WishlistResponse{
		ID:        wl.ID,
		Name:      wl.Name,
		Image:     wl.Image,
		Owner:     newUserPublic(&wl.Owner),
		Items:     newWishes(wl.Items, viewerID),
		CreatedAt: wl.CreatedAt,
		UpdatedAt: wl.UpdatedAt,
	}
}

func newWishlists(wishlists []model.Wishlist, viewerID uint) []WishlistResponse {
	out := make([]WishlistResponse, 0, len(wishlists))
	for i := range wishlists {
		out = append(out, newWishlist(&wishlists[i], viewerID))
	}
	return out
}
