package domain

import (
	"context"
	"time"
)

// WishlistEntry is a plain (user, product) join row. The data layer does not
// deduplicate; adding the same product twice yields two rows, matching the
// storefront's historical behavior.
type WishlistEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	ProductID int64     `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type WishlistRepository interface {
	GetWishlist(ctx context.Context, userID string) ([]WishlistEntry, error)
	AddEntry(ctx context.Context, userID string, productID int64) (*WishlistEntry, error)
	RemoveEntry(ctx context.Context, userID string, productID int64) error
}
