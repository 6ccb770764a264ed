package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Cart is one-per-user. The unique index on user_id is what makes
// GetOrCreateCart safe under concurrent first-time reads; the repository
// upserts against it instead of doing a racy read-then-insert.
type Cart struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CartItem line items are keyed by (cart_id, product_id, color_id, size_id).
// Adding the same key again merges quantities, never a second row.
type CartItem struct {
	ID        int64     `json:"id"`
	CartID    int64     `json:"cartId"`
	ProductID int64     `json:"productId"`
	ColorID   int64     `json:"colorId"`
	SizeID    int64     `json:"sizeId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItemDetails is a cart item joined with the relations the cart page
// renders: the product, the selected color/size and the matching inventory
// row (which carries the price).
type CartItemDetails struct {
	CartItem
	Product   Product           `json:"product"`
	Color     *Color            `json:"color"`
	Size      *Size             `json:"size"`
	Inventory *ProductInventory `json:"inventory"`
}

type CartRepository interface {
	// GetOrCreateCart returns the user's cart, creating it with total zero on
	// first access. Must be atomic: concurrent calls for the same user return
	// the same cart.
	GetOrCreateCart(ctx context.Context, userID string) (*Cart, error)

	GetCartItems(ctx context.Context, cartID int64) ([]CartItemDetails, error)

	// UpsertItem inserts the line item or, when the (cart, product, color,
	// size) key already exists, increments its quantity by the given amount.
	UpsertItem(ctx context.Context, item CartItem) (*CartItem, error)

	// UpdateItemQuantity sets the quantity of an existing row. The row must
	// belong to the given cart; ErrNotFound covers both a gone row and a row
	// in someone else's cart.
	UpdateItemQuantity(ctx context.Context, cartID, cartItemID int64, quantity int) (*CartItem, error)

	// DeleteItem removes a row by id, scoped to the given cart. Deleting an
	// absent id is not an error.
	DeleteItem(ctx context.Context, cartID, cartItemID int64) error

	// ClearItems empties a cart (checkout).
	ClearItems(ctx context.Context, cartID int64) error

	// UpdateCartTotal persists the cached total column.
	UpdateCartTotal(ctx context.Context, cartID int64, total decimal.Decimal) error
}
