package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	Cover       string    `json:"cover"`
	CategoryID  *int64    `json:"categoryId"`
	IsFeatured  bool      `json:"isFeatured"`
	IsActive    bool      `json:"isActive"`
	IsTrending  bool      `json:"isTrending"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Color struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

type Size struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// ProductInventory is a priced, quantity-tracked variant of a product for a
// specific color/size combination.
type ProductInventory struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"productId"`
	ColorID      int64           `json:"colorId"`
	SizeID       int64           `json:"sizeId"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	NormalPrice  decimal.Decimal `json:"normalPrice"`
	Quantity     int             `json:"quantity"`
	Sold         int             `json:"sold"`
}

// ReviewUser is the reduced projection of the reviewer joined onto reviews.
type ReviewUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
}

type Review struct {
	ID        int64      `json:"id"`
	ProductID int64      `json:"productId"`
	UserID    string     `json:"userId"`
	Comment   string     `json:"comment"`
	Rating    int        `json:"rating"`
	User      ReviewUser `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ProductDetails is a product with every nested relation the storefront
// renders: category lineage, inventory rows, color/size options and, for the
// single-product page, reviews.
type ProductDetails struct {
	Product
	Category  *CategoryChain     `json:"category"`
	Inventory []ProductInventory `json:"inventory"`
	Colors    []Color            `json:"colors"`
	Sizes     []Size             `json:"sizes"`
	Reviews   []Review           `json:"reviews,omitempty"`
}

// ProductFilter is the conjunctive filter set of the list query. Nil fields
// are not applied. Limit and Offset are resolved by the usecase before they
// reach the repository, so the repository never guesses a page size.
type ProductFilter struct {
	CategoryID *int64
	Featured   *bool
	Trending   *bool
	Search     string
	Limit      int
	Offset     int
}

type ProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDetails, error)
	GetProductByID(ctx context.Context, id int64) (*ProductDetails, error)
}
