package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        int64           `json:"id"`
	OrderNo   string          `json:"orderNo"`
	UserID    string          `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ID          int64             `json:"id"`
	OrderID     int64             `json:"orderId"`
	ProductID   int64             `json:"productId"`
	InventoryID int64             `json:"inventoryId"`
	Quantity    int               `json:"quantity"`
	Product     Product           `json:"product"`
	Inventory   *ProductInventory `json:"inventory"`
}

type PaymentDetails struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	Amount    decimal.Decimal `json:"amount"`
	Provider  string          `json:"provider"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OrderDetails is an order with its nested items and payment row, the shape
// the order history page consumes.
type OrderDetails struct {
	Order
	Items   []OrderItem     `json:"items"`
	Payment *PaymentDetails `json:"payment"`
}

type OrderRepository interface {
	// GetUserOrders returns the user's orders, newest first, with items
	// (product + inventory) and payment details attached.
	GetUserOrders(ctx context.Context, userID string) ([]OrderDetails, error)

	// CreateOrder inserts a new order with status OrderStatusPending.
	CreateOrder(ctx context.Context, userID, orderNo string, total decimal.Decimal) (*Order, error)

	AddOrderItem(ctx context.Context, item OrderItem) (*OrderItem, error)
	CreatePaymentDetails(ctx context.Context, orderID int64, amount decimal.Decimal, provider string) (*PaymentDetails, error)
}
