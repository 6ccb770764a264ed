package usecase

import (
	"context"
	"fmt"

	"merkato-backend/internal/domain"
	"merkato-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	orderRepo domain.OrderRepository
	cartRepo  domain.CartRepository
	txManager domain.TransactionManager
}

func NewOrderUsecase(orderRepo domain.OrderRepository, cartRepo domain.CartRepository, txManager domain.TransactionManager) *OrderUsecase {
	return &OrderUsecase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		txManager: txManager,
	}
}

// GetUserOrders returns the user's orders newest first, with nested items and
// payment details.
func (u *OrderUsecase) GetUserOrders(ctx context.Context, userID string) ([]domain.OrderDetails, error) {
	return u.orderRepo.GetUserOrders(ctx, userID)
}

// CreateOrder inserts a bare order in the pending state with the given total.
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID string, total decimal.Decimal) (*domain.Order, error) {
	return u.orderRepo.CreateOrder(ctx, userID, utils.GenerateOrderID(), total)
}

// Checkout turns the user's cart into an order: one transaction creates the
// order and its items, records a pending payment row, then empties the cart.
// Lines without an inventory row cannot be priced and abort the checkout.
func (u *OrderUsecase) Checkout(ctx context.Context, userID, paymentProvider string) (*domain.OrderDetails, error) {
	cart, err := u.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := u.cartRepo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	lines := make([]utils.CartLine, 0, len(items))
	for _, item := range items {
		if item.Inventory == nil {
			return nil, fmt.Errorf("no inventory for product %d (color %d, size %d)",
				item.ProductID, item.ColorID, item.SizeID)
		}
		lines = append(lines, utils.CartLine{
			Quantity: item.Quantity,
			Price:    item.Inventory.CurrentPrice,
		})
	}
	total := utils.CalculateCartTotal(lines)

	var details *domain.OrderDetails
	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := u.orderRepo.CreateOrder(txCtx, userID, utils.GenerateOrderID(), total)
		if err != nil {
			return err
		}

		orderItems := make([]domain.OrderItem, 0, len(items))
		for _, item := range items {
			created, err := u.orderRepo.AddOrderItem(txCtx, domain.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				InventoryID: item.Inventory.ID,
				Quantity:    item.Quantity,
			})
			if err != nil {
				return err
			}
			created.Product = item.Product
			created.Inventory = item.Inventory
			orderItems = append(orderItems, *created)
		}

		payment, err := u.orderRepo.CreatePaymentDetails(txCtx, order.ID, total, paymentProvider)
		if err != nil {
			return err
		}

		if err := u.cartRepo.ClearItems(txCtx, cart.ID); err != nil {
			return err
		}
		if err := u.cartRepo.UpdateCartTotal(txCtx, cart.ID, decimal.Zero); err != nil {
			return err
		}

		details = &domain.OrderDetails{
			Order:   *order,
			Items:   orderItems,
			Payment: payment,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}
