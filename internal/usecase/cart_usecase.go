package usecase

import (
	"context"
	"fmt"

	"merkato-backend/internal/domain"
	"merkato-backend/pkg/logger"
	"merkato-backend/pkg/utils"
)

type CartUsecase struct {
	cartRepo    domain.CartRepository
	maxQuantity int
}

func NewCartUsecase(cartRepo domain.CartRepository, maxQuantity int) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		maxQuantity: maxQuantity,
	}
}

// GetOrCreateCart returns the user's single cart, creating it with total zero
// on first access. Every call for the same user yields the same cart.
func (u *CartUsecase) GetOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return u.cartRepo.GetOrCreateCart(ctx, userID)
}

// GetCartItems resolves the user's cart (creating it if needed) and returns
// its items joined with product, color, size and inventory detail.
func (u *CartUsecase) GetCartItems(ctx context.Context, userID string) ([]domain.CartItemDetails, error) {
	cart, err := u.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.cartRepo.GetCartItems(ctx, cart.ID)
}

// AddToCart adds quantity of a (product, color, size) combination to the
// user's cart. A combination already present has its quantity incremented;
// there is never a second row for the same key.
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, productID, colorID, sizeID int64, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > u.maxQuantity {
		return nil, fmt.Errorf("quantity exceeds maximum of %d", u.maxQuantity)
	}

	cart, err := u.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := u.cartRepo.UpsertItem(ctx, domain.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		ColorID:   colorID,
		SizeID:    sizeID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}

	u.refreshTotal(ctx, cart.ID)
	return item, nil
}

// UpdateCartItemQuantity sets a line item's quantity. The item must live in
// the calling user's cart; ids from other carts read as not found. Zero or
// below removes the row instead of persisting a non-positive quantity; the
// returned item is nil in that case.
func (u *CartUsecase) UpdateCartItemQuantity(ctx context.Context, userID string, cartItemID int64, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, u.RemoveFromCart(ctx, userID, cartItemID)
	}
	if quantity > u.maxQuantity {
		return nil, fmt.Errorf("quantity exceeds maximum of %d", u.maxQuantity)
	}

	cart, err := u.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := u.cartRepo.UpdateItemQuantity(ctx, cart.ID, cartItemID, quantity)
	if err != nil {
		return nil, err
	}

	u.refreshTotal(ctx, cart.ID)
	return item, nil
}

// RemoveFromCart deletes a line item by id from the calling user's cart.
// Removing an id that is already gone, or one belonging to another user's
// cart, succeeds without touching anything.
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID string, cartItemID int64) error {
	cart, err := u.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.cartRepo.DeleteItem(ctx, cart.ID, cartItemID); err != nil {
		return err
	}

	u.refreshTotal(ctx, cart.ID)
	return nil
}

// refreshTotal recomputes the cart's cached total from its items. A failure
// here never fails the mutation that triggered it; the total is derived data.
func (u *CartUsecase) refreshTotal(ctx context.Context, cartID int64) {
	items, err := u.cartRepo.GetCartItems(ctx, cartID)
	if err != nil {
		logger.Warn().Err(err).Int64("cart_id", cartID).Msg("cart total refresh: load items failed")
		return
	}

	lines := make([]utils.CartLine, 0, len(items))
	for _, item := range items {
		if item.Inventory == nil {
			continue
		}
		lines = append(lines, utils.CartLine{
			Quantity: item.Quantity,
			Price:    item.Inventory.CurrentPrice,
		})
	}

	if err := u.cartRepo.UpdateCartTotal(ctx, cartID, utils.CalculateCartTotal(lines)); err != nil {
		logger.Warn().Err(err).Int64("cart_id", cartID).Msg("cart total refresh: update failed")
	}
}
