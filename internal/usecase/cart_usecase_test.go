package usecase

import (
	"context"
	"testing"

	"merkato-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCartRepo mimics the storage-level semantics the cart relies on: the
// one-cart-per-user upsert and the quantity-merging line item upsert.
type fakeCartRepo struct {
	nextCartID int64
	nextItemID int64
	carts      map[string]*domain.Cart
	items      map[int64]*domain.CartItem
	prices     map[int64]decimal.Decimal
	totals     map[int64]decimal.Decimal
	cleared    []int64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts:  make(map[string]*domain.Cart),
		items:  make(map[int64]*domain.CartItem),
		prices: make(map[int64]decimal.Decimal),
		totals: make(map[int64]decimal.Decimal),
	}
}

func (f *fakeCartRepo) GetOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if cart, ok := f.carts[userID]; ok {
		return cart, nil
	}
	f.nextCartID++
	cart := &domain.Cart{ID: f.nextCartID, UserID: userID, Total: decimal.Zero}
	f.carts[userID] = cart
	return cart, nil
}

func (f *fakeCartRepo) GetCartItems(ctx context.Context, cartID int64) ([]domain.CartItemDetails, error) {
	var details []domain.CartItemDetails
	for _, item := range f.items {
		if item.CartID != cartID {
			continue
		}
		d := domain.CartItemDetails{CartItem: *item}
		if price, ok := f.prices[item.ProductID]; ok {
			d.Inventory = &domain.ProductInventory{ID: item.ProductID, CurrentPrice: price}
		}
		details = append(details, d)
	}
	return details, nil
}

func (f *fakeCartRepo) UpsertItem(ctx context.Context, item domain.CartItem) (*domain.CartItem, error) {
	for _, existing := range f.items {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID &&
			existing.ColorID == item.ColorID && existing.SizeID == item.SizeID {
			existing.Quantity += item.Quantity
			cp := *existing
			return &cp, nil
		}
	}
	f.nextItemID++
	item.ID = f.nextItemID
	f.items[item.ID] = &item
	cp := item
	return &cp, nil
}

func (f *fakeCartRepo) UpdateItemQuantity(ctx context.Context, cartID, cartItemID int64, quantity int) (*domain.CartItem, error) {
	item, ok := f.items[cartItemID]
	if !ok || item.CartID != cartID {
		return nil, domain.ErrNotFound
	}
	item.Quantity = quantity
	cp := *item
	return &cp, nil
}

func (f *fakeCartRepo) DeleteItem(ctx context.Context, cartID, cartItemID int64) error {
	if item, ok := f.items[cartItemID]; ok && item.CartID == cartID {
		delete(f.items, cartItemID)
	}
	return nil
}

func (f *fakeCartRepo) ClearItems(ctx context.Context, cartID int64) error {
	f.cleared = append(f.cleared, cartID)
	for id, item := range f.items {
		if item.CartID == cartID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeCartRepo) UpdateCartTotal(ctx context.Context, cartID int64, total decimal.Decimal) error {
	f.totals[cartID] = total
	return nil
}

func TestGetOrCreateCartIsStable(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecase(repo, 100)

	first, err := uc.GetOrCreateCart(context.Background(), "user-1")
	require.NoError(t, err)
	second, err := uc.GetOrCreateCart(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Total.Equal(decimal.Zero))
}

func TestAddToCartMergesQuantities(t *testing.T) {
	repo := newFakeCartRepo()
	repo.prices[10] = decimal.NewFromInt(50)
	uc := NewCartUsecase(repo, 100)
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "user-1", 10, 1, 2, 2)
	require.NoError(t, err)
	item, err := uc.AddToCart(ctx, "user-1", 10, 1, 2, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)
	assert.Len(t, repo.items, 1)

	// A different color is a different line.
	_, err = uc.AddToCart(ctx, "user-1", 10, 2, 2, 1)
	require.NoError(t, err)
	assert.Len(t, repo.items, 2)
}

func TestAddToCartDefaultsAndLimits(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecase(repo, 10)
	ctx := context.Background()

	item, err := uc.AddToCart(ctx, "user-1", 10, 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	_, err = uc.AddToCart(ctx, "user-1", 11, 1, 1, 11)
	assert.Error(t, err)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecase(repo, 100)
	ctx := context.Background()

	added, err := uc.AddToCart(ctx, "user-1", 10, 1, 1, 2)
	require.NoError(t, err)

	item, err := uc.UpdateCartItemQuantity(ctx, "user-1", added.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	// Zero removes the row instead of persisting it.
	item, err = uc.UpdateCartItemQuantity(ctx, "user-1", added.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.Empty(t, repo.items)

	// Negative behaves like zero, and removing the already-gone row succeeds.
	item, err = uc.UpdateCartItemQuantity(ctx, "user-1", added.ID, -5)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	repo := newFakeCartRepo()
	uc := NewCartUsecase(repo, 100)
	ctx := context.Background()

	added, err := uc.AddToCart(ctx, "user-1", 10, 1, 1, 1)
	require.NoError(t, err)

	require.NoError(t, uc.RemoveFromCart(ctx, "user-1", added.ID))
	require.NoError(t, uc.RemoveFromCart(ctx, "user-1", added.ID))
}

func TestCartMutationsScopedToOwner(t *testing.T) {
	repo := newFakeCartRepo()
	repo.prices[10] = decimal.NewFromInt(50)
	uc := NewCartUsecase(repo, 100)
	ctx := context.Background()

	added, err := uc.AddToCart(ctx, "user-1", 10, 1, 1, 2)
	require.NoError(t, err)

	// Another user updating the item by id gets not found.
	_, err = uc.UpdateCartItemQuantity(ctx, "user-2", added.ID, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, repo.items[added.ID].Quantity)

	// Another user removing it succeeds quietly without touching the row.
	require.NoError(t, uc.RemoveFromCart(ctx, "user-2", added.ID))
	assert.Len(t, repo.items, 1)

	// The owner still can.
	item, err := uc.UpdateCartItemQuantity(ctx, "user-1", added.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	require.NoError(t, uc.RemoveFromCart(ctx, "user-1", added.ID))
	assert.Empty(t, repo.items)
}

func TestCartTotalTracksItems(t *testing.T) {
	repo := newFakeCartRepo()
	repo.prices[10] = decimal.NewFromInt(50)
	repo.prices[11] = decimal.NewFromInt(100)
	uc := NewCartUsecase(repo, 100)
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "user-1", 10, 1, 1, 2)
	require.NoError(t, err)
	_, err = uc.AddToCart(ctx, "user-1", 11, 1, 1, 1)
	require.NoError(t, err)

	cart := repo.carts["user-1"]
	assert.True(t, repo.totals[cart.ID].Equal(decimal.NewFromInt(200)),
		"expected total 200, got %s", repo.totals[cart.ID])
}
