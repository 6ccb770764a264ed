package usecase

import (
	"context"
	"strings"
	"testing"

	"merkato-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	nextOrderID int64
	orders      []domain.Order
	items       []domain.OrderItem
	payments    []domain.PaymentDetails
}

func (f *fakeOrderRepo) GetUserOrders(ctx context.Context, userID string) ([]domain.OrderDetails, error) {
	var out []domain.OrderDetails
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, domain.OrderDetails{Order: o})
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, userID, orderNo string, total decimal.Decimal) (*domain.Order, error) {
	f.nextOrderID++
	order := domain.Order{
		ID:      f.nextOrderID,
		OrderNo: orderNo,
		UserID:  userID,
		Total:   total,
		Status:  domain.OrderStatusPending,
	}
	f.orders = append(f.orders, order)
	return &order, nil
}

func (f *fakeOrderRepo) AddOrderItem(ctx context.Context, item domain.OrderItem) (*domain.OrderItem, error) {
	item.ID = int64(len(f.items) + 1)
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeOrderRepo) CreatePaymentDetails(ctx context.Context, orderID int64, amount decimal.Decimal, provider string) (*domain.PaymentDetails, error) {
	payment := domain.PaymentDetails{
		ID:       int64(len(f.payments) + 1),
		OrderID:  orderID,
		Amount:   amount,
		Provider: provider,
		Status:   domain.PaymentStatusPending,
	}
	f.payments = append(f.payments, payment)
	return &payment, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCheckoutEmptyCart(t *testing.T) {
	cartRepo := newFakeCartRepo()
	uc := NewOrderUsecase(&fakeOrderRepo{}, cartRepo, fakeTxManager{})

	_, err := uc.Checkout(context.Background(), "user-1", "telebirr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestCheckoutFailsOnUnpriceableLine(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartUC := NewCartUsecase(cartRepo, 100)
	ctx := context.Background()

	// No price registered for product 10, so the line has no inventory row.
	_, err := cartUC.AddToCart(ctx, "user-1", 10, 1, 1, 1)
	require.NoError(t, err)

	uc := NewOrderUsecase(&fakeOrderRepo{}, cartRepo, fakeTxManager{})
	_, err = uc.Checkout(ctx, "user-1", "telebirr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no inventory")
}

func TestCheckoutCreatesOrderAndEmptiesCart(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.prices[10] = decimal.NewFromInt(50)
	cartRepo.prices[11] = decimal.NewFromInt(100)
	cartUC := NewCartUsecase(cartRepo, 100)
	ctx := context.Background()

	_, err := cartUC.AddToCart(ctx, "user-1", 10, 1, 1, 2)
	require.NoError(t, err)
	_, err = cartUC.AddToCart(ctx, "user-1", 11, 1, 1, 1)
	require.NoError(t, err)

	orderRepo := &fakeOrderRepo{}
	uc := NewOrderUsecase(orderRepo, cartRepo, fakeTxManager{})

	details, err := uc.Checkout(ctx, "user-1", "telebirr")
	require.NoError(t, err)

	assert.True(t, details.Total.Equal(decimal.NewFromInt(200)), "total was %s", details.Total)
	assert.Equal(t, domain.OrderStatusPending, details.Status)
	assert.True(t, strings.HasPrefix(details.OrderNo, "ORD-"))
	assert.Len(t, details.Items, 2)

	require.NotNil(t, details.Payment)
	assert.Equal(t, "telebirr", details.Payment.Provider)
	assert.Equal(t, domain.PaymentStatusPending, details.Payment.Status)
	assert.True(t, details.Payment.Amount.Equal(details.Total))

	// Cart is emptied and its cached total reset inside the same transaction.
	cart := cartRepo.carts["user-1"]
	assert.Empty(t, cartRepo.items)
	assert.Contains(t, cartRepo.cleared, cart.ID)
	assert.True(t, cartRepo.totals[cart.ID].Equal(decimal.Zero))
}

func TestGetUserOrders(t *testing.T) {
	orderRepo := &fakeOrderRepo{}
	_, err := orderRepo.CreateOrder(context.Background(), "user-1", "ORD-X", decimal.NewFromInt(10))
	require.NoError(t, err)

	uc := NewOrderUsecase(orderRepo, newFakeCartRepo(), fakeTxManager{})
	orders, err := uc.GetUserOrders(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = uc.GetUserOrders(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, orders)
}
