package postgres

import (
	"context"

	"merkato-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

// GetUserOrders returns the user's orders newest first, each with its items
// (joined with product and inventory) and payment details.
func (r *orderRepository) GetUserOrders(ctx context.Context, userID string) ([]domain.OrderDetails, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_no, user_id, total, status, created_at, updated_at
		FROM order_details
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.OrderDetails
	index := make(map[int64]*domain.OrderDetails)
	var ids []int64
	for rows.Next() {
		var o domain.Order
		var total pgtype.Numeric
		if err := rows.Scan(&o.ID, &o.OrderNo, &o.UserID, &total, &o.Status,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Total = numericToDecimal(total)
		orders = append(orders, domain.OrderDetails{Order: o})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		index[orders[i].ID] = &orders[i]
		ids = append(ids, orders[i].ID)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.loadOrderItems(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := r.loadPayments(ctx, ids, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) loadOrderItems(ctx context.Context, ids []int64, index map[int64]*domain.OrderDetails) error {
	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.inventory_id, oi.quantity,
		       p.id, p.name, p.description, p.summary, p.cover, p.category_id,
		       p.is_featured, p.is_active, p.is_trending, p.created_at, p.updated_at,
		       inv.id, inv.product_id, inv.color_id, inv.size_id,
		       inv.current_price, inv.normal_price, inv.quantity, inv.sold
		FROM order_item oi
		JOIN products p ON p.id = oi.product_id
		LEFT JOIN products_inventory inv ON inv.id = oi.inventory_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var invID, invProductID, invColorID, invSizeID *int64
		var invQuantity, invSold *int
		var current, normal pgtype.Numeric

		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.InventoryID, &item.Quantity,
			&item.Product.ID, &item.Product.Name, &item.Product.Description, &item.Product.Summary,
			&item.Product.Cover, &item.Product.CategoryID,
			&item.Product.IsFeatured, &item.Product.IsActive, &item.Product.IsTrending,
			&item.Product.CreatedAt, &item.Product.UpdatedAt,
			&invID, &invProductID, &invColorID, &invSizeID,
			&current, &normal, &invQuantity, &invSold,
		); err != nil {
			return err
		}

		if invID != nil {
			item.Inventory = &domain.ProductInventory{
				ID:           *invID,
				ProductID:    *invProductID,
				ColorID:      *invColorID,
				SizeID:       *invSizeID,
				CurrentPrice: numericToDecimal(current),
				NormalPrice:  numericToDecimal(normal),
				Quantity:     *invQuantity,
				Sold:         *invSold,
			}
		}
		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *orderRepository) loadPayments(ctx context.Context, ids []int64, index map[int64]*domain.OrderDetails) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, amount, provider, status, created_at
		FROM payment_details
		WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.PaymentDetails
		var amount pgtype.Numeric
		if err := rows.Scan(&p.ID, &p.OrderID, &amount, &p.Provider, &p.Status, &p.CreatedAt); err != nil {
			return err
		}
		p.Amount = numericToDecimal(amount)
		if o, ok := index[p.OrderID]; ok {
			payment := p
			o.Payment = &payment
		}
	}
	return rows.Err()
}

// CreateOrder inserts a new order in the pending initial state. Status
// transitions beyond pending belong to the payment callback flow, which is
// not part of this service.
func (r *orderRepository) CreateOrder(ctx context.Context, userID, orderNo string, total decimal.Decimal) (*domain.Order, error) {
	row := querier(ctx, r.db).QueryRow(ctx, `
		INSERT INTO order_details (order_no, user_id, total, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_no, user_id, total, status, created_at, updated_at`,
		orderNo, userID, decimalToNumeric(total), domain.OrderStatusPending)

	var o domain.Order
	var totalOut pgtype.Numeric
	if err := row.Scan(&o.ID, &o.OrderNo, &o.UserID, &totalOut, &o.Status,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Total = numericToDecimal(totalOut)
	return &o, nil
}

func (r *orderRepository) AddOrderItem(ctx context.Context, item domain.OrderItem) (*domain.OrderItem, error) {
	row := querier(ctx, r.db).QueryRow(ctx, `
		INSERT INTO order_item (order_id, product_id, inventory_id, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, product_id, inventory_id, quantity`,
		item.OrderID, item.ProductID, item.InventoryID, item.Quantity)

	var out domain.OrderItem
	if err := row.Scan(&out.ID, &out.OrderID, &out.ProductID, &out.InventoryID, &out.Quantity); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *orderRepository) CreatePaymentDetails(ctx context.Context, orderID int64, amount decimal.Decimal, provider string) (*domain.PaymentDetails, error) {
	row := querier(ctx, r.db).QueryRow(ctx, `
		INSERT INTO payment_details (order_id, amount, provider, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, amount, provider, status, created_at`,
		orderID, decimalToNumeric(amount), provider, domain.PaymentStatusPending)

	var p domain.PaymentDetails
	var amountOut pgtype.Numeric
	if err := row.Scan(&p.ID, &p.OrderID, &amountOut, &p.Provider, &p.Status, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Amount = numericToDecimal(amountOut)
	return &p, nil
}
