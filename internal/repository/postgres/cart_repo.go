package postgres

import (
	"context"

	"merkato-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type cartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) domain.CartRepository {
	return &cartRepository{db: db}
}

const cartItemColumns = `id, cart_id, product_id, color_id, size_id, quantity, created_at, updated_at`

func scanCartItem(row interface{ Scan(dest ...any) error }) (domain.CartItem, error) {
	var item domain.CartItem
	err := row.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ColorID, &item.SizeID,
		&item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

// GetOrCreateCart is a single upsert against the unique index on user_id, so
// two concurrent first-time reads converge on one row instead of racing a
// read-then-insert.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	row := querier(ctx, r.db).QueryRow(ctx, `
		INSERT INTO carts (user_id, total)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id, user_id, total, created_at, updated_at`, userID)

	var cart domain.Cart
	var total pgtype.Numeric
	if err := row.Scan(&cart.ID, &cart.UserID, &total, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return nil, err
	}
	cart.Total = numericToDecimal(total)
	return &cart, nil
}

func (r *cartRepository) GetCartItems(ctx context.Context, cartID int64) ([]domain.CartItemDetails, error) {
	rows, err := querier(ctx, r.db).Query(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.color_id, ci.size_id, ci.quantity,
		       ci.created_at, ci.updated_at,
		       p.id, p.name, p.description, p.summary, p.cover, p.category_id,
		       p.is_featured, p.is_active, p.is_trending, p.created_at, p.updated_at,
		       c.id, c.cvalue,
		       s.id, s.svalue,
		       inv.id, inv.product_id, inv.color_id, inv.size_id,
		       inv.current_price, inv.normal_price, inv.quantity, inv.sold
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		LEFT JOIN color c ON c.id = ci.color_id
		LEFT JOIN size s ON s.id = ci.size_id
		LEFT JOIN products_inventory inv
		  ON inv.product_id = ci.product_id
		 AND inv.color_id = ci.color_id
		 AND inv.size_id = ci.size_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItemDetails
	for rows.Next() {
		var d domain.CartItemDetails
		var colorID, sizeID *int64
		var colorValue, sizeValue *string
		var invID, invProductID, invColorID, invSizeID *int64
		var invQuantity, invSold *int
		var current, normal pgtype.Numeric

		if err := rows.Scan(
			&d.ID, &d.CartID, &d.ProductID, &d.ColorID, &d.SizeID, &d.Quantity,
			&d.CreatedAt, &d.UpdatedAt,
			&d.Product.ID, &d.Product.Name, &d.Product.Description, &d.Product.Summary,
			&d.Product.Cover, &d.Product.CategoryID,
			&d.Product.IsFeatured, &d.Product.IsActive, &d.Product.IsTrending,
			&d.Product.CreatedAt, &d.Product.UpdatedAt,
			&colorID, &colorValue,
			&sizeID, &sizeValue,
			&invID, &invProductID, &invColorID, &invSizeID,
			&current, &normal, &invQuantity, &invSold,
		); err != nil {
			return nil, err
		}

		if colorID != nil && colorValue != nil {
			d.Color = &domain.Color{ID: *colorID, Value: *colorValue}
		}
		if sizeID != nil && sizeValue != nil {
			d.Size = &domain.Size{ID: *sizeID, Value: *sizeValue}
		}
		if invID != nil {
			d.Inventory = &domain.ProductInventory{
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
		items = append(items, d)
	}
	return items, rows.Err()
}

// UpsertItem merges quantities on the (cart, product, color, size) key: a
// second add for the same key increments the existing row in one statement,
// so concurrent adds can neither duplicate the row nor lose an increment.
func (r *cartRepository) UpsertItem(ctx context.Context, item domain.CartItem) (*domain.CartItem, error) {
	row := querier(ctx, r.db).QueryRow(ctx, `
		INSERT INTO cart_items (cart_id, product_id, color_id, size_id, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, product_id, color_id, size_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = now()
		RETURNING `+cartItemColumns,
		item.CartID, item.ProductID, item.ColorID, item.SizeID, item.Quantity)

	merged, err := scanCartItem(row)
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// UpdateItemQuantity is scoped by cart_id so an item id from another user's
// cart reads as not found rather than getting mutated.
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, cartItemID int64, quantity int) (*domain.CartItem, error) {
	row := querier(ctx, r.db).QueryRow(ctx, `
		UPDATE cart_items
		SET quantity = $3, updated_at = now()
		WHERE id = $2 AND cart_id = $1
		RETURNING `+cartItemColumns, cartID, cartItemID, quantity)

	item, err := scanCartItem(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &item, nil
}

// DeleteItem deletes by id within the given cart. Deleting an id that is
// already gone is a no-op, not an error.
func (r *cartRepository) DeleteItem(ctx context.Context, cartID, cartItemID int64) error {
	_, err := querier(ctx, r.db).Exec(ctx,
		`DELETE FROM cart_items WHERE id = $2 AND cart_id = $1`, cartID, cartItemID)
	return err
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID int64) error {
	_, err := querier(ctx, r.db).Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

func (r *cartRepository) UpdateCartTotal(ctx context.Context, cartID int64, total decimal.Decimal) error {
	_, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE carts SET total = $2, updated_at = now() WHERE id = $1`,
		cartID, decimalToNumeric(total))
	return err
}
