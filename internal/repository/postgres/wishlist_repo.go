package postgres

import (
	"context"

	"merkato-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type wishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) domain.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) GetWishlist(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
		       p.id, p.name, p.description, p.summary, p.cover, p.category_id,
		       p.is_featured, p.is_active, p.is_trending, p.created_at, p.updated_at
		FROM wishlist w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WishlistEntry
	for rows.Next() {
		var e domain.WishlistEntry
		var p domain.Product
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProductID, &e.CreatedAt,
			&p.ID, &p.Name, &p.Description, &p.Summary, &p.Cover, &p.CategoryID,
			&p.IsFeatured, &p.IsActive, &p.IsTrending, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		e.Product = &p
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddEntry inserts without a uniqueness check; adding the same product twice
// yields two rows. That matches the storefront's historical behavior.
func (r *wishlistRepository) AddEntry(ctx context.Context, userID string, productID int64) (*domain.WishlistEntry, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO wishlist (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, user_id, product_id, created_at`, userID, productID)

	var e domain.WishlistEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.ProductID, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// RemoveEntry deletes every row for the (user, product) pair, which also
// cleans up any duplicates in one call.
func (r *wishlistRepository) RemoveEntry(ctx context.Context, userID string, productID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}
