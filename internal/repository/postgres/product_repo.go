package postgres

import (
	"context"
	"fmt"
	"strings"

	"merkato-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, summary, cover, category_id,
	is_featured, is_active, is_trending, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Summary, &p.Cover, &p.CategoryID,
		&p.IsFeatured, &p.IsActive, &p.IsTrending, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListProducts applies the filter set conjunctively, newest first, active
// rows only, and attaches category chain, inventory, colors and sizes.
// Limit/Offset arrive fully resolved from the usecase.
func (r *productRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductDetails, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE is_active`)

	var args []any
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		fmt.Fprintf(&sb, " AND category_id = $%d", len(args))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		fmt.Fprintf(&sb, " AND is_featured = $%d", len(args))
	}
	if filter.Trending != nil {
		args = append(args, *filter.Trending)
		fmt.Fprintf(&sb, " AND is_trending = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		fmt.Fprintf(&sb, " AND name ILIKE $%d", len(args))
	}

	sb.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.ProductDetails
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, domain.ProductDetails{Product: p})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachRelations(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID returns an active product with all relations plus reviews.
// Inactive or missing products surface as domain.ErrNotFound.
func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*domain.ProductDetails, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND is_active`, id)

	p, err := scanProduct(row)
	if err != nil {
		return nil, mapNoRows(err)
	}

	details := []domain.ProductDetails{{Product: p}}
	if err := r.attachRelations(ctx, details); err != nil {
		return nil, err
	}

	reviews, err := r.getReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	details[0].Reviews = reviews

	return &details[0], nil
}

// attachRelations batch-loads inventory, colors, sizes and category chains
// for the given products.
func (r *productRepository) attachRelations(ctx context.Context, products []domain.ProductDetails) error {
	if len(products) == 0 {
		return nil
	}

	index := make(map[int64]*domain.ProductDetails, len(products))
	ids := make([]int64, 0, len(products))
	for i := range products {
		index[products[i].ID] = &products[i]
		ids = append(ids, products[i].ID)
	}

	if err := r.loadInventory(ctx, ids, index); err != nil {
		return err
	}
	if err := r.loadColors(ctx, ids, index); err != nil {
		return err
	}
	if err := r.loadSizes(ctx, ids, index); err != nil {
		return err
	}
	return r.loadCategoryChains(ctx, products)
}

func (r *productRepository) loadInventory(ctx context.Context, ids []int64, index map[int64]*domain.ProductDetails) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, color_id, size_id, current_price, normal_price, quantity, sold
		FROM products_inventory
		WHERE product_id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var inv domain.ProductInventory
		var current, normal pgtype.Numeric
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.ColorID, &inv.SizeID,
			&current, &normal, &inv.Quantity, &inv.Sold); err != nil {
			return err
		}
		inv.CurrentPrice = numericToDecimal(current)
		inv.NormalPrice = numericToDecimal(normal)
		if p, ok := index[inv.ProductID]; ok {
			p.Inventory = append(p.Inventory, inv)
		}
	}
	return rows.Err()
}

func (r *productRepository) loadColors(ctx context.Context, ids []int64, index map[int64]*domain.ProductDetails) error {
	rows, err := r.db.Query(ctx, `
		SELECT pc.p_id, c.id, c.cvalue
		FROM product_color pc
		JOIN color c ON c.id = pc.color_id
		WHERE pc.p_id = ANY($1)
		ORDER BY c.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var c domain.Color
		if err := rows.Scan(&productID, &c.ID, &c.Value); err != nil {
			return err
		}
		if p, ok := index[productID]; ok {
			p.Colors = append(p.Colors, c)
		}
	}
	return rows.Err()
}

func (r *productRepository) loadSizes(ctx context.Context, ids []int64, index map[int64]*domain.ProductDetails) error {
	rows, err := r.db.Query(ctx, `
		SELECT ps.p_id, s.id, s.svalue
		FROM product_size ps
		JOIN size s ON s.id = ps.size_id
		WHERE ps.p_id = ANY($1)
		ORDER BY s.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var s domain.Size
		if err := rows.Scan(&productID, &s.ID, &s.Value); err != nil {
			return err
		}
		if p, ok := index[productID]; ok {
			p.Sizes = append(p.Sizes, s)
		}
	}
	return rows.Err()
}

// loadCategoryChains resolves end -> sub -> main lineage for every distinct
// category referenced by the products.
func (r *productRepository) loadCategoryChains(ctx context.Context, products []domain.ProductDetails) error {
	var catIDs []int64
	seen := make(map[int64]bool)
	for i := range products {
		if id := products[i].CategoryID; id != nil && !seen[*id] {
			seen[*id] = true
			catIDs = append(catIDs, *id)
		}
	}
	if len(catIDs) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT ec.ec_id, ec.ec_name, ec.sc_id,
		       sc.sc_name, sc.mc_id,
		       mc.mc_name, mc.icon, mc.is_showed, mc.is_new
		FROM end_category ec
		JOIN sub_category sc ON sc.sc_id = ec.sc_id
		JOIN main_category mc ON mc.mc_id = sc.mc_id
		WHERE ec.ec_id = ANY($1)`, catIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	chains := make(map[int64]domain.CategoryChain)
	for rows.Next() {
		var chain domain.CategoryChain
		if err := rows.Scan(
			&chain.End.ID, &chain.End.Name, &chain.End.SubCategoryID,
			&chain.Sub.Name, &chain.Sub.MainCategoryID,
			&chain.Main.Name, &chain.Main.Icon, &chain.Main.IsShowed, &chain.Main.IsNew,
		); err != nil {
			return err
		}
		chain.Sub.ID = chain.End.SubCategoryID
		chain.Main.ID = chain.Sub.MainCategoryID
		chains[chain.End.ID] = chain
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range products {
		if id := products[i].CategoryID; id != nil {
			if chain, ok := chains[*id]; ok {
				c := chain
				products[i].Category = &c
			}
		}
	}
	return nil
}

func (r *productRepository) getReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.p_id, r.u_id, r.comment, r.rating, r.created_at,
		       u.first_name, u.last_name, u.avatar
		FROM review r
		JOIN users u ON u.id = r.u_id
		WHERE r.p_id = $1
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Comment, &rv.Rating,
			&rv.CreatedAt, &rv.User.FirstName, &rv.User.LastName, &rv.User.Avatar); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
