package postgres

import (
	"context"

	"merkato-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetMainCategories(ctx context.Context) ([]domain.MainCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT mc_id, mc_name, icon, is_showed, is_new
		FROM main_category
		WHERE is_showed
		ORDER BY mc_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.MainCategory
	for rows.Next() {
		var c domain.MainCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.IsShowed, &c.IsNew); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *categoryRepository) GetSubCategories(ctx context.Context, mainCategoryID int64) ([]domain.SubCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT sc_id, sc_name, mc_id
		FROM sub_category
		WHERE mc_id = $1
		ORDER BY sc_name`, mainCategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.SubCategory
	for rows.Next() {
		var c domain.SubCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.MainCategoryID); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *categoryRepository) GetEndCategories(ctx context.Context, subCategoryID int64) ([]domain.EndCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ec_id, ec_name, sc_id
		FROM end_category
		WHERE sc_id = $1
		ORDER BY ec_name`, subCategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.EndCategory
	for rows.Next() {
		var c domain.EndCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.SubCategoryID); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
