package usecase

import (
	"context"
	"fmt"

	"merkato-backend/config"
	"merkato-backend/internal/domain"
	"merkato-backend/pkg/cache"
)

type CatalogUsecase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	cache        cache.CacheService
	cfg          *config.Config
}

func NewCatalogUsecase(productRepo domain.ProductRepository, categoryRepo domain.CategoryRepository, cacheSvc cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cacheSvc,
		cfg:          cfg,
	}
}

// ListProducts normalizes pagination and runs the filtered list query.
// The page size is always explicit: an absent limit becomes the configured
// default (the storefront used to fall back to a silent 10 only when an
// offset happened to be present).
func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductDetails, error) {
	if filter.Limit <= 0 {
		filter.Limit = u.cfg.DefaultPageSize
	}
	if filter.Limit > u.cfg.MaxPageSize {
		filter.Limit = u.cfg.MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	// Search results are too volatile to cache; everything else keys cleanly.
	if filter.Search != "" {
		return u.productRepo.ListProducts(ctx, filter)
	}

	key := productListKey(filter)
	if cached, found := u.cache.Get(key); found {
		if products, ok := cached.([]domain.ProductDetails); ok {
			return products, nil
		}
	}

	products, err := u.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	u.cache.Set(key, products, u.cfg.CacheProductTTL)
	return products, nil
}

// GetProduct fetches a single active product with reviews. Misses surface as
// domain.ErrNotFound.
func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (*domain.ProductDetails, error) {
	return u.productRepo.GetProductByID(ctx, id)
}

func (u *CatalogUsecase) GetMainCategories(ctx context.Context) ([]domain.MainCategory, error) {
	const key = "categories:main"
	if cached, found := u.cache.Get(key); found {
		if cats, ok := cached.([]domain.MainCategory); ok {
			return cats, nil
		}
	}

	cats, err := u.categoryRepo.GetMainCategories(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.Set(key, cats, u.cfg.CacheCategoryTTL)
	return cats, nil
}

func (u *CatalogUsecase) GetSubCategories(ctx context.Context, mainCategoryID int64) ([]domain.SubCategory, error) {
	key := fmt.Sprintf("categories:sub:%d", mainCategoryID)
	if cached, found := u.cache.Get(key); found {
		if cats, ok := cached.([]domain.SubCategory); ok {
			return cats, nil
		}
	}

	cats, err := u.categoryRepo.GetSubCategories(ctx, mainCategoryID)
	if err != nil {
		return nil, err
	}
	u.cache.Set(key, cats, u.cfg.CacheCategoryTTL)
	return cats, nil
}

func (u *CatalogUsecase) GetEndCategories(ctx context.Context, subCategoryID int64) ([]domain.EndCategory, error) {
	key := fmt.Sprintf("categories:end:%d", subCategoryID)
	if cached, found := u.cache.Get(key); found {
		if cats, ok := cached.([]domain.EndCategory); ok {
			return cats, nil
		}
	}

	cats, err := u.categoryRepo.GetEndCategories(ctx, subCategoryID)
	if err != nil {
		return nil, err
	}
	u.cache.Set(key, cats, u.cfg.CacheCategoryTTL)
	return cats, nil
}

func productListKey(f domain.ProductFilter) string {
	category := int64(0)
	if f.CategoryID != nil {
		category = *f.CategoryID
	}
	featured, trending := "-", "-"
	if f.Featured != nil {
		featured = fmt.Sprintf("%t", *f.Featured)
	}
	if f.Trending != nil {
		trending = fmt.Sprintf("%t", *f.Trending)
	}
	return fmt.Sprintf("products:c%d:f%s:t%s:l%d:o%d", category, featured, trending, f.Limit, f.Offset)
}
