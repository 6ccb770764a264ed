package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merkato-backend/config"
	"merkato-backend/internal/domain"
	"merkato-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingProductRepo struct {
	lastFilter domain.ProductFilter
}

func (f *capturingProductRepo) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductDetails, error) {
	f.lastFilter = filter
	return nil, nil
}

func (f *capturingProductRepo) GetProductByID(ctx context.Context, id int64) (*domain.ProductDetails, error) {
	return nil, domain.ErrNotFound
}

type stubCategoryRepo struct{}

func (stubCategoryRepo) GetMainCategories(ctx context.Context) ([]domain.MainCategory, error) {
	return nil, nil
}

func (stubCategoryRepo) GetSubCategories(ctx context.Context, mainCategoryID int64) ([]domain.SubCategory, error) {
	return nil, nil
}

func (stubCategoryRepo) GetEndCategories(ctx context.Context, subCategoryID int64) ([]domain.EndCategory, error) {
	return nil, nil
}

type stubWishlistRepo struct{}

func (stubWishlistRepo) GetWishlist(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	return nil, nil
}

func (stubWishlistRepo) AddEntry(ctx context.Context, userID string, productID int64) (*domain.WishlistEntry, error) {
	return nil, nil
}

func (stubWishlistRepo) RemoveEntry(ctx context.Context, userID string, productID int64) error {
	return nil
}

// nopCache never stores, so every handler request reaches the repository and
// the captured filter reflects the current request.
type nopCache struct{}

func (nopCache) Get(key string) (interface{}, bool)                        { return nil, false }
func (nopCache) Set(key string, value interface{}, duration time.Duration) {}
func (nopCache) Delete(key string)                                         {}
func (nopCache) Flush()                                                    {}

func newCatalogHandlerForTest(repo *capturingProductRepo) *CatalogHandler {
	cfg := &config.Config{
		DefaultPageSize:  10,
		MaxPageSize:      100,
		CacheCategoryTTL: 30 * time.Minute,
		CacheProductTTL:  10 * time.Minute,
	}
	catalogUC := usecase.NewCatalogUsecase(repo, stubCategoryRepo{}, nopCache{}, cfg)
	wishlistUC := usecase.NewWishlistUsecase(stubWishlistRepo{})
	return NewCatalogHandler(catalogUC, wishlistUC, cfg)
}

func TestListProductsPageWithoutLimit(t *testing.T) {
	repo := &capturingProductRepo{}
	handler := newCatalogHandlerForTest(repo)

	rec := httptest.NewRecorder()
	handler.ListProducts(rec, httptest.NewRequest("GET", "/api/v1/products?page=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Equal(t, 20, repo.lastFilter.Offset, "page 3 at the default size must skip two pages")
}

func TestListProductsOffsetUsesCappedLimit(t *testing.T) {
	repo := &capturingProductRepo{}
	handler := newCatalogHandlerForTest(repo)

	rec := httptest.NewRecorder()
	handler.ListProducts(rec, httptest.NewRequest("GET", "/api/v1/products?page=2&limit=5000", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, repo.lastFilter.Limit)
	assert.Equal(t, 100, repo.lastFilter.Offset, "offset must be derived from the capped limit")
}

func TestListProductsExplicitPaging(t *testing.T) {
	repo := &capturingProductRepo{}
	handler := newCatalogHandlerForTest(repo)

	rec := httptest.NewRecorder()
	handler.ListProducts(rec, httptest.NewRequest("GET", "/api/v1/products?page=2&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, repo.lastFilter.Limit)
	assert.Equal(t, 5, repo.lastFilter.Offset)
}
