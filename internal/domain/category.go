package domain

import "context"

// Category hierarchy is three levels deep: main -> sub -> end. Products hang
// off end categories.

type MainCategory struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	IsShowed bool   `json:"isShowed"`
	IsNew    bool   `json:"isNew"`
}

type SubCategory struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	MainCategoryID int64  `json:"mainCategoryId"`
}

type EndCategory struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SubCategoryID int64  `json:"subCategoryId"`
}

// CategoryChain is the fully resolved lineage of an end category, attached to
// products so the storefront can render breadcrumbs without extra lookups.
type CategoryChain struct {
	End  EndCategory  `json:"end"`
	Sub  SubCategory  `json:"sub"`
	Main MainCategory `json:"main"`
}

type CategoryRepository interface {
	GetMainCategories(ctx context.Context) ([]MainCategory, error)
	GetSubCategories(ctx context.Context, mainCategoryID int64) ([]SubCategory, error)
	GetEndCategories(ctx context.Context, subCategoryID int64) ([]EndCategory, error)
}
