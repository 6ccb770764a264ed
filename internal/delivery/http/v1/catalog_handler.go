package v1

import (
	"errors"
	"net/http"
	"strconv"

	"merkato-backend/config"
	"merkato-backend/internal/domain"
	"merkato-backend/internal/usecase"
	"merkato-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC  *usecase.CatalogUsecase
	wishlistUC *usecase.WishlistUsecase
	cfg        *config.Config
}

func NewCatalogHandler(catalogUC *usecase.CatalogUsecase, wishlistUC *usecase.WishlistUsecase, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalogUC:  catalogUC,
		wishlistUC: wishlistUC,
		cfg:        cfg,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// The effective page size must be settled before the page number is
	// turned into an offset, otherwise "?page=3" without a limit would
	// compute offset 0 and silently serve page 1.
	limit := utils.ParseInt(query.Get("limit"), 0)
	if limit <= 0 {
		limit = h.cfg.DefaultPageSize
	}
	if limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}
	page := utils.ParseInt(query.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	var categoryID *int64
	if val := query.Get("category"); val != "" {
		if id, ok := utils.ParseInt64(val); ok {
			categoryID = &id
		}
	}

	var featured, trending *bool
	if val := query.Get("featured"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			featured = &b
		}
	}
	if val := query.Get("trending"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			trending = &b
		}
	}

	filter := domain.ProductFilter{
		CategoryID: categoryID,
		Featured:   featured,
		Trending:   trending,
		Search:     query.Get("q"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	products, err := h.catalogUC.ListProducts(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	resp := map[string]interface{}{
		"data": products,
		"pagination": map[string]interface{}{
			"page":  page,
			"limit": limit,
		},
	}

	// Signed-in shoppers also get their wishlisted ids so the grid can render
	// the heart state without a second request. This route is public, so the
	// guard middleware never runs; the token is picked up opportunistically.
	if token := utils.ExtractToken(r); token != "" {
		if claims, err := utils.ValidateSessionToken(token); err == nil {
			if ids, err := h.wishlistUC.WishlistedIDs(r.Context(), claims.UserID); err == nil {
				resp["wishlistedProductIds"] = ids
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseInt64(r.PathValue("id"))
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetMainCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalogUC.GetMainCategories(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) GetSubCategories(w http.ResponseWriter, r *http.Request) {
	mainID, ok := utils.ParseInt64(r.PathValue("mainId"))
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	cats, err := h.catalogUC.GetSubCategories(r.Context(), mainID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) GetEndCategories(w http.ResponseWriter, r *http.Request) {
	subID, ok := utils.ParseInt64(r.PathValue("subId"))
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	cats, err := h.catalogUC.GetEndCategories(r.Context(), subID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}
