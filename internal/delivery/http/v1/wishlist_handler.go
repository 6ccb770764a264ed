package v1

import (
	"net/http"

	"merkato-backend/internal/domain"
	"merkato-backend/internal/usecase"
	"merkato-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type WishlistHandler struct {
	usecase *usecase.WishlistUsecase
}

func NewWishlistHandler(usecase *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{usecase: usecase}
}

func (h *WishlistHandler) GetMyWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	wishlist, err := h.usecase.GetWishlist(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	utils.WriteJSON(w, http.StatusOK, wishlist)
}

type WishlistRequest struct {
	ProductID int64 `json:"productId"`
}

func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req WishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProductID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	entry, err := h.usecase.AddToWishlist(r.Context(), user.ID, req.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, entry)
}

func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID, ok := utils.ParseInt64(r.PathValue("productId"))
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.usecase.RemoveFromWishlist(r.Context(), user.ID, productID); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to remove from wishlist")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}
