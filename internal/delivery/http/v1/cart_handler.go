package v1

import (
	"net/http"
	"strings"

	"merkato-backend/internal/domain"
	"merkato-backend/internal/usecase"
	"merkato-backend/pkg/logger"
	"merkato-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(cartUC *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC}
}

// GetCart returns the user's cart header together with its detailed items.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cart, err := h.cartUC.GetOrCreateCart(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	items, err := h.cartUC.GetCartItems(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch cart items")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"cart":  cart,
		"items": items,
	})
}

type addToCartReq struct {
	ProductID int64 `json:"productId"`
	ColorID   int64 `json:"colorId"`
	SizeID    int64 `json:"sizeId"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req addToCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	item, err := h.cartUC.AddToCart(r.Context(), user.ID, req.ProductID, req.ColorID, req.SizeID, req.Quantity)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Int64("product_id", req.ProductID).Msg("AddToCart failed")

		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "exceeds maximum") {
			status = http.StatusBadRequest
		}
		utils.WriteError(w, status, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, item)
}

func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	itemID, ok := utils.ParseInt64(r.PathValue("itemId"))
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.cartUC.UpdateCartItemQuantity(r.Context(), user.ID, itemID, req.Quantity)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Int64("item_id", itemID).Msg("UpdateCartItem failed")

		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "exceeds maximum") {
			status = http.StatusBadRequest
		} else if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		utils.WriteError(w, status, err.Error())
		return
	}

	// A zero or negative quantity removes the row; there is no item to return.
	if item == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	itemID, ok := utils.ParseInt64(r.PathValue("itemId"))
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	if err := h.cartUC.RemoveFromCart(r.Context(), user.ID, itemID); err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Int64("item_id", itemID).Msg("RemoveCartItem failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}
