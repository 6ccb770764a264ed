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

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(orderUC *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := h.orderUC.GetUserOrders(r.Context(), user.ID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("GetMyOrders failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.WriteJSON(w, http.StatusOK, orders)
}

type checkoutReq struct {
	PaymentProvider string `json:"paymentProvider"`
}

// Checkout converts the whole cart into an order. Cart problems (empty cart,
// unpriceable lines) come back as 400s; everything else is a 500.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaymentProvider == "" {
		req.PaymentProvider = "cash_on_delivery"
	}

	order, err := h.orderUC.Checkout(r.Context(), user.ID, req.PaymentProvider)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("Checkout failed")

		status := http.StatusInternalServerError
		errMsg := err.Error()
		if strings.Contains(errMsg, "cart is empty") || strings.Contains(errMsg, "no inventory") {
			status = http.StatusBadRequest
		}
		utils.WriteError(w, status, errMsg)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, order)
}
