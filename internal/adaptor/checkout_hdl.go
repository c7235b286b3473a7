package adaptor

import (
	"encoding/json"
	"net/http"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// CreateCheckout handles POST /api/orders/{id}/checkout (protected)
func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	var req request.CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	checkout, err := h.service.CreateCheckout(r.Context(), userID.String(), orderID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create checkout")
		return
	}

	utils.ResponseCreated(w, "success", checkout)
}

// ConfirmPayment handles PUT /api/checkouts/{id} (protected)
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	checkoutID := chi.URLParam(r, "id")
	if checkoutID == "" {
		utils.ResponseBadRequest(w, "Checkout ID is required", nil)
		return
	}

	var req request.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	checkout, err := h.service.ConfirmPayment(r.Context(), userID.String(), checkoutID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "success", checkout)
}

// GetCheckouts handles GET /api/admin/checkouts (admin only)
func (h *CheckoutHandler) GetCheckouts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	checkouts, err := h.service.GetCheckouts(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get checkouts")
		return
	}

	utils.ResponseSuccess(w, "success", checkouts)
}

// GetCheckoutByID handles GET /api/checkouts/{id} (protected)
func (h *CheckoutHandler) GetCheckoutByID(w http.ResponseWriter, r *http.Request) {
	checkoutID := chi.URLParam(r, "id")
	if checkoutID == "" {
		utils.ResponseBadRequest(w, "Checkout ID is required", nil)
		return
	}

	checkout, err := h.service.GetCheckout(r.Context(), checkoutID)
	if err != nil {
		handleServiceError(h.log, w, err, "get checkout by ID")
		return
	}

	utils.ResponseSuccess(w, "success", checkout)
}

// DeleteCheckout handles DELETE /api/admin/checkouts/{id} (admin only)
func (h *CheckoutHandler) DeleteCheckout(w http.ResponseWriter, r *http.Request) {
	checkoutID := chi.URLParam(r, "id")
	if checkoutID == "" {
		utils.ResponseBadRequest(w, "Checkout ID is required", nil)
		return
	}

	if err := h.service.DeleteCheckout(r.Context(), checkoutID); err != nil {
		handleServiceError(h.log, w, err, "delete checkout")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
