package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/middleware"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/tickets/{id}/orders - Book passengers on a ticket
		r.Post("/api/tickets/{id}/orders", orderHandler.CreateOrder)

		// GET /api/orders - View order history (user's own orders)
		r.Get("/api/orders", orderHandler.GetUserOrders)

		// GET /api/orders/{id} - Order detail with passengers and booking code
		r.Get("/api/orders/{id}", orderHandler.GetOrderByID)

		// PUT /api/orders/{id} - Add passengers to an existing order
		r.Put("/api/orders/{id}", orderHandler.AddPassengers)

		// DELETE /api/orders/{id} - Remove order with its passengers
		r.Delete("/api/orders/{id}", orderHandler.DeleteOrder)
	})
}
