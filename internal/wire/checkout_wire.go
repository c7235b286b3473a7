package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/middleware"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/orders/{id}/checkout - Open a payment window manually
		r.Post("/api/orders/{id}/checkout", checkoutHandler.CreateCheckout)

		// GET /api/checkouts/{id} - Checkout detail with transaction history
		r.Get("/api/checkouts/{id}", checkoutHandler.GetCheckoutByID)

		// PUT /api/checkouts/{id} - Confirm payment
		r.Put("/api/checkouts/{id}", checkoutHandler.ConfirmPayment)
	})

	// ==================== ADMIN ROUTES ====================
	// Back-office checkout management
	r.Route("/api/admin/checkouts", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/checkouts - List all checkouts
		r.Get("/", checkoutHandler.GetCheckouts)

		// DELETE /api/admin/checkouts/{id} - Remove checkout with its history
		r.Delete("/{id}", checkoutHandler.DeleteCheckout)
	})
}
