package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/tickets - Browse available tickets
	r.Get("/api/tickets", ticketHandler.GetTickets)

	// GET /api/tickets/{id} - Ticket detail
	r.Get("/api/tickets/{id}", ticketHandler.GetTicketByID)
}
