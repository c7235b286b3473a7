package adaptor

import (
	"net/http"
	"strconv"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// GetTickets handles GET /api/tickets
func (h *TicketHandler) GetTickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	filter := &request.TicketFilterRequest{
		Class:  query.Get("class"),
		Origin: query.Get("origin"),
	}

	if raw := query.Get("min_fare"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinFare = &v
		}
	}
	if raw := query.Get("max_fare"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxFare = &v
		}
	}

	tickets, err := h.service.GetTickets(r.Context(), filter, page)
	if err != nil {
		handleServiceError(h.log, w, err, "get tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// GetTicketByID handles GET /api/tickets/{id}
func (h *TicketHandler) GetTicketByID(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.GetTicket(r.Context(), ticketID)
	if err != nil {
		handleServiceError(h.log, w, err, "get ticket by ID")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}
