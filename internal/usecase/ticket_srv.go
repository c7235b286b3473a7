package usecase

import (
	"context"
	"fmt"

	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketService interface {
	GetTickets(ctx context.Context, filter *request.TicketFilterRequest, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	GetTicket(ctx context.Context, ticketID string) (*response.TicketResponse, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) GetTickets(ctx context.Context, filter *request.TicketFilterRequest, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	if errs := utils.ValidateStruct(filter); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	repoFilter := repository.TicketFilter{
		Class:   filter.Class,
		Origin:  filter.Origin,
		MinFare: filter.MinFare,
		MaxFare: filter.MaxFare,
	}

	tickets, err := s.repo.Ticket.FindAll(ctx, repoFilter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Ticket.CountAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	ticketResponses := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		ticketResponses[i] = response.TicketToResponse(ticket)
	}

	return response.NewPaginatedResponse(ticketResponses, page.Page, page.PerPage, total), nil
}

func (s *ticketService) GetTicket(ctx context.Context, ticketID string) (*response.TicketResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket ID %s", ErrInvalidInput, ticketID)
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, ticketID)
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}
