package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/database"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, ticketID string, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	GetUserOrders(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrder(ctx context.Context, userID string, orderID string) (*response.OrderResponse, error)
	AddPassengers(ctx context.Context, userID string, orderID string, req *request.AddPassengersRequest) (*response.OrderResponse, error)
	DeleteOrder(ctx context.Context, userID string, orderID string) error
}

type orderService struct {
	db     database.PgxIface
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewOrderService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) OrderService {
	return &orderService{
		db:     db,
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "order")),
	}
}

// CreateOrder books seats for a batch of passengers against one ticket.
// The reads and writes that touch the ticket's inventory run inside one
// transaction holding the ticket row lock, so concurrent orders for the same
// ticket serialize: inventory only decreases and seat ranges never overlap.
// Any sub-write failure rolls back the whole order.
func (s *orderService) CreateOrder(ctx context.Context, userID string, ticketID string, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user ID %s", ErrInvalidInput, userID)
	}

	ticketUUID, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket ID %s", ErrInvalidInput, ticketID)
	}

	passengers, err := parsePassengers(req.Passengers)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin order transaction", zap.Error(err))
		return nil, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ticket, err := s.repo.Ticket.LockForOrder(ctx, tx, ticketUUID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketLocked) {
			return nil, fmt.Errorf("%w: ticket %s", ErrConflict, ticketID)
		}
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, ticketID)
	}

	if len(passengers) > ticket.Quantity {
		return nil, fmt.Errorf("%w: requested %d, remaining %d",
			ErrInsufficientInventory, len(passengers), ticket.Quantity)
	}

	maxSeat, err := s.repo.OrderItem.MaxSeatNumber(ctx, tx, ticketUUID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.Ticket.DecrementQuantity(ctx, tx, ticketUUID, len(passengers))
	if err != nil {
		return nil, err
	}
	if !ok {
		// The row lock makes this unreachable in practice, but the guard in
		// the UPDATE itself is what keeps quantity non-negative.
		return nil, fmt.Errorf("%w: requested %d, remaining %d",
			ErrInsufficientInventory, len(passengers), ticket.Quantity)
	}

	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userUUID,
		TicketID: ticketUUID,
	}

	if err := s.repo.Order.Create(ctx, tx, order); err != nil {
		return nil, err
	}

	items := buildOrderItems(order.ID, passengers, maxSeat, now)
	if err := s.repo.OrderItem.CreateBatch(ctx, tx, items); err != nil {
		return nil, err
	}

	infants := 0
	for _, item := range items {
		if item.IsInfant {
			infants++
		}
	}

	price := ComputePrice(ticket.Fare, len(items), infants, s.config.Pricing.TaxRate)

	checkout := &entity.Checkout{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		OrderID:    order.ID,
		Total:      price.PreTax,
		IsPaid:     false,
		ValidUntil: now.Add(time.Duration(s.config.Pricing.CheckoutValidHours) * time.Hour),
	}

	if err := s.repo.Checkout.Create(ctx, tx, checkout); err != nil {
		return nil, err
	}

	history := &entity.TransactionHistory{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		CheckoutID: checkout.ID,
	}

	if err := s.repo.TransactionHistory.Create(ctx, tx, history); err != nil {
		return nil, err
	}

	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID: userUUID,
		Title:  "Order Created",
		Body:   "Your order has been created successfully. Please confirm the payment to proceed.",
	}

	if err := s.repo.Notification.Create(ctx, tx, notification); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit order transaction",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return nil, fmt.Errorf("commit order transaction: %w", err)
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID),
		zap.String("ticket_id", ticketID),
		zap.Int("passengers", len(items)),
		zap.Int("infants", infants),
		zap.Float64("total", price.PreTax),
	)

	resp := s.buildOrderResponse(order, ticket, items)
	resp.CheckoutID = checkout.ID.String()
	resp.IsPaid = checkout.IsPaid
	resp.BookingCode = utils.BookingReference(order.ID)
	resp.Price = &response.PriceBreakdownResponse{
		Price: price.PreTax,
		Tax:   price.Tax,
	}

	return resp, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user ID %s", ErrInvalidInput, userID)
	}

	orders, err := s.repo.Order.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Order.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	orderResponses := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		ticket, err := s.repo.Ticket.FindByID(ctx, order.TicketID)
		if err != nil {
			return nil, err
		}

		items, err := s.repo.OrderItem.FindByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}

		resp := s.buildOrderResponse(order, ticket, items)

		checkout, err := s.repo.Checkout.FindByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		if checkout != nil {
			resp.CheckoutID = checkout.ID.String()
			resp.IsPaid = checkout.IsPaid
		}
		orderResponses[i] = *resp
	}

	return response.NewPaginatedResponse(orderResponses, req.Page, req.PerPage, total), nil
}

func (s *orderService) GetOrder(ctx context.Context, userID string, orderID string) (*response.OrderResponse, error) {
	order, err := s.resolveUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, order.TicketID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.OrderItem.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	resp := s.buildOrderResponse(order, ticket, items)
	resp.BookingCode = utils.BookingReference(order.ID)

	checkout, err := s.repo.Checkout.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if checkout != nil {
		resp.CheckoutID = checkout.ID.String()
		resp.IsPaid = checkout.IsPaid
	}

	return resp, nil
}

// AddPassengers appends passengers to an existing order, reserving their
// seats through the same locked path as CreateOrder and refreshing the
// unpaid checkout's total. Orders whose checkout is already paid reject the
// change.
func (s *orderService) AddPassengers(ctx context.Context, userID string, orderID string, req *request.AddPassengersRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	order, err := s.resolveUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	passengers, err := parsePassengers(req.Passengers)
	if err != nil {
		return nil, err
	}

	checkout, err := s.repo.Checkout.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if checkout != nil && checkout.IsPaid {
		return nil, fmt.Errorf("%w: order %s", ErrAlreadyPaid, orderID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin order transaction", zap.Error(err))
		return nil, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ticket, err := s.repo.Ticket.LockForOrder(ctx, tx, order.TicketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketLocked) {
			return nil, fmt.Errorf("%w: ticket %s", ErrConflict, order.TicketID.String())
		}
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, order.TicketID.String())
	}

	if len(passengers) > ticket.Quantity {
		return nil, fmt.Errorf("%w: requested %d, remaining %d",
			ErrInsufficientInventory, len(passengers), ticket.Quantity)
	}

	maxSeat, err := s.repo.OrderItem.MaxSeatNumber(ctx, tx, order.TicketID)
	if err != nil {
		return nil, err
	}

	if ok, err := s.repo.Ticket.DecrementQuantity(ctx, tx, order.TicketID, len(passengers)); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: requested %d, remaining %d",
			ErrInsufficientInventory, len(passengers), ticket.Quantity)
	}

	now := time.Now()
	newItems := buildOrderItems(order.ID, passengers, maxSeat, now)
	if err := s.repo.OrderItem.CreateBatch(ctx, tx, newItems); err != nil {
		return nil, err
	}

	if checkout != nil {
		items, err := s.repo.OrderItem.FindByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}

		infants := 0
		count := len(items) + len(newItems)
		for _, item := range items {
			if item.IsInfant {
				infants++
			}
		}
		for _, item := range newItems {
			if item.IsInfant {
				infants++
			}
		}

		price := ComputePrice(ticket.Fare, count, infants, s.config.Pricing.TaxRate)
		if err := s.repo.Checkout.UpdateTotal(ctx, tx, checkout.ID, price.PreTax); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit add-passengers transaction",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("commit add-passengers transaction: %w", err)
	}

	s.log.Info("Passengers added to order",
		zap.String("order_id", orderID),
		zap.Int("added", len(newItems)),
	)

	return s.GetOrder(ctx, userID, orderID)
}

// DeleteOrder removes the order with its passenger items and, when present,
// its checkout and transaction history, honoring the ownership direction:
// history before checkout, items before order. Sold inventory is not
// restored.
func (s *orderService) DeleteOrder(ctx context.Context, userID string, orderID string) error {
	order, err := s.resolveUserOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin delete transaction", zap.Error(err))
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	checkout, err := s.repo.Checkout.FindByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	if checkout != nil {
		if err := s.repo.TransactionHistory.DeleteByCheckoutID(ctx, tx, checkout.ID); err != nil {
			return err
		}
		if err := s.repo.Checkout.Delete(ctx, tx, checkout.ID); err != nil {
			return err
		}
	}

	if err := s.repo.OrderItem.DeleteByOrderID(ctx, tx, order.ID); err != nil {
		return err
	}

	if err := s.repo.Order.Delete(ctx, tx, order.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit delete transaction",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	s.log.Info("Order deleted", zap.String("order_id", orderID))
	return nil
}

// ==================== HELPER METHODS ====================

type passenger struct {
	fullName       string
	birthDate      time.Time
	nationality    string
	documentNumber string
	issuingCountry *string
	documentExpiry *time.Time
	isInfant       bool
}

func parsePassengers(reqs []request.PassengerRequest) ([]passenger, error) {
	passengers := make([]passenger, len(reqs))
	for i, p := range reqs {
		birthDate, err := time.Parse("2006-01-02", p.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth date %q", ErrInvalidInput, p.BirthDate)
		}

		fullName := p.Name
		if p.Title != nil && *p.Title != "" {
			fullName = *p.Title + " " + p.Name
		}

		var expiry *time.Time
		if p.DocumentExpiry != nil {
			parsed, err := time.Parse("2006-01-02", *p.DocumentExpiry)
			if err != nil {
				return nil, fmt.Errorf("%w: document expiry %q", ErrInvalidInput, *p.DocumentExpiry)
			}
			expiry = &parsed
		}

		passengers[i] = passenger{
			fullName:       fullName,
			birthDate:      birthDate,
			nationality:    p.Nationality,
			documentNumber: p.DocumentNumber,
			issuingCountry: p.IssuingCountry,
			documentExpiry: expiry,
			isInfant:       p.IsInfant,
		}
	}

	return passengers, nil
}

// buildOrderItems assigns seats maxSeat+1, maxSeat+2, ... in input order.
func buildOrderItems(orderID uuid.UUID, passengers []passenger, maxSeat int, now time.Time) []*entity.OrderItem {
	items := make([]*entity.OrderItem, len(passengers))
	for i, p := range passengers {
		items[i] = &entity.OrderItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			OrderID:        orderID,
			FullName:       p.fullName,
			BirthDate:      p.birthDate,
			Nationality:    p.nationality,
			DocumentNumber: p.documentNumber,
			IssuingCountry: p.issuingCountry,
			DocumentExpiry: p.documentExpiry,
			IsInfant:       p.isInfant,
			SeatNumber:     maxSeat + i + 1,
		}
	}
	return items
}

func (s *orderService) resolveUserOrder(ctx context.Context, userID string, orderID string) (*entity.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user ID %s", ErrInvalidInput, userID)
	}

	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order ID %s", ErrInvalidInput, orderID)
	}

	order, err := s.repo.Order.FindByID(ctx, orderUUID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userUUID {
		// Hide other users' orders behind the same not-found answer.
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	return order, nil
}

func (s *orderService) buildOrderResponse(order *entity.Order, ticket *entity.Ticket, items []*entity.OrderItem) *response.OrderResponse {
	resp := &response.OrderResponse{
		ID:         order.ID.String(),
		UserID:     order.UserID.String(),
		Passengers: response.PassengersToResponse(items),
		CreatedAt:  order.CreatedAt,
	}

	if ticket != nil {
		resp.Ticket = response.TicketToResponse(ticket)
	}

	return resp
}
