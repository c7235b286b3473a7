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

type CheckoutService interface {
	CreateCheckout(ctx context.Context, userID string, orderID string, req *request.CreateCheckoutRequest) (*response.CheckoutResponse, error)
	ConfirmPayment(ctx context.Context, userID string, checkoutID string, req *request.ConfirmPaymentRequest) (*response.CheckoutResponse, error)
	GetCheckouts(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CheckoutResponse], error)
	GetCheckout(ctx context.Context, checkoutID string) (*response.CheckoutResponse, error)
	DeleteCheckout(ctx context.Context, checkoutID string) error
}

type checkoutService struct {
	db     database.PgxIface
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewCheckoutService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) CheckoutService {
	return &checkoutService{
		db:     db,
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "checkout")),
	}
}

// CreateCheckout opens a payment window for an order that does not have one
// yet. Orders created through the booking flow already carry a pending
// checkout, so this is the manual path and a second checkout for the same
// order is rejected.
func (s *checkoutService) CreateCheckout(ctx context.Context, userID string, orderID string, req *request.CreateCheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

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
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	existing, err := s.repo.Checkout.FindByOrderID(ctx, orderUUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: order %s", ErrDuplicateCheckout, orderID)
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, order.TicketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, order.TicketID.String())
	}

	items, err := s.repo.OrderItem.FindByOrderID(ctx, orderUUID)
	if err != nil {
		return nil, err
	}

	infants := 0
	for _, item := range items {
		if item.IsInfant {
			infants++
		}
	}

	price := ComputePrice(ticket.Fare, len(items), infants, s.config.Pricing.TaxRate)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin checkout transaction", zap.Error(err))
		return nil, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	checkout := &entity.Checkout{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		OrderID:       orderUUID,
		Total:         price.PreTax,
		PaymentMethod: &req.PaymentMethod,
		IsPaid:        false,
		ValidUntil:    now.Add(time.Duration(s.config.Pricing.CheckoutValidHours) * time.Hour),
	}

	if err := s.repo.Checkout.Create(ctx, tx, checkout); err != nil {
		// The unique order_id constraint catches the race two concurrent
		// creates can win past the FindByOrderID check.
		if errors.Is(err, repository.ErrCheckoutExists) {
			return nil, fmt.Errorf("%w: order %s", ErrDuplicateCheckout, orderID)
		}
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

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit checkout transaction",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("commit checkout transaction: %w", err)
	}

	s.log.Info("Checkout created",
		zap.String("checkout_id", checkout.ID.String()),
		zap.String("order_id", orderID),
		zap.Float64("total", checkout.Total),
	)

	resp := response.CheckoutToResponse(checkout)
	hist := response.TransactionHistoryToResponse(history)
	resp.History = &hist
	return &resp, nil
}

// ConfirmPayment settles a pending checkout. The checkout and its history
// row are stamped with the same timestamp inside one transaction. The
// target order must belong to the caller, and re-linking never gives one
// order two checkouts.
func (s *checkoutService) ConfirmPayment(ctx context.Context, userID string, checkoutID string, req *request.ConfirmPaymentRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user ID %s", ErrInvalidInput, userID)
	}

	checkoutUUID, err := uuid.Parse(checkoutID)
	if err != nil {
		return nil, fmt.Errorf("%w: checkout ID %s", ErrInvalidInput, checkoutID)
	}

	orderUUID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order ID %s", ErrInvalidInput, req.OrderID)
	}

	checkout, err := s.repo.Checkout.FindByID(ctx, checkoutUUID)
	if err != nil {
		return nil, err
	}
	if checkout == nil {
		return nil, fmt.Errorf("%w: checkout %s", ErrNotFound, checkoutID)
	}
	if checkout.IsPaid {
		return nil, fmt.Errorf("%w: checkout %s", ErrAlreadyPaid, checkoutID)
	}

	order, err := s.repo.Order.FindByID(ctx, orderUUID)
	if err != nil {
		return nil, err
	}
	// Same answer for a missing order and someone else's order.
	if order == nil || order.UserID != userUUID {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, req.OrderID)
	}

	// Re-linking to a different order must not give that order a second
	// checkout.
	if orderUUID != checkout.OrderID {
		existing, err := s.repo.Checkout.FindByOrderID(ctx, orderUUID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: order %s", ErrDuplicateCheckout, req.OrderID)
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin payment transaction", zap.Error(err))
		return nil, fmt.Errorf("begin payment transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	paidAt := time.Now()
	ok, err := s.repo.Checkout.MarkPaid(ctx, tx, checkoutUUID, orderUUID, paidAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race against a concurrent confirmation.
		return nil, fmt.Errorf("%w: checkout %s", ErrAlreadyPaid, checkoutID)
	}

	if err := s.repo.TransactionHistory.StampPaidAt(ctx, tx, checkoutUUID, paidAt); err != nil {
		return nil, err
	}

	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: paidAt,
		},
		UserID: order.UserID,
		Title:  "Payment Confirmed",
		Body:   fmt.Sprintf("Your payment for booking %s has been confirmed.", utils.BookingReference(order.ID)),
	}

	if err := s.repo.Notification.Create(ctx, tx, notification); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit payment transaction",
			zap.Error(err),
			zap.String("checkout_id", checkoutID),
		)
		return nil, fmt.Errorf("commit payment transaction: %w", err)
	}

	s.log.Info("Payment confirmed",
		zap.String("checkout_id", checkoutID),
		zap.String("order_id", req.OrderID),
	)

	return s.GetCheckout(ctx, checkoutID)
}

func (s *checkoutService) GetCheckouts(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CheckoutResponse], error) {
	checkouts, err := s.repo.Checkout.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Checkout.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	checkoutResponses := make([]response.CheckoutResponse, len(checkouts))
	for i, checkout := range checkouts {
		resp := response.CheckoutToResponse(checkout)

		history, err := s.repo.TransactionHistory.FindByCheckoutID(ctx, checkout.ID)
		if err != nil {
			return nil, err
		}
		if history != nil {
			hist := response.TransactionHistoryToResponse(history)
			resp.History = &hist
		}
		checkoutResponses[i] = resp
	}

	return response.NewPaginatedResponse(checkoutResponses, page.Page, page.PerPage, total), nil
}

func (s *checkoutService) GetCheckout(ctx context.Context, checkoutID string) (*response.CheckoutResponse, error) {
	id, err := uuid.Parse(checkoutID)
	if err != nil {
		return nil, fmt.Errorf("%w: checkout ID %s", ErrInvalidInput, checkoutID)
	}

	checkout, err := s.repo.Checkout.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if checkout == nil {
		return nil, fmt.Errorf("%w: checkout %s", ErrNotFound, checkoutID)
	}

	resp := response.CheckoutToResponse(checkout)

	history, err := s.repo.TransactionHistory.FindByCheckoutID(ctx, id)
	if err != nil {
		return nil, err
	}
	if history != nil {
		hist := response.TransactionHistoryToResponse(history)
		resp.History = &hist
	}

	return &resp, nil
}

// DeleteCheckout removes a checkout with its history, history rows first so
// the foreign key never dangles.
func (s *checkoutService) DeleteCheckout(ctx context.Context, checkoutID string) error {
	id, err := uuid.Parse(checkoutID)
	if err != nil {
		return fmt.Errorf("%w: checkout ID %s", ErrInvalidInput, checkoutID)
	}

	checkout, err := s.repo.Checkout.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if checkout == nil {
		return fmt.Errorf("%w: checkout %s", ErrNotFound, checkoutID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin delete transaction", zap.Error(err))
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.TransactionHistory.DeleteByCheckoutID(ctx, tx, id); err != nil {
		return err
	}

	if err := s.repo.Checkout.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit delete transaction",
			zap.Error(err),
			zap.String("checkout_id", checkoutID),
		)
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	s.log.Info("Checkout deleted", zap.String("checkout_id", checkoutID))
	return nil
}
