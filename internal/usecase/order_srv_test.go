package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
		Pricing: utils.PricingConfig{TaxRate: 0.10, CheckoutValidHours: 1},
	}
}

type orderMocks struct {
	db       *mockDB
	tx       *mockTx
	user     *MockUserRepository
	ticket   *MockTicketRepository
	order    *MockOrderRepository
	item     *MockOrderItemRepository
	checkout *MockCheckoutRepository
	history  *MockTransactionHistoryRepository
	notif    *MockNotificationRepository
}

func newOrderService(t *testing.T) (*orderMocks, OrderService) {
	t.Helper()

	m := &orderMocks{
		db:       &mockDB{tx: &mockTx{}},
		user:     &MockUserRepository{},
		ticket:   &MockTicketRepository{},
		order:    &MockOrderRepository{},
		item:     &MockOrderItemRepository{},
		checkout: &MockCheckoutRepository{},
		history:  &MockTransactionHistoryRepository{},
		notif:    &MockNotificationRepository{},
	}
	m.tx = m.db.tx

	repo := &repository.Repository{
		User:               m.user,
		Ticket:             m.ticket,
		Order:              m.order,
		OrderItem:          m.item,
		Checkout:           m.checkout,
		TransactionHistory: m.history,
		Notification:       m.notif,
	}

	return m, NewOrderService(m.db, repo, testConfig(), zap.NewNop())
}

func testTicket(id uuid.UUID, fare float64, quantity int) *entity.Ticket {
	return &entity.Ticket{
		Base:         entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FlightNumber: "GA-204",
		Origin:       "CGK",
		Destination:  "DPS",
		DepartureAt:  time.Now().Add(48 * time.Hour),
		ArrivalAt:    time.Now().Add(50 * time.Hour),
		Class:        entity.TicketClassEconomy,
		Fare:         fare,
		Quantity:     quantity,
	}
}

func testUser(id uuid.UUID) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FullName: "Jane Tan",
		Email:    "jane@example.com",
		Role:     entity.RoleCustomer,
		IsActive: true,
	}
}

func passengerReq(name string, infant bool) request.PassengerRequest {
	birth := "1990-04-12"
	if infant {
		birth = "2025-01-20"
	}
	return request.PassengerRequest{
		Name:           name,
		BirthDate:      birth,
		Nationality:    "ID",
		DocumentNumber: "A" + name,
		IsInfant:       infant,
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	ticketID := uuid.New()

	req := &request.CreateOrderRequest{
		Passengers: []request.PassengerRequest{
			passengerReq("One", false),
			passengerReq("Two", false),
			passengerReq("Three", false),
		},
	}

	m.user.On("FindByID", ctx, userID).Return(testUser(userID), nil).Once()
	m.ticket.On("LockForOrder", ctx, m.tx, ticketID).Return(testTicket(ticketID, 100, 5), nil).Once()
	m.item.On("MaxSeatNumber", ctx, m.tx, ticketID).Return(2, nil).Once()
	m.ticket.On("DecrementQuantity", ctx, m.tx, ticketID, 3).Return(true, nil).Once()
	m.order.On("Create", ctx, m.tx, mock.AnythingOfType("*entity.Order")).Return(nil).Once()

	var createdItems []*entity.OrderItem
	m.item.On("CreateBatch", ctx, m.tx, mock.Anything).
		Run(func(args mock.Arguments) {
			createdItems = args.Get(2).([]*entity.OrderItem)
		}).
		Return(nil).Once()

	var createdCheckout *entity.Checkout
	m.checkout.On("Create", ctx, m.tx, mock.AnythingOfType("*entity.Checkout")).
		Run(func(args mock.Arguments) {
			createdCheckout = args.Get(2).(*entity.Checkout)
		}).
		Return(nil).Once()

	m.history.On("Create", ctx, m.tx, mock.AnythingOfType("*entity.TransactionHistory")).Return(nil).Once()
	m.notif.On("Create", ctx, m.tx, mock.AnythingOfType("*entity.Notification")).Return(nil).Once()

	order, err := service.CreateOrder(ctx, userID.String(), ticketID.String(), req)

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.True(t, m.tx.committed)

	// Seats continue after the highest issued seat.
	assert.Len(t, createdItems, 3)
	assert.Equal(t, 3, createdItems[0].SeatNumber)
	assert.Equal(t, 4, createdItems[1].SeatNumber)
	assert.Equal(t, 5, createdItems[2].SeatNumber)

	// Checkout stores the payable amount: 3 * 100 * 1.10.
	assert.InDelta(t, 330, createdCheckout.Total, 1e-9)
	assert.False(t, createdCheckout.IsPaid)
	assert.WithinDuration(t, time.Now().Add(time.Hour), createdCheckout.ValidUntil, 5*time.Second)

	assert.Len(t, order.Passengers, 3)
	assert.Len(t, order.BookingCode, 7)
	assert.NotEmpty(t, order.CheckoutID)
	assert.False(t, order.IsPaid)
	assert.InDelta(t, 330, order.Price.Price, 1e-9)
	assert.InDelta(t, 30, order.Price.Tax, 1e-9)

	m.ticket.AssertExpectations(t)
	m.order.AssertExpectations(t)
	m.item.AssertExpectations(t)
	m.checkout.AssertExpectations(t)
	m.history.AssertExpectations(t)
	m.notif.AssertExpectations(t)
}

func TestOrderService_CreateOrder_InfantRidesFree(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	ticketID := uuid.New()

	req := &request.CreateOrderRequest{
		Passengers: []request.PassengerRequest{
			passengerReq("One", false),
			passengerReq("Two", false),
			passengerReq("Baby", true),
		},
	}

	m.user.On("FindByID", ctx, userID).Return(testUser(userID), nil).Once()
	m.ticket.On("LockForOrder", ctx, m.tx, ticketID).Return(testTicket(ticketID, 100, 10), nil).Once()
	m.item.On("MaxSeatNumber", ctx, m.tx, ticketID).Return(0, nil).Once()
	m.ticket.On("DecrementQuantity", ctx, m.tx, ticketID, 3).Return(true, nil).Once()
	m.order.On("Create", ctx, m.tx, mock.Anything).Return(nil).Once()
	m.item.On("CreateBatch", ctx, m.tx, mock.Anything).Return(nil).Once()

	var createdCheckout *entity.Checkout
	m.checkout.On("Create", ctx, m.tx, mock.Anything).
		Run(func(args mock.Arguments) {
			createdCheckout = args.Get(2).(*entity.Checkout)
		}).
		Return(nil).Once()
	m.history.On("Create", ctx, m.tx, mock.Anything).Return(nil).Once()
	m.notif.On("Create", ctx, m.tx, mock.Anything).Return(nil).Once()

	order, err := service.CreateOrder(ctx, userID.String(), ticketID.String(), req)

	assert.NoError(t, err)
	// Infant occupies a seat but does not pay: 2 * 100 * 1.10.
	assert.InDelta(t, 220, createdCheckout.Total, 1e-9)
	assert.InDelta(t, 20, order.Price.Tax, 1e-9)
}

func TestOrderService_CreateOrder_InsufficientInventory(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	ticketID := uuid.New()

	req := &request.CreateOrderRequest{
		Passengers: []request.PassengerRequest{
			passengerReq("One", false),
			passengerReq("Two", false),
			passengerReq("Three", false),
		},
	}

	m.user.On("FindByID", ctx, userID).Return(testUser(userID), nil).Once()
	m.ticket.On("LockForOrder", ctx, m.tx, ticketID).Return(testTicket(ticketID, 100, 2), nil).Once()

	order, err := service.CreateOrder(ctx, userID.String(), ticketID.String(), req)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.True(t, m.tx.rolledBack)

	// Nothing was written once the capacity check failed.
	m.ticket.AssertNotCalled(t, "DecrementQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.order.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_TicketNotFound(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	ticketID := uuid.New()

	req := &request.CreateOrderRequest{
		Passengers: []request.PassengerRequest{passengerReq("One", false)},
	}

	m.user.On("FindByID", ctx, userID).Return(testUser(userID), nil).Once()
	m.ticket.On("LockForOrder", ctx, m.tx, ticketID).Return(nil, nil).Once()

	order, err := service.CreateOrder(ctx, userID.String(), ticketID.String(), req)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_CreateOrder_LockContention(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	ticketID := uuid.New()

	req := &request.CreateOrderRequest{
		Passengers: []request.PassengerRequest{passengerReq("One", false)},
	}

	m.user.On("FindByID", ctx, userID).Return(testUser(userID), nil).Once()
	m.ticket.On("LockForOrder", ctx, m.tx, ticketID).Return(nil, repository.ErrTicketLocked).Once()

	order, err := service.CreateOrder(ctx, userID.String(), ticketID.String(), req)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrConflict)
	assert.True(t, m.tx.rolledBack)
}

func TestOrderService_CreateOrder_RollbackOnItemFailure(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	ticketID := uuid.New()

	req := &request.CreateOrderRequest{
		Passengers: []request.PassengerRequest{passengerReq("One", false)},
	}

	m.user.On("FindByID", ctx, userID).Return(testUser(userID), nil).Once()
	m.ticket.On("LockForOrder", ctx, m.tx, ticketID).Return(testTicket(ticketID, 100, 5), nil).Once()
	m.item.On("MaxSeatNumber", ctx, m.tx, ticketID).Return(0, nil).Once()
	m.ticket.On("DecrementQuantity", ctx, m.tx, ticketID, 1).Return(true, nil).Once()
	m.order.On("Create", ctx, m.tx, mock.Anything).Return(nil).Once()
	m.item.On("CreateBatch", ctx, m.tx, mock.Anything).Return(errors.New("insert failed")).Once()

	order, err := service.CreateOrder(ctx, userID.String(), ticketID.String(), req)

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.True(t, m.tx.rolledBack)
	assert.False(t, m.tx.committed)

	m.checkout.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_EmptyPassengers(t *testing.T) {
	_, service := newOrderService(t)

	order, err := service.CreateOrder(context.Background(), uuid.New().String(), uuid.New().String(), &request.CreateOrderRequest{})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOrderService_GetOrder_NotOwner(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	otherID := uuid.New()
	orderID := uuid.New()

	m.order.On("FindByID", ctx, orderID).Return(&entity.Order{
		Base:     entity.Base{ID: orderID},
		UserID:   ownerID,
		TicketID: uuid.New(),
	}, nil).Once()

	order, err := service.GetOrder(ctx, otherID.String(), orderID.String())

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_DeleteOrder_Cascade(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	checkoutID := uuid.New()

	m.order.On("FindByID", ctx, orderID).Return(&entity.Order{
		Base:     entity.Base{ID: orderID},
		UserID:   userID,
		TicketID: uuid.New(),
	}, nil).Once()
	m.checkout.On("FindByOrderID", ctx, orderID).Return(&entity.Checkout{
		BaseSimple: entity.BaseSimple{ID: checkoutID},
		OrderID:    orderID,
	}, nil).Once()
	m.history.On("DeleteByCheckoutID", ctx, m.tx, checkoutID).Return(nil).Once()
	m.checkout.On("Delete", ctx, m.tx, checkoutID).Return(nil).Once()
	m.item.On("DeleteByOrderID", ctx, m.tx, orderID).Return(nil).Once()
	m.order.On("Delete", ctx, m.tx, orderID).Return(nil).Once()

	err := service.DeleteOrder(ctx, userID.String(), orderID.String())

	assert.NoError(t, err)
	assert.True(t, m.tx.committed)

	m.history.AssertExpectations(t)
	m.checkout.AssertExpectations(t)
	m.item.AssertExpectations(t)
	m.order.AssertExpectations(t)
}

func TestOrderService_AddPassengers_RefreshesTotalAndContinuesSeats(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	ticketID := uuid.New()
	checkoutID := uuid.New()

	order := &entity.Order{
		Base:     entity.Base{ID: orderID, CreatedAt: time.Now()},
		UserID:   userID,
		TicketID: ticketID,
	}
	existing := []*entity.OrderItem{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, OrderID: orderID, FullName: "One", SeatNumber: 1},
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, OrderID: orderID, FullName: "Two", SeatNumber: 2},
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, OrderID: orderID, FullName: "Baby", SeatNumber: 3, IsInfant: true},
	}
	pending := &entity.Checkout{
		BaseSimple: entity.BaseSimple{ID: checkoutID},
		OrderID:    orderID,
		Total:      220,
		ValidUntil: time.Now().Add(time.Hour),
	}

	req := &request.AddPassengersRequest{
		Passengers: []request.PassengerRequest{passengerReq("Four", false)},
	}

	m.order.On("FindByID", ctx, orderID).Return(order, nil).Twice()
	m.checkout.On("FindByOrderID", ctx, orderID).Return(pending, nil).Once()
	m.ticket.On("LockForOrder", ctx, m.tx, ticketID).Return(testTicket(ticketID, 100, 5), nil).Once()
	m.item.On("MaxSeatNumber", ctx, m.tx, ticketID).Return(3, nil).Once()
	m.ticket.On("DecrementQuantity", ctx, m.tx, ticketID, 1).Return(true, nil).Once()

	var addedItems []*entity.OrderItem
	m.item.On("CreateBatch", ctx, m.tx, mock.Anything).
		Run(func(args mock.Arguments) {
			addedItems = args.Get(2).([]*entity.OrderItem)
		}).
		Return(nil).Once()

	// Pool read inside the transaction still sees only the original items.
	m.item.On("FindByOrderID", ctx, orderID).Return(existing, nil).Once()

	var refreshedTotal float64
	m.checkout.On("UpdateTotal", ctx, m.tx, checkoutID, mock.AnythingOfType("float64")).
		Run(func(args mock.Arguments) {
			refreshedTotal = args.Get(3).(float64)
		}).
		Return(nil).Once()

	// Re-read after commit.
	m.ticket.On("FindByID", ctx, ticketID).Return(testTicket(ticketID, 100, 4), nil).Once()
	m.item.On("FindByOrderID", ctx, orderID).
		Return(append(existing[:len(existing):len(existing)], &entity.OrderItem{
			BaseSimple: entity.BaseSimple{ID: uuid.New()}, OrderID: orderID, FullName: "Four", SeatNumber: 4,
		}), nil).Once()
	refreshed := &entity.Checkout{
		BaseSimple: entity.BaseSimple{ID: checkoutID},
		OrderID:    orderID,
		Total:      330,
		ValidUntil: pending.ValidUntil,
	}
	m.checkout.On("FindByOrderID", ctx, orderID).Return(refreshed, nil).Once()

	resp, err := service.AddPassengers(ctx, userID.String(), orderID.String(), req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.True(t, m.tx.committed)

	// New passenger continues after the highest issued seat.
	assert.Len(t, addedItems, 1)
	assert.Equal(t, 4, addedItems[0].SeatNumber)

	// Three payers and one infant at fare 100: 3 * 100 * 1.10.
	assert.InDelta(t, 330, refreshedTotal, 1e-9)

	assert.Len(t, resp.Passengers, 4)
	assert.Equal(t, checkoutID.String(), resp.CheckoutID)
	assert.False(t, resp.IsPaid)

	m.ticket.AssertExpectations(t)
	m.item.AssertExpectations(t)
	m.checkout.AssertExpectations(t)
}

func TestOrderService_AddPassengers_RejectsPaidOrder(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	m.order.On("FindByID", ctx, orderID).Return(&entity.Order{
		Base:     entity.Base{ID: orderID},
		UserID:   userID,
		TicketID: uuid.New(),
	}, nil).Once()

	paidAt := time.Now().Add(-time.Hour)
	m.checkout.On("FindByOrderID", ctx, orderID).Return(&entity.Checkout{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		OrderID:    orderID,
		IsPaid:     true,
		PaidAt:     &paidAt,
	}, nil).Once()

	req := &request.AddPassengersRequest{
		Passengers: []request.PassengerRequest{passengerReq("Late", false)},
	}

	resp, err := service.AddPassengers(ctx, userID.String(), orderID.String(), req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.False(t, m.tx.committed)

	m.ticket.AssertNotCalled(t, "LockForOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_AddPassengers_InsufficientInventory(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	ticketID := uuid.New()

	m.order.On("FindByID", ctx, orderID).Return(&entity.Order{
		Base:     entity.Base{ID: orderID},
		UserID:   userID,
		TicketID: ticketID,
	}, nil).Once()
	m.checkout.On("FindByOrderID", ctx, orderID).Return(&entity.Checkout{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		OrderID:    orderID,
	}, nil).Once()
	m.ticket.On("LockForOrder", ctx, m.tx, ticketID).Return(testTicket(ticketID, 100, 1), nil).Once()

	req := &request.AddPassengersRequest{
		Passengers: []request.PassengerRequest{
			passengerReq("One", false),
			passengerReq("Two", false),
		},
	}

	resp, err := service.AddPassengers(ctx, userID.String(), orderID.String(), req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.True(t, m.tx.rolledBack)

	m.ticket.AssertNotCalled(t, "DecrementQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.item.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_GetOrder_CheckoutLookupFailure(t *testing.T) {
	m, service := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	ticketID := uuid.New()

	m.order.On("FindByID", ctx, orderID).Return(&entity.Order{
		Base:     entity.Base{ID: orderID},
		UserID:   userID,
		TicketID: ticketID,
	}, nil).Once()
	m.ticket.On("FindByID", ctx, ticketID).Return(testTicket(ticketID, 100, 5), nil).Once()
	m.item.On("FindByOrderID", ctx, orderID).Return([]*entity.OrderItem{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, OrderID: orderID, FullName: "One", SeatNumber: 1},
	}, nil).Once()
	m.checkout.On("FindByOrderID", ctx, orderID).Return(nil, assert.AnError).Once()

	resp, err := service.GetOrder(ctx, userID.String(), orderID.String())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, assert.AnError)
}
