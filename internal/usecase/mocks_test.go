package usecase

import (
	"context"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// mockTx satisfies database.Tx. Rollback after a successful commit is a
// no-op, mirroring pgx.
type mockTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *mockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockTx) Commit(ctx context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}

func (m *mockTx) Rollback(ctx context.Context) error {
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

type mockDB struct {
	tx       *mockTx
	beginErr error
}

func (m *mockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDB) Begin(ctx context.Context) (database.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

func (m *mockDB) Ping(ctx context.Context) error { return nil }

func (m *mockDB) Close() {}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindAll(ctx context.Context, filter repository.TicketFilter, limit, offset int) ([]*entity.Ticket, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]*entity.Ticket), args.Error(1)
}

func (m *MockTicketRepository) CountAll(ctx context.Context, filter repository.TicketFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) LockForOrder(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *MockTicketRepository) DecrementQuantity(ctx context.Context, q database.Querier, id uuid.UUID, count int) (bool, error) {
	args := m.Called(ctx, q, id, count)
	return args.Bool(0), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, q database.Querier, order *entity.Order) error {
	args := m.Called(ctx, q, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, q database.Querier, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) CreateBatch(ctx context.Context, q database.Querier, items []*entity.OrderItem) error {
	args := m.Called(ctx, q, items)
	return args.Error(0)
}

func (m *MockOrderItemRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*entity.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) MaxSeatNumber(ctx context.Context, q database.Querier, ticketID uuid.UUID) (int, error) {
	args := m.Called(ctx, q, ticketID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderItemRepository) DeleteByOrderID(ctx context.Context, q database.Querier, orderID uuid.UUID) error {
	args := m.Called(ctx, q, orderID)
	return args.Error(0)
}

type MockCheckoutRepository struct {
	mock.Mock
}

func (m *MockCheckoutRepository) Create(ctx context.Context, q database.Querier, checkout *entity.Checkout) error {
	args := m.Called(ctx, q, checkout)
	return args.Error(0)
}

func (m *MockCheckoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Checkout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Checkout), args.Error(1)
}

func (m *MockCheckoutRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Checkout, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Checkout), args.Error(1)
}

func (m *MockCheckoutRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Checkout, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*entity.Checkout), args.Error(1)
}

func (m *MockCheckoutRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCheckoutRepository) UpdateTotal(ctx context.Context, q database.Querier, id uuid.UUID, total float64) error {
	args := m.Called(ctx, q, id, total)
	return args.Error(0)
}

func (m *MockCheckoutRepository) MarkPaid(ctx context.Context, q database.Querier, id uuid.UUID, orderID uuid.UUID, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, q, id, orderID, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckoutRepository) Delete(ctx context.Context, q database.Querier, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

type MockTransactionHistoryRepository struct {
	mock.Mock
}

func (m *MockTransactionHistoryRepository) Create(ctx context.Context, q database.Querier, history *entity.TransactionHistory) error {
	args := m.Called(ctx, q, history)
	return args.Error(0)
}

func (m *MockTransactionHistoryRepository) FindByCheckoutID(ctx context.Context, checkoutID uuid.UUID) (*entity.TransactionHistory, error) {
	args := m.Called(ctx, checkoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TransactionHistory), args.Error(1)
}

func (m *MockTransactionHistoryRepository) StampPaidAt(ctx context.Context, q database.Querier, checkoutID uuid.UUID, paidAt time.Time) error {
	args := m.Called(ctx, q, checkoutID, paidAt)
	return args.Error(0)
}

func (m *MockTransactionHistoryRepository) DeleteByCheckoutID(ctx context.Context, q database.Querier, checkoutID uuid.UUID) error {
	args := m.Called(ctx, q, checkoutID)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, q database.Querier, notification *entity.Notification) error {
	args := m.Called(ctx, q, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
