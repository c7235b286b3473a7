package repository

import (
	"flight-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User               UserRepository
	Session            SessionRepository
	Ticket             TicketRepository
	Order              OrderRepository
	OrderItem          OrderItemRepository
	Checkout           CheckoutRepository
	TransactionHistory TransactionHistoryRepository
	Notification       NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:               NewUserRepository(db, log),
		Session:            NewSessionRepository(db, log),
		Ticket:             NewTicketRepository(db, log),
		Order:              NewOrderRepository(db, log),
		OrderItem:          NewOrderItemRepository(db, log),
		Checkout:           NewCheckoutRepository(db, log),
		TransactionHistory: NewTransactionHistoryRepository(db, log),
		Notification:       NewNotificationRepository(db, log),
	}
}
