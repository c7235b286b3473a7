package usecase

import (
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/database"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Ticket       TicketService
	Order        OrderService
	Checkout     CheckoutService
	Notification NotificationService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Ticket:       NewTicketService(repo, log),
		Order:        NewOrderService(db, repo, config, log),
		Checkout:     NewCheckoutService(db, repo, config, log),
		Notification: NewNotificationService(repo, log),
	}
}
