package adaptor

import (
	"flight-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Ticket       *TicketHandler
	Order        *OrderHandler
	Checkout     *CheckoutHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Ticket:       NewTicketHandler(service.Ticket, log),
		Order:        NewOrderHandler(service.Order, log),
		Checkout:     NewCheckoutHandler(service.Checkout, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
