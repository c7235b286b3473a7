package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

type CheckoutResponse struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	Total         float64    `json:"total"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ValidUntil    time.Time  `json:"valid_until"`
	CreatedAt     time.Time  `json:"created_at"`

	History *TransactionHistoryResponse `json:"history,omitempty"`
}

type TransactionHistoryResponse struct {
	ID         string     `json:"id"`
	CheckoutID string     `json:"checkout_id"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func CheckoutToResponse(checkout *entity.Checkout) CheckoutResponse {
	return CheckoutResponse{
		ID:            checkout.ID.String(),
		OrderID:       checkout.OrderID.String(),
		Total:         checkout.Total,
		PaymentMethod: checkout.PaymentMethod,
		IsPaid:        checkout.IsPaid,
		PaidAt:        checkout.PaidAt,
		ValidUntil:    checkout.ValidUntil,
		CreatedAt:     checkout.CreatedAt,
	}
}

func TransactionHistoryToResponse(history *entity.TransactionHistory) TransactionHistoryResponse {
	return TransactionHistoryResponse{
		ID:         history.ID.String(),
		CheckoutID: history.CheckoutID.String(),
		PaidAt:     history.PaidAt,
		CreatedAt:  history.CreatedAt,
	}
}
