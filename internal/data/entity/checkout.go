package entity

import (
	"time"

	"github.com/google/uuid"
)

// Checkout is the payable instrument for one order (1:1). IsPaid only ever
// moves false -> true.
type Checkout struct {
	BaseSimple
	OrderID       uuid.UUID  `db:"order_id"`
	Total         float64    `db:"total"`
	PaymentMethod *string    `db:"payment_method"`
	IsPaid        bool       `db:"is_paid"`
	PaidAt        *time.Time `db:"paid_at"`
	ValidUntil    time.Time  `db:"valid_until"`
}
