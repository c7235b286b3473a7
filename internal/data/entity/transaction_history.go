package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionHistory records the payment event of one checkout (1:1).
// PaidAt is set only when the checkout is marked paid.
type TransactionHistory struct {
	BaseSimple
	CheckoutID uuid.UUID  `db:"checkout_id"`
	PaidAt     *time.Time `db:"paid_at"`
}
