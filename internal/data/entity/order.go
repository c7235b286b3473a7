package entity

import "github.com/google/uuid"

// Order is one booking transaction by one user against one ticket.
// At most one checkout exists per order at a time.
type Order struct {
	Base
	UserID   uuid.UUID `db:"user_id"`
	TicketID uuid.UUID `db:"ticket_id"`
}
