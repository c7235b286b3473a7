package entity

import "github.com/google/uuid"

// Notification is a user-facing message created as a side effect of order
// events. Never mutated after creation.
type Notification struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	Title  string    `db:"title"`
	Body   string    `db:"body"`
}
