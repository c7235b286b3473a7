package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is one seat occupant within an order. Seat numbers are unique
// within the owning ticket's allocation sequence and strictly increasing.
type OrderItem struct {
	BaseSimple
	OrderID        uuid.UUID  `db:"order_id"`
	FullName       string     `db:"full_name"`
	BirthDate      time.Time  `db:"birth_date"`
	Nationality    string     `db:"nationality"`
	DocumentNumber string     `db:"document_number"` // national ID or passport
	IssuingCountry *string    `db:"issuing_country"`
	DocumentExpiry *time.Time `db:"document_expiry"`
	IsInfant       bool       `db:"is_infant"`
	SeatNumber     int        `db:"seat_number"`
}
