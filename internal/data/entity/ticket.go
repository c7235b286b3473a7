package entity

import "time"

type TicketClass string

const (
	TicketClassEconomy  TicketClass = "economy"
	TicketClassBusiness TicketClass = "business"
	TicketClassFirst    TicketClass = "first"
)

// Ticket is one sellable seat class on a scheduled flight leg.
// Quantity is the remaining seat count; it never goes below zero and is
// only decremented by successful orders.
type Ticket struct {
	Base
	FlightNumber string      `db:"flight_number"`
	Origin       string      `db:"origin"`      // IATA code, e.g. CGK
	Destination  string      `db:"destination"` // IATA code, e.g. DPS
	DepartureAt  time.Time   `db:"departure_at"`
	ArrivalAt    time.Time   `db:"arrival_at"`
	Class        TicketClass `db:"class"`
	Fare         float64     `db:"fare"`
	Quantity     int         `db:"quantity"`
}
