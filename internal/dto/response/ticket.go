package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

type TicketResponse struct {
	ID           string             `json:"id"`
	FlightNumber string             `json:"flight_number"`
	Origin       string             `json:"origin"`
	Destination  string             `json:"destination"`
	DepartureAt  time.Time          `json:"departure_at"`
	ArrivalAt    time.Time          `json:"arrival_at"`
	Class        entity.TicketClass `json:"class"`
	Fare         float64            `json:"fare"`
	Quantity     int                `json:"quantity"`
}

func TicketToResponse(ticket *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID.String(),
		FlightNumber: ticket.FlightNumber,
		Origin:       ticket.Origin,
		Destination:  ticket.Destination,
		DepartureAt:  ticket.DepartureAt,
		ArrivalAt:    ticket.ArrivalAt,
		Class:        ticket.Class,
		Fare:         ticket.Fare,
		Quantity:     ticket.Quantity,
	}
}
