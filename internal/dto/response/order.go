package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

type PassengerResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	BirthDate      string  `json:"birth_date"`
	Nationality    string  `json:"nationality"`
	DocumentNumber string  `json:"document_number"`
	IssuingCountry *string `json:"issuing_country,omitempty"`
	DocumentExpiry *string `json:"document_expiry,omitempty"`
	IsInfant       bool    `json:"is_infant"`
	SeatNumber     int     `json:"seat_number"`
}

type PriceBreakdownResponse struct {
	Price float64 `json:"price"` // payable amount, tax included
	Tax   float64 `json:"tax"`
}

type OrderResponse struct {
	ID             string                  `json:"id"`
	UserID         string                  `json:"user_id"`
	Ticket         TicketResponse          `json:"ticket"`
	Passengers     []PassengerResponse     `json:"passengers"`
	CheckoutID     string                  `json:"checkout_id,omitempty"`
	IsPaid         bool                    `json:"is_paid"`
	BookingCode    string                  `json:"booking_code,omitempty"`
	Price          *PriceBreakdownResponse `json:"price,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

func PassengerToResponse(item *entity.OrderItem) PassengerResponse {
	resp := PassengerResponse{
		ID:             item.ID.String(),
		FullName:       item.FullName,
		BirthDate:      item.BirthDate.Format("2006-01-02"),
		Nationality:    item.Nationality,
		DocumentNumber: item.DocumentNumber,
		IssuingCountry: item.IssuingCountry,
		IsInfant:       item.IsInfant,
		SeatNumber:     item.SeatNumber,
	}

	if item.DocumentExpiry != nil {
		expiry := item.DocumentExpiry.Format("2006-01-02")
		resp.DocumentExpiry = &expiry
	}

	return resp
}

func PassengersToResponse(items []*entity.OrderItem) []PassengerResponse {
	passengers := make([]PassengerResponse, len(items))
	for i, item := range items {
		passengers[i] = PassengerToResponse(item)
	}
	return passengers
}
