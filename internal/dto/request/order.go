package request

// PassengerRequest is one seat occupant in a create-order call. Title is
// optional and, when present, prefixed onto the name (mirrors the airline
// manifest format).
type PassengerRequest struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,oneof=Mr Mrs Ms"`
	Name           string  `json:"name" validate:"required,min=1,max=100"`
	BirthDate      string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Nationality    string  `json:"nationality" validate:"required"`
	DocumentNumber string  `json:"document_number" validate:"required"`
	IssuingCountry *string `json:"issuing_country,omitempty"`
	DocumentExpiry *string `json:"document_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsInfant       bool    `json:"is_infant"`
}

type CreateOrderRequest struct {
	Passengers []PassengerRequest `json:"passengers" validate:"required,min=1,dive"`
}

type AddPassengersRequest struct {
	Passengers []PassengerRequest `json:"passengers" validate:"required,min=1,dive"`
}
