package request

// TicketFilterRequest carries the supported list filters. The full search
// matrix of the booking frontend lives outside this service.
type TicketFilterRequest struct {
	Class   string   `json:"class" validate:"omitempty,oneof=economy business first"`
	Origin  string   `json:"origin" validate:"omitempty,len=3"`
	MinFare *float64 `json:"min_fare" validate:"omitempty,min=0"`
	MaxFare *float64 `json:"max_fare" validate:"omitempty,min=0"`
}
