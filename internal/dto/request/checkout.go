package request

type CreateCheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=bank_transfer credit_card e_wallet"`
}

type ConfirmPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid4"`
}
