package usecase

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// statuses with errors.Is; anything unrecognized is reported as an internal
// error without leaking detail to the caller.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInsufficientInventory = errors.New("insufficient ticket inventory")
	ErrDuplicateCheckout     = errors.New("checkout already exists for order")
	ErrAlreadyPaid           = errors.New("checkout already paid")
	ErrConflict              = errors.New("concurrent modification, retry")
	ErrUnauthorized          = errors.New("unauthorized")
)
