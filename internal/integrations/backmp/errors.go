package backmp

import "errors"

var (
	// ErrPaymentNotFound is returned when the gateway does not know the payment id.
	ErrPaymentNotFound = errors.New("backmp: payment not found")

	// ErrUnavailable covers transport failures, timeouts and unexpected responses.
	ErrUnavailable = errors.New("backmp: gateway unavailable")
)
