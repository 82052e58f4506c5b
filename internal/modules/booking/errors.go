package booking

import "errors"

var (
	ErrFieldNotFound      = errors.New("field not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrOutOfBusinessHours = errors.New("requested slot is outside business hours")
	ErrFieldClosed        = errors.New("field is closed on this date")
	ErrSlotUnavailable    = errors.New("slot is not available")
	ErrValidation         = errors.New("invalid booking request")
	ErrCancellationWindow = errors.New("bookings can only be cancelled more than 2 hours before start")
	ErrInvalidTransition  = errors.New("booking state does not allow this transition")
	ErrPaymentRejected    = errors.New("payment was not approved for this booking")
)
