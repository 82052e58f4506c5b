// Package payment bridges gateway payment state to booking confirmations.
// The bridge never raises on gateway trouble: validation is fail-closed
// and reads as "not approved".
package payment

import (
	"context"
	"fmt"

	"turnosya/internal/integrations/backmp"

	"github.com/rs/zerolog"
)

type Service struct {
	gateway Gateway
	log     zerolog.Logger
}

func NewService(gateway Gateway, log zerolog.Logger) *Service {
	return &Service{
		gateway: gateway,
		log:     log.With().Str("component", "payment").Logger(),
	}
}

// ValidatePaymentForBooking reports whether the payment settles the given
// booking: the gateway must know the payment, its status must be approved,
// and its external reference must be exactly "booking_<id>". Every gateway
// failure reads as false; a booking is never confirmed on ambiguous state.
func (s *Service) ValidatePaymentForBooking(ctx context.Context, bookingID int64, paymentID string) bool {
	ps, err := s.gateway.GetPaymentStatus(ctx, paymentID)
	if err != nil {
		s.log.Warn().Err(err).Int64("booking_id", bookingID).Str("payment_id", paymentID).
			Msg("payment validation failed at gateway")
		return false
	}

	if ps.Status != backmp.StatusApproved {
		s.log.Info().Int64("booking_id", bookingID).Str("payment_id", paymentID).
			Str("status", ps.Status).Msg("payment not approved")
		return false
	}

	want := fmt.Sprintf("booking_%d", bookingID)
	if ps.ExternalReference != want {
		s.log.Warn().Int64("booking_id", bookingID).Str("payment_id", paymentID).
			Str("external_reference", ps.ExternalReference).
			Msg("payment reference does not match booking")
		return false
	}

	return true
}

// GetPaymentStatus exposes the gateway read to callers that need the raw
// payment record.
func (s *Service) GetPaymentStatus(ctx context.Context, paymentID string) (*backmp.PaymentStatus, error) {
	return s.gateway.GetPaymentStatus(ctx, paymentID)
}

// RecordWebhook writes the inbound event to the log sink. Every delivery
// is recorded, acted upon or not.
func (s *Service) RecordWebhook(eventType, paymentID, status string) {
	s.log.Info().Str("type", eventType).Str("payment_id", paymentID).Str("status", status).
		Msg("payment webhook received")
}
