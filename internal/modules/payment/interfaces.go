package payment

import (
	"context"

	"turnosya/internal/integrations/backmp"
	"turnosya/internal/modules/booking"
)

// Gateway is the payment-gateway read boundary, satisfied by backmp.Client.
type Gateway interface {
	GetPaymentStatus(ctx context.Context, paymentID string) (*backmp.PaymentStatus, error)
}

// WebhookProcessor consumes inbound gateway events, satisfied by the
// booking service.
type WebhookProcessor interface {
	ProcessPaymentWebhook(payload booking.WebhookPayload)
}
