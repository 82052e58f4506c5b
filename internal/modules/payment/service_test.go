package payment

import (
	"context"
	"testing"

	"turnosya/internal/integrations/backmp"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) GetPaymentStatus(ctx context.Context, paymentID string) (*backmp.PaymentStatus, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backmp.PaymentStatus), args.Error(1)
}

func TestValidatePaymentForBooking_Approved(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(gw, zerolog.Nop())

	gw.On("GetPaymentStatus", mock.Anything, "p1").Return(&backmp.PaymentStatus{
		ID: "p1", Status: "approved", ExternalReference: "booking_42",
	}, nil)

	assert.True(t, svc.ValidatePaymentForBooking(context.Background(), 42, "p1"))
}

func TestValidatePaymentForBooking_NotApproved(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(gw, zerolog.Nop())

	gw.On("GetPaymentStatus", mock.Anything, "p1").Return(&backmp.PaymentStatus{
		ID: "p1", Status: "pending", ExternalReference: "booking_42",
	}, nil)

	assert.False(t, svc.ValidatePaymentForBooking(context.Background(), 42, "p1"))
}

func TestValidatePaymentForBooking_ReferenceMismatch(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(gw, zerolog.Nop())

	gw.On("GetPaymentStatus", mock.Anything, "p1").Return(&backmp.PaymentStatus{
		ID: "p1", Status: "approved", ExternalReference: "booking_43",
	}, nil)

	assert.False(t, svc.ValidatePaymentForBooking(context.Background(), 42, "p1"))
}

func TestValidatePaymentForBooking_GatewayDownFailsClosed(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(gw, zerolog.Nop())

	gw.On("GetPaymentStatus", mock.Anything, "p1").Return(nil, backmp.ErrUnavailable)

	assert.False(t, svc.ValidatePaymentForBooking(context.Background(), 42, "p1"))
}

func TestValidatePaymentForBooking_UnknownPaymentFailsClosed(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(gw, zerolog.Nop())

	gw.On("GetPaymentStatus", mock.Anything, "p1").Return(nil, backmp.ErrPaymentNotFound)

	assert.False(t, svc.ValidatePaymentForBooking(context.Background(), 42, "p1"))
}
