package booking

import (
	"context"
	"time"

	"turnosya/internal/domain"
	"turnosya/internal/integrations/backmp"
	"turnosya/internal/repository"
)

type FieldStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

type SpecialHoursStore interface {
	FindByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]domain.SpecialHours, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	CreateBatch(ctx context.Context, bookings []domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Find(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error)
	GetConfirmedForFieldDate(ctx context.Context, fieldID int64, date time.Time) ([]domain.Booking, error)
	GetByRecurrence(ctx context.Context, recurrenceID string, status domain.BookingStatus) ([]domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
	SaveAll(ctx context.Context, bookings []domain.Booking) error
}

// PaymentValidator is the confirmation bridge boundary. Validation is
// fail-closed: any ambiguity about the payment state reads as false.
type PaymentValidator interface {
	ValidatePaymentForBooking(ctx context.Context, bookingID int64, paymentID string) bool
	GetPaymentStatus(ctx context.Context, paymentID string) (*backmp.PaymentStatus, error)
	RecordWebhook(eventType, paymentID, status string)
}
