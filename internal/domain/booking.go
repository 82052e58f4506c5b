package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is one reserved slot on a field. Bookings are created pending and
// only become confirmed through a validated payment event. The composite
// unique index keeps two non-cancelled bookings from landing on the same
// (field, date, start) slot, closing the check-then-insert race between
// concurrent requests at the storage layer.
type Booking struct {
	ID           int64         `json:"id"`
	FieldID      int64         `json:"field_id" gorm:"index:idx_no_overbooking,unique,where:status <> 'cancelled'"`
	UserID       int64         `json:"user_id" gorm:"index:idx_booking_user_date"`
	Date         time.Time     `json:"date" gorm:"index:idx_no_overbooking,unique,where:status <> 'cancelled';index:idx_booking_user_date"`
	StartTime    string        `json:"start_time" gorm:"index:idx_no_overbooking,unique,where:status <> 'cancelled'"`
	EndTime      string        `json:"end_time"`
	Status       BookingStatus `json:"status"`
	BasePrice    float64       `json:"base_price"`
	PlatformFee  float64       `json:"platform_fee"`
	TotalPrice   float64       `json:"total_price"` // what the user actually pays (= platform fee)
	Notes        string        `json:"notes,omitempty" gorm:"type:text"`
	PaymentID    string        `json:"payment_id,omitempty"`
	IsRecurrent  bool          `json:"is_recurrent"`
	RecurrenceID string        `json:"recurrence_id,omitempty" gorm:"index"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	CancelledAt  *time.Time    `json:"cancelled_at,omitempty"`
}

// StartsAt anchors the wall-clock start time onto the booking date.
func (b *Booking) StartsAt() time.Time {
	var h, m int
	if _, err := fmt.Sscanf(b.StartTime, "%d:%d", &h, &m); err != nil {
		return b.Date
	}
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), h, m, 0, 0, time.UTC)
}
