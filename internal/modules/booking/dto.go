package booking

import (
	"turnosya/internal/domain"
	"turnosya/internal/integrations/backmp"
	"turnosya/internal/modules/pricing"
)

type RecurrencePattern struct {
	Type     string `json:"type" binding:"required,oneof=daily weekly monthly"`
	Interval int    `json:"interval"`
	EndDate  string `json:"end_date" binding:"required"` // YYYY-MM-DD
}

type CreateBookingRequest struct {
	FieldID     int64              `json:"field_id" binding:"required"`
	Date        string             `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime   string             `json:"start_time" binding:"required"`
	EndTime     string             `json:"end_time" binding:"required"`
	Notes       string             `json:"notes"`
	IsRecurrent bool               `json:"is_recurrent"`
	Recurrence  *RecurrencePattern `json:"recurrence"`
}

// CreateResult is what a successful create returns: the persisted rows,
// the first row's price breakdown and a human-readable summary.
type CreateResult struct {
	Bookings     []domain.Booking  `json:"bookings"`
	Breakdown    pricing.Breakdown `json:"price_breakdown"`
	Message      string            `json:"message"`
	SkippedDates []string          `json:"skipped_dates,omitempty"`
}

type ListRequest struct {
	FieldID int64  `form:"field_id"`
	Date    string `form:"date"`
	Status  string `form:"status"`
}

type ConfirmRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// WebhookPayload is the inbound gateway event. The gateway's schema is
// loose; missing fields decode to zero values and are handled downstream.
type WebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		ID                string `json:"id"`
		Status            string `json:"status"`
		ExternalReference string `json:"external_reference"`
	} `json:"data"`
}

// Slot is one bookable one-hour window on a date.
type Slot struct {
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Price     float64 `json:"price"` // per-hour display price, fee included
}

type PaymentStatusResult struct {
	BookingID     int64                 `json:"booking_id"`
	BookingStatus domain.BookingStatus  `json:"booking_status"`
	PaymentID     string                `json:"payment_id,omitempty"`
	Payment       *backmp.PaymentStatus `json:"payment,omitempty"`
}
