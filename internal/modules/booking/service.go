// Package booking owns the booking lifecycle: availability gating, price
// calculation, pending/confirm/cancel transitions and the webhook-driven
// confirmation path.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"turnosya/internal/domain"
	"turnosya/internal/integrations/backmp"
	"turnosya/internal/modules/pricing"
	"turnosya/internal/pkg/metrics"
	"turnosya/internal/pkg/timeslot"
	"turnosya/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"

	// cancellationLead is the minimum time before start at which a booking
	// can still be cancelled. The boundary is exclusive: a lead of exactly
	// two hours is too late.
	cancellationLead = 2 * time.Hour

	// bookingRefPrefix is the external-reference format the gateway echoes
	// back on webhooks: "booking_<id>".
	bookingRefPrefix = "booking_"

	webhookConfirmTimeout = 15 * time.Second
)

type Service struct {
	bookings     BookingStore
	fields       FieldStore
	specialHours SpecialHoursStore
	payments     PaymentValidator
	pricing      *pricing.Service
	metrics      *metrics.Metrics
	log          zerolog.Logger

	now  func() time.Time
	jobs sync.WaitGroup
}

func NewService(
	bookings BookingStore,
	fields FieldStore,
	specialHours SpecialHoursStore,
	payments PaymentValidator,
	pricingSvc *pricing.Service,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Service {
	return &Service{
		bookings:     bookings,
		fields:       fields,
		specialHours: specialHours,
		payments:     payments,
		pricing:      pricingSvc,
		metrics:      m,
		log:          log.With().Str("component", "booking").Logger(),
		now:          time.Now,
	}
}

// Create validates the requested slot, prices it and persists one pending
// booking, or a pending series when the request is recurrent. No row is
// persisted on any validation failure.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*CreateResult, error) {
	slot, err := timeslot.NewRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if req.IsRecurrent && req.Recurrence == nil {
		return nil, fmt.Errorf("%w: recurrence pattern is required for recurrent bookings", ErrValidation)
	}

	field, err := s.getField(ctx, req.FieldID)
	if err != nil {
		return nil, err
	}

	if req.IsRecurrent {
		return s.createSeries(ctx, userID, field, date, slot, req)
	}

	specials, err := s.specialHours.FindByFieldAndDate(ctx, field.ID, date)
	if err != nil {
		return nil, err
	}
	if err := s.checkAvailability(ctx, field, date, slot, specials); err != nil {
		return nil, err
	}

	breakdown := s.priceSlot(field, slot, specials)

	b := s.newPending(userID, field.ID, date, slot, breakdown, req.Notes)
	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, fmt.Errorf("%w: another booking holds this slot", ErrSlotUnavailable)
		}
		return nil, err
	}

	s.metrics.BookingsCreated.WithLabelValues("single").Inc()
	s.log.Info().Int64("booking_id", b.ID).Int64("field_id", field.ID).
		Str("date", req.Date).Str("slot", req.StartTime+"-"+req.EndTime).
		Msg("booking created")

	return &CreateResult{
		Bookings:  []domain.Booking{*b},
		Breakdown: breakdown,
		Message: fmt.Sprintf("Booking created for %s %s-%s at %s, pending payment of %.2f",
			req.Date, req.StartTime, req.EndTime, field.Name, breakdown.UserPayment),
	}, nil
}

// createSeries expands a recurrence pattern into individually gated
// bookings. Unavailable dates are skipped, never failed; the surviving
// subset is persisted as one batch sharing a recurrence id.
func (s *Service) createSeries(ctx context.Context, userID int64, field *domain.Field, start time.Time, slot timeslot.Range, req CreateBookingRequest) (*CreateResult, error) {
	endDate, err := parseDate(req.Recurrence.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(start) {
		return nil, fmt.Errorf("%w: recurrence end date before start date", ErrValidation)
	}

	interval := req.Recurrence.Interval
	if interval <= 0 {
		interval = 1
	}

	recurrenceID := "rec_" + uuid.NewString()

	var (
		created   []domain.Booking
		skipped   []string
		breakdown pricing.Breakdown
	)

	for d := start; !d.After(endDate); d = advance(d, req.Recurrence.Type, interval) {
		specials, err := s.specialHours.FindByFieldAndDate(ctx, field.ID, d)
		if err != nil {
			return nil, err
		}
		if err := s.checkAvailability(ctx, field, d, slot, specials); err != nil {
			skipped = append(skipped, d.Format(dateLayout))
			continue
		}

		bd := s.priceSlot(field, slot, specials)
		if len(created) == 0 {
			breakdown = bd
		}

		b := s.newPending(userID, field.ID, d, slot, bd, req.Notes)
		b.IsRecurrent = true
		b.RecurrenceID = recurrenceID
		created = append(created, *b)
	}

	if len(created) == 0 {
		return nil, fmt.Errorf("%w: no date in the series is available", ErrSlotUnavailable)
	}

	if err := s.bookings.CreateBatch(ctx, created); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, fmt.Errorf("%w: another booking holds a slot in the series", ErrSlotUnavailable)
		}
		return nil, err
	}

	s.metrics.BookingsCreated.WithLabelValues("recurrent").Add(float64(len(created)))
	s.log.Info().Str("recurrence_id", recurrenceID).Int("created", len(created)).
		Int("skipped", len(skipped)).Msg("recurring series created")

	return &CreateResult{
		Bookings:     created,
		Breakdown:    breakdown,
		SkippedDates: skipped,
		Message: fmt.Sprintf("Recurring series created: %d bookings, %d dates skipped",
			len(created), len(skipped)),
	}, nil
}

// checkAvailability runs the three gates in order: business hours,
// special-hours closure, confirmed-booking conflict. Pending and cancelled
// bookings never block a slot.
func (s *Service) checkAvailability(ctx context.Context, field *domain.Field, date time.Time, slot timeslot.Range, specials []domain.SpecialHours) error {
	bh := field.BusinessHourFor(date.Weekday())
	if bh == nil {
		return fmt.Errorf("%w: field does not operate on %s", ErrOutOfBusinessHours, date.Weekday())
	}
	business, err := timeslot.NewRange(bh.OpenTime, bh.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: malformed business hours %s-%s", ErrValidation, bh.OpenTime, bh.CloseTime)
	}
	if !slot.Within(business) {
		return fmt.Errorf("%w: slot must be within %s-%s", ErrOutOfBusinessHours, bh.OpenTime, bh.CloseTime)
	}

	for i := range specials {
		if specials[i].IsClosed {
			reason := specials[i].Reason
			if reason == "" {
				reason = "closed"
			}
			return fmt.Errorf("%w: %s", ErrFieldClosed, reason)
		}
	}

	confirmed, err := s.bookings.GetConfirmedForFieldDate(ctx, field.ID, date)
	if err != nil {
		return err
	}
	for i := range confirmed {
		existing, err := timeslot.NewRange(confirmed[i].StartTime, confirmed[i].EndTime)
		if err != nil {
			continue
		}
		if slot.Overlaps(existing) {
			return fmt.Errorf("%w: conflicts with booking %s-%s",
				ErrSlotUnavailable, confirmed[i].StartTime, confirmed[i].EndTime)
		}
	}

	return nil
}

func (s *Service) priceSlot(field *domain.Field, slot timeslot.Range, specials []domain.SpecialHours) pricing.Breakdown {
	bd := s.pricing.CalculateBookingPrice(field, slot, specials)
	return s.pricing.ApplyDiscount(bd, s.pricing.OffPeakDiscount(slot.Start))
}

func (s *Service) newPending(userID, fieldID int64, date time.Time, slot timeslot.Range, bd pricing.Breakdown, notes string) *domain.Booking {
	return &domain.Booking{
		FieldID:     fieldID,
		UserID:      userID,
		Date:        date,
		StartTime:   slot.Start.Format(),
		EndTime:     slot.End.Format(),
		Status:      domain.BookingPending,
		BasePrice:   bd.BasePrice,
		PlatformFee: bd.PlatformFee,
		TotalPrice:  bd.UserPayment,
		Notes:       notes,
	}
}

// ConfirmBooking transitions a pending booking to confirmed after the
// payment bridge validates the payment. Confirming an already confirmed
// booking is an idempotent no-op; a cancelled booking cannot be confirmed.
func (s *Service) ConfirmBooking(ctx context.Context, id int64, paymentID string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case domain.BookingConfirmed:
		return b, nil
	case domain.BookingCancelled:
		return nil, fmt.Errorf("%w: cancelled bookings cannot be confirmed", ErrInvalidTransition)
	}

	if !s.payments.ValidatePaymentForBooking(ctx, b.ID, paymentID) {
		return nil, ErrPaymentRejected
	}

	b.Status = domain.BookingConfirmed
	b.PaymentID = paymentID
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	s.metrics.BookingsConfirmed.Inc()
	s.log.Info().Int64("booking_id", b.ID).Str("payment_id", paymentID).Msg("booking confirmed")
	return b, nil
}

// Cancel cancels a booking more than two hours before its start. A lead
// time of exactly two hours or less is rejected. When userID is non-zero
// the booking must belong to that user.
func (s *Service) Cancel(ctx context.Context, id, userID int64, reason string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != 0 && b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if b.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking is already cancelled", ErrInvalidTransition)
	}

	now := s.now()
	if b.StartsAt().Sub(now) <= cancellationLead {
		return nil, ErrCancellationWindow
	}

	s.markCancelled(b, reason, now)
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	s.metrics.BookingsCancelled.Inc()
	s.log.Info().Int64("booking_id", b.ID).Str("reason", reason).Msg("booking cancelled")
	return b, nil
}

// CancelRecurrentSeries bulk-cancels the confirmed bookings of a series.
// Pending and already-cancelled members are left untouched; they never
// went through the paid path and must be handled individually.
func (s *Service) CancelRecurrentSeries(ctx context.Context, recurrenceID string, reason string) ([]domain.Booking, error) {
	confirmed, err := s.bookings.GetByRecurrence(ctx, recurrenceID, domain.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	if len(confirmed) == 0 {
		return []domain.Booking{}, nil
	}

	now := s.now()
	for i := range confirmed {
		s.markCancelled(&confirmed[i], reason, now)
	}
	if err := s.bookings.SaveAll(ctx, confirmed); err != nil {
		return nil, err
	}

	s.metrics.BookingsCancelled.Add(float64(len(confirmed)))
	s.log.Info().Str("recurrence_id", recurrenceID).Int("cancelled", len(confirmed)).
		Msg("recurring series cancelled")
	return confirmed, nil
}

func (s *Service) markCancelled(b *domain.Booking, reason string, now time.Time) {
	b.Status = domain.BookingCancelled
	b.CancelledAt = &now
	if reason != "" {
		note := "Cancelled: " + reason
		if b.Notes == "" {
			b.Notes = note
		} else {
			b.Notes = b.Notes + "\n" + note
		}
	}
}

func (s *Service) FindAll(ctx context.Context, userID int64, req ListRequest) ([]domain.Booking, error) {
	f := repository.BookingFilters{
		UserID:  userID,
		FieldID: req.FieldID,
		Status:  domain.BookingStatus(req.Status),
	}
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		f.Date = &d
	}
	return s.bookings.Find(ctx, f)
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, id)
}

// GetPaymentStatus reports the booking's lifecycle state plus, when a
// payment has been recorded, the gateway's current view of it. Gateway
// failures degrade to a response without the payment detail.
func (s *Service) GetPaymentStatus(ctx context.Context, bookingID int64) (*PaymentStatusResult, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	res := &PaymentStatusResult{
		BookingID:     b.ID,
		BookingStatus: b.Status,
		PaymentID:     b.PaymentID,
	}
	if b.PaymentID == "" {
		return res, nil
	}

	ps, err := s.payments.GetPaymentStatus(ctx, b.PaymentID)
	if err != nil {
		s.log.Warn().Err(err).Int64("booking_id", b.ID).Str("payment_id", b.PaymentID).
			Msg("payment status lookup failed")
		return res, nil
	}
	res.Payment = ps
	return res, nil
}

// ProcessPaymentWebhook records the inbound event and, for an approved
// payment referencing a booking, confirms it asynchronously. The caller
// always gets success; confirmation failures only reach the log, so the
// gateway never retry-storms over downstream problems.
func (s *Service) ProcessPaymentWebhook(payload WebhookPayload) {
	s.metrics.WebhooksReceived.WithLabelValues(payload.Type, payload.Data.Status).Inc()
	s.payments.RecordWebhook(payload.Type, payload.Data.ID, payload.Data.Status)

	if payload.Type != "payment" || payload.Data.Status != backmp.StatusApproved {
		return
	}

	bookingID, ok := parseBookingRef(payload.Data.ExternalReference)
	if !ok {
		s.log.Warn().Str("external_reference", payload.Data.ExternalReference).
			Msg("webhook reference does not match a booking")
		return
	}

	paymentID := payload.Data.ID
	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		ctx, cancel := context.WithTimeout(context.Background(), webhookConfirmTimeout)
		defer cancel()

		if _, err := s.ConfirmBooking(ctx, bookingID, paymentID); err != nil {
			s.log.Error().Err(err).Int64("booking_id", bookingID).Str("payment_id", paymentID).
				Msg("webhook confirmation failed")
		}
	}()
}

// Wait blocks until in-flight webhook confirmations finish. Used on
// shutdown and by tests.
func (s *Service) Wait() {
	s.jobs.Wait()
}

// GetAvailableSlots lists the one-hour windows still open on a date:
// fixed hourly slots inside business hours minus confirmed bookings.
// Closed dates and non-operating weekdays return an empty list.
func (s *Service) GetAvailableSlots(ctx context.Context, fieldID int64, dateStr string) ([]Slot, error) {
	field, err := s.getField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	bh := field.BusinessHourFor(date.Weekday())
	if bh == nil {
		return []Slot{}, nil
	}
	business, err := timeslot.NewRange(bh.OpenTime, bh.CloseTime)
	if err != nil {
		return []Slot{}, nil
	}

	specials, err := s.specialHours.FindByFieldAndDate(ctx, fieldID, date)
	if err != nil {
		return nil, err
	}
	var specialPrice *float64
	for i := range specials {
		if specials[i].IsClosed {
			return []Slot{}, nil
		}
		if specialPrice == nil && specials[i].SpecialPrice != nil {
			specialPrice = specials[i].SpecialPrice
		}
	}

	confirmed, err := s.bookings.GetConfirmedForFieldDate(ctx, fieldID, date)
	if err != nil {
		return nil, err
	}
	taken := make([]timeslot.Range, 0, len(confirmed))
	for i := range confirmed {
		r, err := timeslot.NewRange(confirmed[i].StartTime, confirmed[i].EndTime)
		if err != nil {
			continue
		}
		taken = append(taken, r)
	}

	price := s.pricing.DisplayPricePerHour(field, specialPrice)

	slots := []Slot{}
	for start := business.Start; start+60 <= business.End; start += 60 {
		candidate := timeslot.Range{Start: start, End: start + 60}
		blocked := false
		for _, t := range taken {
			if candidate.Overlaps(t) {
				blocked = true
				break
			}
		}
		if !blocked {
			slots = append(slots, Slot{
				StartTime: candidate.Start.Format(),
				EndTime:   candidate.End.Format(),
				Price:     price,
			})
		}
	}
	return slots, nil
}

func (s *Service) getField(ctx context.Context, id int64) (*domain.Field, error) {
	f, err := s.fields.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func advance(d time.Time, patternType string, interval int) time.Time {
	switch patternType {
	case "daily":
		return d.AddDate(0, 0, interval)
	case "weekly":
		return d.AddDate(0, 0, interval*7)
	case "monthly":
		return d.AddDate(0, interval, 0)
	default:
		return d.AddDate(0, 0, interval)
	}
}

func parseBookingRef(ref string) (int64, bool) {
	if !strings.HasPrefix(ref, bookingRefPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(ref, bookingRefPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return d, nil
}
