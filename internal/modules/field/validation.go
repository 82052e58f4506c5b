package field

import (
	"context"
	"fmt"
	"time"

	"turnosya/internal/domain"
	"turnosya/internal/pkg/timeslot"
)

// validateTimeRange checks that a special-hours request is coherent:
// closures need no window, everything else needs open < close.
func validateTimeRange(openTime, closeTime string, isClosed bool) error {
	if isClosed {
		return nil
	}
	if openTime == "" || closeTime == "" {
		return fmt.Errorf("%w: open and close times are required unless the day is closed", ErrValidation)
	}
	if _, err := timeslot.NewRange(openTime, closeTime); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// validateWithinBusinessHours requires the special window to sit inside the
// weekday's regular schedule. A weekday without a schedule entry means the
// field does not operate that day at all.
func validateWithinBusinessHours(f *domain.Field, date time.Time, openTime, closeTime string) error {
	if openTime == "" || closeTime == "" {
		return nil
	}

	bh := f.BusinessHourFor(date.Weekday())
	if bh == nil {
		return fmt.Errorf("%w: field does not operate on %s", ErrOutOfBusinessHours, date.Weekday())
	}

	window, err := timeslot.NewRange(openTime, closeTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	business, err := timeslot.NewRange(bh.OpenTime, bh.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: malformed business hours %s-%s", ErrValidation, bh.OpenTime, bh.CloseTime)
	}

	if !window.Within(business) {
		return fmt.Errorf("%w: %s-%s must be within %s-%s",
			ErrOutOfBusinessHours, openTime, closeTime, bh.OpenTime, bh.CloseTime)
	}
	return nil
}

// validateNoOverlaps rejects a window that intersects any other special-hours
// window already stored for the same field and date. Closed or incomplete
// rows cannot conflict. excludeID skips the row being updated.
func (s *Service) validateNoOverlaps(ctx context.Context, fieldID int64, date time.Time, openTime, closeTime string, excludeID int64) error {
	if openTime == "" || closeTime == "" {
		return nil
	}

	candidate, err := timeslot.NewRange(openTime, closeTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.specialHours.FindByFieldAndDate(ctx, fieldID, date)
	if err != nil {
		return err
	}

	for i := range existing {
		sh := &existing[i]
		if sh.ID == excludeID || !sh.HasWindow() {
			continue
		}
		window, err := timeslot.NewRange(sh.OpenTime, sh.CloseTime)
		if err != nil {
			continue
		}
		if candidate.Overlaps(window) {
			return fmt.Errorf("%w: %s-%s overlaps %s-%s",
				ErrOverlapConflict, openTime, closeTime, sh.OpenTime, sh.CloseTime)
		}
	}
	return nil
}

// GetConflicts reports every pairwise overlap among a date's special-hours
// rows plus the rows falling outside business hours. Non-mutating; meant
// for owner tooling and audits.
func (s *Service) GetConflicts(ctx context.Context, fieldID int64, date time.Time) (*Conflicts, error) {
	f, err := s.getField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	rows, err := s.specialHours.FindByFieldAndDate(ctx, fieldID, date)
	if err != nil {
		return nil, err
	}

	out := &Conflicts{
		Overlaps:              []OverlapPair{},
		BusinessHourConflicts: []domain.SpecialHours{},
	}

	for i := 0; i < len(rows); i++ {
		if !rows[i].HasWindow() {
			continue
		}
		ri, err := timeslot.NewRange(rows[i].OpenTime, rows[i].CloseTime)
		if err != nil {
			continue
		}

		for j := i + 1; j < len(rows); j++ {
			if !rows[j].HasWindow() {
				continue
			}
			rj, err := timeslot.NewRange(rows[j].OpenTime, rows[j].CloseTime)
			if err != nil {
				continue
			}
			if ri.Overlaps(rj) {
				out.Overlaps = append(out.Overlaps, OverlapPair{First: rows[i], Second: rows[j]})
			}
		}

		if err := validateWithinBusinessHours(f, date, rows[i].OpenTime, rows[i].CloseTime); err != nil {
			out.BusinessHourConflicts = append(out.BusinessHourConflicts, rows[i])
		}
	}

	return out, nil
}
