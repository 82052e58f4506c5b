package field

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turnosya/internal/domain"
	"turnosya/internal/pkg/timeslot"
	"turnosya/internal/repository"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	fields       FieldStore
	specialHours SpecialHoursStore
}

func NewService(fields FieldStore, specialHours SpecialHoursStore) *Service {
	return &Service{fields: fields, specialHours: specialHours}
}

// CreateField validates the weekly schedule and persists the field.
func (s *Service) CreateField(ctx context.Context, ownerID int64, req CreateFieldRequest) (*domain.Field, error) {
	if err := validateBusinessHours(req.BusinessHours); err != nil {
		return nil, err
	}

	f := &domain.Field{
		OwnerID:       ownerID,
		Name:          req.Name,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PricePerHour:  req.PricePerHour,
		BusinessHours: req.BusinessHours,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Surface:       req.Surface,
		HasLighting:   req.HasLighting,
		IsIndoor:      req.IsIndoor,
		MaxPlayers:    req.MaxPlayers,
	}

	if err := s.fields.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	return s.getField(ctx, id)
}

func (s *Service) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Field, error) {
	return s.fields.GetByOwner(ctx, ownerID)
}

func (s *Service) Search(ctx context.Context, req SearchRequest) ([]domain.Field, error) {
	return s.fields.Search(ctx, repository.FieldFilters{
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		Surface:     req.Surface,
		HasLighting: req.HasLighting,
		IsIndoor:    req.IsIndoor,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
}

func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.Field, error) {
	if radiusKm <= 0 {
		radiusKm = 20
	}
	return s.fields.Nearby(ctx, lat, lng, radiusKm)
}

// CreateSpecialHours runs the full validator chain before persisting:
// coherent range, inside business hours, no overlap with existing windows.
func (s *Service) CreateSpecialHours(ctx context.Context, fieldID int64, req SpecialHoursRequest) (*domain.SpecialHours, error) {
	f, err := s.getField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if err := validateTimeRange(req.OpenTime, req.CloseTime, req.IsClosed); err != nil {
		return nil, err
	}
	if !req.IsClosed {
		if err := validateWithinBusinessHours(f, date, req.OpenTime, req.CloseTime); err != nil {
			return nil, err
		}
		if err := s.validateNoOverlaps(ctx, fieldID, date, req.OpenTime, req.CloseTime, 0); err != nil {
			return nil, err
		}
	}

	sh := &domain.SpecialHours{
		FieldID:      fieldID,
		Date:         date,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		IsClosed:     req.IsClosed,
		Reason:       req.Reason,
		SpecialPrice: req.SpecialPrice,
	}
	if err := s.specialHours.Create(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

// UpdateSpecialHours re-validates against every other row for the date.
func (s *Service) UpdateSpecialHours(ctx context.Context, fieldID, id int64, req SpecialHoursRequest) (*domain.SpecialHours, error) {
	f, err := s.getField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	sh, err := s.specialHours.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sh.FieldID != fieldID {
		return nil, ErrNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if err := validateTimeRange(req.OpenTime, req.CloseTime, req.IsClosed); err != nil {
		return nil, err
	}
	if !req.IsClosed {
		if err := validateWithinBusinessHours(f, date, req.OpenTime, req.CloseTime); err != nil {
			return nil, err
		}
		if err := s.validateNoOverlaps(ctx, fieldID, date, req.OpenTime, req.CloseTime, id); err != nil {
			return nil, err
		}
	}

	sh.Date = date
	sh.OpenTime = req.OpenTime
	sh.CloseTime = req.CloseTime
	sh.IsClosed = req.IsClosed
	sh.Reason = req.Reason
	sh.SpecialPrice = req.SpecialPrice

	if err := s.specialHours.Update(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *Service) DeleteSpecialHours(ctx context.Context, fieldID, id int64) error {
	sh, err := s.specialHours.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if sh.FieldID != fieldID {
		return ErrNotFound
	}
	return s.specialHours.Delete(ctx, id)
}

func (s *Service) GetSpecialHours(ctx context.Context, fieldID int64, from, to string) ([]domain.SpecialHours, error) {
	if _, err := s.getField(ctx, fieldID); err != nil {
		return nil, err
	}

	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	return s.specialHours.FindByFieldBetween(ctx, fieldID, start, end)
}

func (s *Service) getField(ctx context.Context, id int64) (*domain.Field, error) {
	f, err := s.fields.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// validateBusinessHours enforces the schedule invariant: at most one entry
// per weekday, each with a valid HH:MM window.
func validateBusinessHours(hours []domain.BusinessHour) error {
	if len(hours) == 0 {
		return fmt.Errorf("%w: business hours are required", ErrValidation)
	}

	seen := map[int]bool{}
	for _, bh := range hours {
		if bh.Day < 0 || bh.Day > 6 {
			return fmt.Errorf("%w: day must be 0-6, got %d", ErrValidation, bh.Day)
		}
		if seen[bh.Day] {
			return fmt.Errorf("%w: duplicate business hours for day %d", ErrValidation, bh.Day)
		}
		seen[bh.Day] = true

		if _, err := timeslot.NewRange(bh.OpenTime, bh.CloseTime); err != nil {
			return fmt.Errorf("%w: day %d: %v", ErrValidation, bh.Day, err)
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return d, nil
}
