package field

import (
	"context"
	"time"

	"turnosya/internal/domain"
	"turnosya/internal/repository"
)

// FieldStore is the persistence boundary for fields.
type FieldStore interface {
	Create(ctx context.Context, f *domain.Field) error
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]domain.Field, error)
	Search(ctx context.Context, f repository.FieldFilters) ([]domain.Field, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.Field, error)
}

// SpecialHoursStore is the persistence boundary for date-scoped schedule
// exceptions.
type SpecialHoursStore interface {
	Create(ctx context.Context, sh *domain.SpecialHours) error
	Update(ctx context.Context, sh *domain.SpecialHours) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.SpecialHours, error)
	FindByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]domain.SpecialHours, error)
	FindByFieldBetween(ctx context.Context, fieldID int64, from, to time.Time) ([]domain.SpecialHours, error)
}
