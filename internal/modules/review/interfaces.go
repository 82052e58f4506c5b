package review

import (
	"context"

	"turnosya/internal/domain"
)

type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByField(ctx context.Context, fieldID int64, limit, offset int) ([]domain.Review, error)
	Aggregate(ctx context.Context, fieldID int64) (count int64, average float64, err error)
}

type FieldStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
	UpdateRating(ctx context.Context, fieldID int64, average float64, count int) error
}
