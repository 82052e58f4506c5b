package repository

import (
	"context"

	"turnosya/internal/domain"

	"gorm.io/gorm"
)

type FieldFilters struct {
	MinPrice    float64
	MaxPrice    float64
	Surface     string
	HasLighting *bool
	IsIndoor    *bool
	Limit       int
	Offset      int
}

type FieldRepository struct {
	db *gorm.DB
}

func NewFieldRepository(db *gorm.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) Create(ctx context.Context, f *domain.Field) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FieldRepository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	var f domain.Field
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FieldRepository) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Field, error) {
	var fields []domain.Field
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&fields).Error
	return fields, err
}

func (r *FieldRepository) Search(ctx context.Context, f FieldFilters) ([]domain.Field, error) {
	q := r.db.WithContext(ctx).Model(&domain.Field{})

	if f.MinPrice > 0 {
		q = q.Where("price_per_hour >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_hour <= ?", f.MaxPrice)
	}
	if f.Surface != "" {
		q = q.Where("surface = ?", f.Surface)
	}
	if f.HasLighting != nil {
		q = q.Where("has_lighting = ?", *f.HasLighting)
	}
	if f.IsIndoor != nil {
		q = q.Where("is_indoor = ?", *f.IsIndoor)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var fields []domain.Field
	err := q.Order("average_rating DESC").Find(&fields).Error
	return fields, err
}

// Nearby returns fields within radiusKm of the point, closest first,
// using the haversine great-circle distance.
func (r *FieldRepository) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.Field, error) {
	q := `
SELECT * FROM (
  SELECT *, (
    6371 * acos(
      cos(radians(?)) * cos(radians(latitude)) *
      cos(radians(longitude) - radians(?)) +
      sin(radians(?)) * sin(radians(latitude))
    )
  ) AS distance
  FROM fields
) f
WHERE f.distance <= ?
ORDER BY f.distance
`
	var fields []domain.Field
	err := r.db.WithContext(ctx).Raw(q, lat, lng, lat, radiusKm).Scan(&fields).Error
	return fields, err
}

// UpdateRating replaces the denormalized review aggregates.
func (r *FieldRepository) UpdateRating(ctx context.Context, fieldID int64, average float64, count int) error {
	return r.db.WithContext(ctx).Model(&domain.Field{}).
		Where("id = ?", fieldID).
		Updates(map[string]any{"average_rating": average, "review_count": count}).Error
}
