package repository

import (
	"context"
	"errors"

	"turnosya/internal/domain"

	"gorm.io/gorm"
)

// ErrDuplicateReview is returned when a user already reviewed the field,
// per the idx_review_user_field unique index.
var ErrDuplicateReview = errors.New("user already reviewed this field")

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) GetByField(ctx context.Context, fieldID int64, limit, offset int) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var reviews []domain.Review
	err := q.Find(&reviews).Error
	return reviews, err
}

// Aggregate returns the review count and average rating for a field.
func (r *ReviewRepository) Aggregate(ctx context.Context, fieldID int64) (count int64, average float64, err error) {
	row := struct {
		Cnt int64
		Avg float64
	}{}
	err = r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COUNT(*) AS cnt, COALESCE(AVG(rating), 0) AS avg").
		Where("field_id = ?", fieldID).
		Scan(&row).Error
	return row.Cnt, row.Avg, err
}
