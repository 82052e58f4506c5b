// Package review handles field reviews and keeps the denormalized rating
// aggregates on the field row current.
package review

import (
	"context"
	"errors"
	"fmt"
	"math"

	"turnosya/internal/domain"
	"turnosya/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Service struct {
	reviews ReviewStore
	fields  FieldStore
	log     zerolog.Logger
}

func NewService(reviews ReviewStore, fields FieldStore, log zerolog.Logger) *Service {
	return &Service{
		reviews: reviews,
		fields:  fields,
		log:     log.With().Str("component", "review").Logger(),
	}
}

type CreateReviewRequest struct {
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
	UserName  string `json:"user_name"`
	BookingID *int64 `json:"booking_id"`
}

// Create stores one review per user per field and refreshes the field's
// rating aggregates. The refresh failing does not undo the review; the
// next review recomputes from scratch anyway.
func (s *Service) Create(ctx context.Context, fieldID, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.fields.GetByID(ctx, fieldID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}

	rv := &domain.Review{
		FieldID:   fieldID,
		UserID:    userID,
		UserName:  req.UserName,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	if err := s.refreshAggregates(ctx, fieldID); err != nil {
		s.log.Warn().Err(err).Int64("field_id", fieldID).Msg("rating aggregate refresh failed")
	}

	return rv, nil
}

func (s *Service) GetByField(ctx context.Context, fieldID int64, limit, offset int) ([]domain.Review, error) {
	if _, err := s.fields.GetByID(ctx, fieldID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	return s.reviews.GetByField(ctx, fieldID, limit, offset)
}

func (s *Service) refreshAggregates(ctx context.Context, fieldID int64) error {
	count, average, err := s.reviews.Aggregate(ctx, fieldID)
	if err != nil {
		return err
	}
	rounded := math.Round(average*10) / 10
	return s.fields.UpdateRating(ctx, fieldID, rounded, int(count))
}
