package review

import (
	"context"
	"testing"

	"turnosya/internal/domain"
	"turnosya/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockReviewStore struct {
	mock.Mock
}

func (m *mockReviewStore) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *mockReviewStore) GetByField(ctx context.Context, fieldID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, fieldID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewStore) Aggregate(ctx context.Context, fieldID int64) (int64, float64, error) {
	args := m.Called(ctx, fieldID)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

type mockFieldStore struct {
	mock.Mock
}

func (m *mockFieldStore) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Field), args.Error(1)
}

func (m *mockFieldStore) UpdateRating(ctx context.Context, fieldID int64, average float64, count int) error {
	args := m.Called(ctx, fieldID, average, count)
	return args.Error(0)
}

func TestCreateReview_UpdatesAggregates(t *testing.T) {
	reviews := new(mockReviewStore)
	fields := new(mockFieldStore)
	svc := NewService(reviews, fields, zerolog.Nop())

	fields.On("GetByID", mock.Anything, int64(1)).Return(&domain.Field{ID: 1}, nil)
	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	reviews.On("Aggregate", mock.Anything, int64(1)).Return(int64(3), 4.3333333, nil)
	fields.On("UpdateRating", mock.Anything, int64(1), 4.3, 3).Return(nil)

	rv, err := svc.Create(context.Background(), 1, 7, CreateReviewRequest{Rating: 5, Comment: "Great pitch"})

	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	fields.AssertCalled(t, "UpdateRating", mock.Anything, int64(1), 4.3, 3)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	svc := NewService(new(mockReviewStore), new(mockFieldStore), zerolog.Nop())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), 1, 7, CreateReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestCreateReview_Duplicate(t *testing.T) {
	reviews := new(mockReviewStore)
	fields := new(mockFieldStore)
	svc := NewService(reviews, fields, zerolog.Nop())

	fields.On("GetByID", mock.Anything, int64(1)).Return(&domain.Field{ID: 1}, nil)
	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(repository.ErrDuplicateReview)

	_, err := svc.Create(context.Background(), 1, 7, CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReview_FieldNotFound(t *testing.T) {
	reviews := new(mockReviewStore)
	fields := new(mockFieldStore)
	svc := NewService(reviews, fields, zerolog.Nop())

	fields.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), 99, 7, CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestCreateReview_AggregateFailureDoesNotFailReview(t *testing.T) {
	reviews := new(mockReviewStore)
	fields := new(mockFieldStore)
	svc := NewService(reviews, fields, zerolog.Nop())

	fields.On("GetByID", mock.Anything, int64(1)).Return(&domain.Field{ID: 1}, nil)
	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	reviews.On("Aggregate", mock.Anything, int64(1)).Return(int64(0), 0.0, assert.AnError)

	_, err := svc.Create(context.Background(), 1, 7, CreateReviewRequest{Rating: 4})

	assert.NoError(t, err)
}
