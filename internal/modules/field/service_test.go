package field

import (
	"context"
	"testing"
	"time"

	"turnosya/internal/domain"
	"turnosya/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockFieldStore struct {
	mock.Mock
}

func (m *mockFieldStore) Create(ctx context.Context, f *domain.Field) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *mockFieldStore) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Field), args.Error(1)
}

func (m *mockFieldStore) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Field, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Field), args.Error(1)
}

func (m *mockFieldStore) Search(ctx context.Context, f repository.FieldFilters) ([]domain.Field, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Field), args.Error(1)
}

func (m *mockFieldStore) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.Field, error) {
	args := m.Called(ctx, lat, lng, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Field), args.Error(1)
}

type mockSpecialHoursStore struct {
	mock.Mock
}

func (m *mockSpecialHoursStore) Create(ctx context.Context, sh *domain.SpecialHours) error {
	args := m.Called(ctx, sh)
	return args.Error(0)
}

func (m *mockSpecialHoursStore) Update(ctx context.Context, sh *domain.SpecialHours) error {
	args := m.Called(ctx, sh)
	return args.Error(0)
}

func (m *mockSpecialHoursStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSpecialHoursStore) GetByID(ctx context.Context, id int64) (*domain.SpecialHours, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpecialHours), args.Error(1)
}

func (m *mockSpecialHoursStore) FindByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]domain.SpecialHours, error) {
	args := m.Called(ctx, fieldID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpecialHours), args.Error(1)
}

func (m *mockSpecialHoursStore) FindByFieldBetween(ctx context.Context, fieldID int64, from, to time.Time) ([]domain.SpecialHours, error) {
	args := m.Called(ctx, fieldID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpecialHours), args.Error(1)
}

func testField() *domain.Field {
	return &domain.Field{
		ID:           1,
		OwnerID:      10,
		Name:         "Cancha Norte",
		PricePerHour: 1000,
		BusinessHours: []domain.BusinessHour{
			{Day: 0, OpenTime: "08:00", CloseTime: "22:00"},
			{Day: 1, OpenTime: "08:00", CloseTime: "22:00"},
			{Day: 2, OpenTime: "08:00", CloseTime: "22:00"},
			{Day: 3, OpenTime: "08:00", CloseTime: "22:00"},
			{Day: 4, OpenTime: "08:00", CloseTime: "22:00"},
			{Day: 5, OpenTime: "10:00", CloseTime: "23:00"},
			{Day: 6, OpenTime: "10:00", CloseTime: "23:00"},
		},
	}
}

// 2026-03-16 is a Monday.
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func TestCreateField_Valid(t *testing.T) {
	fields := new(mockFieldStore)
	svc := NewService(fields, new(mockSpecialHoursStore))

	fields.On("Create", mock.Anything, mock.AnythingOfType("*domain.Field")).Return(nil)

	f, err := svc.CreateField(context.Background(), 10, CreateFieldRequest{
		Name:         "Cancha Norte",
		Address:      "Av. Libertador 1234",
		Latitude:     -34.6,
		Longitude:    -58.4,
		PricePerHour: 1000,
		Surface:      "synthetic",
		BusinessHours: []domain.BusinessHour{
			{Day: 1, OpenTime: "08:00", CloseTime: "22:00"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), f.OwnerID)
	fields.AssertExpectations(t)
}

func TestCreateField_DuplicateWeekday(t *testing.T) {
	svc := NewService(new(mockFieldStore), new(mockSpecialHoursStore))

	_, err := svc.CreateField(context.Background(), 10, CreateFieldRequest{
		Name:         "Cancha Norte",
		Address:      "x",
		Latitude:     -34.6,
		Longitude:    -58.4,
		PricePerHour: 1000,
		Surface:      "synthetic",
		BusinessHours: []domain.BusinessHour{
			{Day: 1, OpenTime: "08:00", CloseTime: "12:00"},
			{Day: 1, OpenTime: "14:00", CloseTime: "22:00"},
		},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateField_InvertedWindow(t *testing.T) {
	svc := NewService(new(mockFieldStore), new(mockSpecialHoursStore))

	_, err := svc.CreateField(context.Background(), 10, CreateFieldRequest{
		Name:         "Cancha Norte",
		Address:      "x",
		Latitude:     -34.6,
		Longitude:    -58.4,
		PricePerHour: 1000,
		Surface:      "synthetic",
		BusinessHours: []domain.BusinessHour{
			{Day: 1, OpenTime: "22:00", CloseTime: "08:00"},
		},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetByID_NotFound(t *testing.T) {
	fields := new(mockFieldStore)
	svc := NewService(fields, new(mockSpecialHoursStore))

	fields.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSpecialHours_Valid(t *testing.T) {
	fields := new(mockFieldStore)
	specials := new(mockSpecialHoursStore)
	svc := NewService(fields, specials)

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)
	specials.On("FindByFieldAndDate", mock.Anything, int64(1), monday).Return([]domain.SpecialHours{}, nil)
	specials.On("Create", mock.Anything, mock.AnythingOfType("*domain.SpecialHours")).Return(nil)

	sh, err := svc.CreateSpecialHours(context.Background(), 1, SpecialHoursRequest{
		Date:      "2026-03-16",
		OpenTime:  "10:00",
		CloseTime: "14:00",
		Reason:    "Torneo local",
	})

	require.NoError(t, err)
	assert.Equal(t, monday, sh.Date)
	specials.AssertExpectations(t)
}

func TestCreateSpecialHours_ClosureSkipsWindowChecks(t *testing.T) {
	fields := new(mockFieldStore)
	specials := new(mockSpecialHoursStore)
	svc := NewService(fields, specials)

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)
	specials.On("Create", mock.Anything, mock.AnythingOfType("*domain.SpecialHours")).Return(nil)

	sh, err := svc.CreateSpecialHours(context.Background(), 1, SpecialHoursRequest{
		Date:     "2026-03-16",
		IsClosed: true,
		Reason:   "Maintenance",
	})

	require.NoError(t, err)
	assert.True(t, sh.IsClosed)
	specials.AssertNotCalled(t, "FindByFieldAndDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSpecialHours_OutsideBusinessHours(t *testing.T) {
	fields := new(mockFieldStore)
	specials := new(mockSpecialHoursStore)
	svc := NewService(fields, specials)

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)

	_, err := svc.CreateSpecialHours(context.Background(), 1, SpecialHoursRequest{
		Date:      "2026-03-16",
		OpenTime:  "06:00",
		CloseTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrOutOfBusinessHours)
}

func TestCreateSpecialHours_Overlap(t *testing.T) {
	fields := new(mockFieldStore)
	specials := new(mockSpecialHoursStore)
	svc := NewService(fields, specials)

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)
	specials.On("FindByFieldAndDate", mock.Anything, int64(1), monday).Return([]domain.SpecialHours{
		{ID: 5, FieldID: 1, Date: monday, OpenTime: "12:00", CloseTime: "16:00"},
	}, nil)

	_, err := svc.CreateSpecialHours(context.Background(), 1, SpecialHoursRequest{
		Date:      "2026-03-16",
		OpenTime:  "14:00",
		CloseTime: "18:00",
	})

	assert.ErrorIs(t, err, ErrOverlapConflict)
}

func TestCreateSpecialHours_AdjacentWindowsAllowed(t *testing.T) {
	fields := new(mockFieldStore)
	specials := new(mockSpecialHoursStore)
	svc := NewService(fields, specials)

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)
	specials.On("FindByFieldAndDate", mock.Anything, int64(1), monday).Return([]domain.SpecialHours{
		{ID: 5, FieldID: 1, Date: monday, OpenTime: "10:00", CloseTime: "14:00"},
	}, nil)
	specials.On("Create", mock.Anything, mock.AnythingOfType("*domain.SpecialHours")).Return(nil)

	_, err := svc.CreateSpecialHours(context.Background(), 1, SpecialHoursRequest{
		Date:      "2026-03-16",
		OpenTime:  "14:00",
		CloseTime: "18:00",
	})

	assert.NoError(t, err)
}

func TestUpdateSpecialHours_ExcludesSelfFromOverlapCheck(t *testing.T) {
	fields := new(mockFieldStore)
	specials := new(mockSpecialHoursStore)
	svc := NewService(fields, specials)

	existing := &domain.SpecialHours{ID: 5, FieldID: 1, Date: monday, OpenTime: "12:00", CloseTime: "16:00"}

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)
	specials.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	specials.On("FindByFieldAndDate", mock.Anything, int64(1), monday).Return([]domain.SpecialHours{*existing}, nil)
	specials.On("Update", mock.Anything, mock.AnythingOfType("*domain.SpecialHours")).Return(nil)

	sh, err := svc.UpdateSpecialHours(context.Background(), 1, 5, SpecialHoursRequest{
		Date:      "2026-03-16",
		OpenTime:  "13:00",
		CloseTime: "17:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "13:00", sh.OpenTime)
}

func TestUpdateSpecialHours_WrongField(t *testing.T) {
	fields := new(mockFieldStore)
	specials := new(mockSpecialHoursStore)
	svc := NewService(fields, specials)

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)
	specials.On("GetByID", mock.Anything, int64(5)).Return(&domain.SpecialHours{ID: 5, FieldID: 2}, nil)

	_, err := svc.UpdateSpecialHours(context.Background(), 1, 5, SpecialHoursRequest{
		Date:      "2026-03-16",
		OpenTime:  "10:00",
		CloseTime: "12:00",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetConflicts(t *testing.T) {
	fields := new(mockFieldStore)
	specials := new(mockSpecialHoursStore)
	svc := NewService(fields, specials)

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)
	specials.On("FindByFieldAndDate", mock.Anything, int64(1), monday).Return([]domain.SpecialHours{
		{ID: 1, FieldID: 1, Date: monday, OpenTime: "10:00", CloseTime: "14:00"},
		{ID: 2, FieldID: 1, Date: monday, OpenTime: "12:00", CloseTime: "16:00"},
		{ID: 3, FieldID: 1, Date: monday, OpenTime: "06:00", CloseTime: "07:00"},
		{ID: 4, FieldID: 1, Date: monday, IsClosed: true},
	}, nil)

	conflicts, err := svc.GetConflicts(context.Background(), 1, monday)

	require.NoError(t, err)
	require.Len(t, conflicts.Overlaps, 1)
	assert.Equal(t, int64(1), conflicts.Overlaps[0].First.ID)
	assert.Equal(t, int64(2), conflicts.Overlaps[0].Second.ID)
	require.Len(t, conflicts.BusinessHourConflicts, 1)
	assert.Equal(t, int64(3), conflicts.BusinessHourConflicts[0].ID)
}

func TestGetSpecialHours_InvertedRange(t *testing.T) {
	fields := new(mockFieldStore)
	svc := NewService(fields, new(mockSpecialHoursStore))

	fields.On("GetByID", mock.Anything, int64(1)).Return(testField(), nil)

	_, err := svc.GetSpecialHours(context.Background(), 1, "2026-03-20", "2026-03-16")
	assert.ErrorIs(t, err, ErrValidation)
}
