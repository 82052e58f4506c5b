package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"turnosya/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateSlot is returned when an insert trips the idx_no_overbooking
// partial unique index, i.e. another non-cancelled booking already holds
// the exact (field, date, start) slot.
var ErrDuplicateSlot = errors.New("slot already taken")

type BookingFilters struct {
	UserID  int64
	FieldID int64
	Date    *time.Time
	Status  domain.BookingStatus
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return err
	}
	return nil
}

// CreateBatch persists a recurrence series in one insert.
func (r *BookingRepository) CreateBatch(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&bookings).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return err
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Find(ctx context.Context, f BookingFilters) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})

	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.FieldID > 0 {
		q = q.Where("field_id = ?", f.FieldID)
	}
	if f.Date != nil {
		q = q.Where("date = ?", *f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var bookings []domain.Booking
	err := q.Order("date, start_time").Find(&bookings).Error
	return bookings, err
}

// GetConfirmedForFieldDate returns the bookings that actually block slots.
// Pending holds and cancelled bookings never do.
func (r *BookingRepository) GetConfirmedForFieldDate(ctx context.Context, fieldID int64, date time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND date = ? AND status = ?", fieldID, date, domain.BookingConfirmed).
		Order("start_time").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) GetByRecurrence(ctx context.Context, recurrenceID string, status domain.BookingStatus) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Where("recurrence_id = ?", recurrenceID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []domain.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingRepository) SaveAll(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&bookings).Error
}

// isUniqueViolation recognizes unique-index violations from both drivers:
// PostgreSQL error code 23505 and SQLite's constraint message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
