package repository

import (
	"context"
	"time"

	"turnosya/internal/domain"

	"gorm.io/gorm"
)

type SpecialHoursRepository struct {
	db *gorm.DB
}

func NewSpecialHoursRepository(db *gorm.DB) *SpecialHoursRepository {
	return &SpecialHoursRepository{db: db}
}

func (r *SpecialHoursRepository) Create(ctx context.Context, sh *domain.SpecialHours) error {
	return r.db.WithContext(ctx).Create(sh).Error
}

func (r *SpecialHoursRepository) Update(ctx context.Context, sh *domain.SpecialHours) error {
	return r.db.WithContext(ctx).Save(sh).Error
}

func (r *SpecialHoursRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.SpecialHours{}, id).Error
}

func (r *SpecialHoursRepository) GetByID(ctx context.Context, id int64) (*domain.SpecialHours, error) {
	var sh domain.SpecialHours
	if err := r.db.WithContext(ctx).First(&sh, id).Error; err != nil {
		return nil, err
	}
	return &sh, nil
}

func (r *SpecialHoursRepository) FindByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]domain.SpecialHours, error) {
	var rows []domain.SpecialHours
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND date = ?", fieldID, date).
		Order("open_time").
		Find(&rows).Error
	return rows, err
}

func (r *SpecialHoursRepository) FindByFieldBetween(ctx context.Context, fieldID int64, from, to time.Time) ([]domain.SpecialHours, error) {
	var rows []domain.SpecialHours
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND date >= ? AND date <= ?", fieldID, from, to).
		Order("date, open_time").
		Find(&rows).Error
	return rows, err
}
