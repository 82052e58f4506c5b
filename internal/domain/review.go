package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	FieldID   int64     `json:"field_id" gorm:"uniqueIndex:idx_review_user_field;index:idx_review_field"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_review_user_field"`
	UserName  string    `json:"user_name"`
	BookingID *int64    `json:"booking_id,omitempty"`
	Rating    int       `json:"rating" gorm:"index:idx_review_rating"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
