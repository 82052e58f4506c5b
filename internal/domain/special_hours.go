package domain

import "time"

// SpecialHours is a date-scoped exception to a field's weekly schedule:
// either a closure or an override window, optionally with its own price.
type SpecialHours struct {
	ID           int64     `json:"id"`
	FieldID      int64     `json:"field_id" gorm:"index:idx_special_hours_date"`
	Date         time.Time `json:"date" gorm:"index:idx_special_hours_date"`
	OpenTime     string    `json:"open_time,omitempty"`
	CloseTime    string    `json:"close_time,omitempty"`
	IsClosed     bool      `json:"is_closed"`
	Reason       string    `json:"reason,omitempty"`
	SpecialPrice *float64  `json:"special_price,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasWindow reports whether the record defines a usable open window.
func (sh *SpecialHours) HasWindow() bool {
	return !sh.IsClosed && sh.OpenTime != "" && sh.CloseTime != ""
}
