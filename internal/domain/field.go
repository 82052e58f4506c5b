package domain

import "time"

// BusinessHour is one recurring weekly open window. A field has at most one
// entry per weekday; a missing entry means the field is closed that day.
type BusinessHour struct {
	Day       int    `json:"day"` // 0 = Sunday .. 6 = Saturday
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type Field struct {
	ID            int64          `json:"id"`
	OwnerID       int64          `json:"owner_id" gorm:"index"`
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	PricePerHour  float64        `json:"price_per_hour"`
	BusinessHours []BusinessHour `json:"business_hours" gorm:"serializer:json"`
	Description   string         `json:"description,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	Surface       string         `json:"surface"`
	HasLighting   bool           `json:"has_lighting"`
	IsIndoor      bool           `json:"is_indoor"`
	MaxPlayers    int            `json:"max_players,omitempty"`
	AverageRating float64        `json:"average_rating"`
	ReviewCount   int            `json:"review_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BusinessHourFor returns the schedule entry for a weekday, or nil when the
// field does not operate that day.
func (f *Field) BusinessHourFor(day time.Weekday) *BusinessHour {
	for i := range f.BusinessHours {
		if f.BusinessHours[i].Day == int(day) {
			return &f.BusinessHours[i]
		}
	}
	return nil
}
