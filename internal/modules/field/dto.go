package field

import "turnosya/internal/domain"

type CreateFieldRequest struct {
	Name          string                `json:"name" binding:"required"`
	Address       string                `json:"address" binding:"required"`
	Latitude      float64               `json:"latitude" binding:"required"`
	Longitude     float64               `json:"longitude" binding:"required"`
	PricePerHour  float64               `json:"price_per_hour" binding:"required,gt=0"`
	BusinessHours []domain.BusinessHour `json:"business_hours" binding:"required"`
	Description   string                `json:"description"`
	ImageURL      string                `json:"image_url"`
	Surface       string                `json:"surface" binding:"required"`
	HasLighting   bool                  `json:"has_lighting"`
	IsIndoor      bool                  `json:"is_indoor"`
	MaxPlayers    int                   `json:"max_players"`
}

type SpecialHoursRequest struct {
	Date         string   `json:"date" binding:"required"` // YYYY-MM-DD
	OpenTime     string   `json:"open_time"`
	CloseTime    string   `json:"close_time"`
	IsClosed     bool     `json:"is_closed"`
	Reason       string   `json:"reason"`
	SpecialPrice *float64 `json:"special_price"`
}

type SearchRequest struct {
	MinPrice    float64 `form:"min_price"`
	MaxPrice    float64 `form:"max_price"`
	Surface     string  `form:"surface"`
	HasLighting *bool   `form:"has_lighting"`
	IsIndoor    *bool   `form:"is_indoor"`
	Limit       int     `form:"limit"`
	Offset      int     `form:"offset"`
}

// OverlapPair is one pairwise special-hours conflict reported by GetConflicts.
type OverlapPair struct {
	First  domain.SpecialHours `json:"first"`
	Second domain.SpecialHours `json:"second"`
}

// Conflicts is the diagnostic result for a field's date: which special-hours
// windows intersect each other, and which fall outside business hours.
type Conflicts struct {
	Overlaps              []OverlapPair         `json:"overlaps"`
	BusinessHourConflicts []domain.SpecialHours `json:"business_hour_conflicts"`
}
