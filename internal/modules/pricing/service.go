// Package pricing computes booking price breakdowns. The facility owner is
// paid the base price out of band; the platform only ever charges the user
// its 10% fee through the payment gateway.
package pricing

import (
	"math"

	"turnosya/internal/domain"
	"turnosya/internal/pkg/timeslot"
)

// PlatformFeeRate is the platform commission charged on top of the base
// price. Policy constant, not configuration.
const PlatformFeeRate = 0.10

// offPeakWindow grants a discount to bookings starting between 08:00 and
// 16:00, when fields sit mostly idle.
const (
	offPeakStart = timeslot.Minutes(8 * 60)
	offPeakEnd   = timeslot.Minutes(16 * 60)
	offPeakRate  = 0.15
)

// Breakdown is the value object returned per booking request. Discounts
// operate on copies; a Breakdown is never mutated in place.
type Breakdown struct {
	BasePrice     float64  `json:"base_price"`
	PlatformFee   float64  `json:"platform_fee"`
	DisplayPrice  float64  `json:"display_price"`
	UserPayment   float64  `json:"user_payment"`
	Hours         float64  `json:"hours"`
	IsSpecialHour bool     `json:"is_special_hour"`
	SpecialPrice  *float64 `json:"special_price,omitempty"`
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// CalculateBookingPrice builds the breakdown for one slot. When any
// special-hours record for the date carries a price override, that rate
// replaces the field's hourly price.
func (s *Service) CalculateBookingPrice(field *domain.Field, slot timeslot.Range, specialHours []domain.SpecialHours) Breakdown {
	hours := slot.Hours()

	var special *float64
	for i := range specialHours {
		if specialHours[i].SpecialPrice != nil {
			special = specialHours[i].SpecialPrice
			break
		}
	}

	var basePrice float64
	isSpecial := false
	if special != nil {
		basePrice = *special * hours
		isSpecial = true
	} else {
		basePrice = field.PricePerHour * hours
	}

	platformFee := round2(basePrice * PlatformFeeRate)

	return Breakdown{
		BasePrice:     round2(basePrice),
		PlatformFee:   platformFee,
		DisplayPrice:  round2(basePrice + platformFee),
		UserPayment:   platformFee,
		Hours:         hours,
		IsSpecialHour: isSpecial,
		SpecialPrice:  special,
	}
}

// OffPeakDiscount returns the discount rate for a start time, zero when
// the slot starts outside the off-peak window.
func (s *Service) OffPeakDiscount(start timeslot.Minutes) float64 {
	if start >= offPeakStart && start < offPeakEnd {
		return offPeakRate
	}
	return 0
}

// ApplyDiscount reduces the base price by the given rate and recomputes
// the dependent amounts. The fee stays exactly 10% of the reduced base.
// A zero rate returns the breakdown unchanged.
func (s *Service) ApplyDiscount(b Breakdown, rate float64) Breakdown {
	if rate == 0 {
		return b
	}

	newBase := round2(b.BasePrice - b.BasePrice*rate)
	newFee := round2(newBase * PlatformFeeRate)

	b.BasePrice = newBase
	b.PlatformFee = newFee
	b.DisplayPrice = round2(newBase + newFee)
	b.UserPayment = newFee
	return b
}

// DisplayPricePerHour is the per-hour rate shown to users, fee included.
func (s *Service) DisplayPricePerHour(field *domain.Field, specialPrice *float64) float64 {
	base := field.PricePerHour
	if specialPrice != nil {
		base = *specialPrice
	}
	return round2(base * (1 + PlatformFeeRate))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
