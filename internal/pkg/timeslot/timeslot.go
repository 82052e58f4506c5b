// Package timeslot is the single source of truth for wall-clock "HH:MM"
// times and half-open interval arithmetic. Every overlap decision in the
// service (availability checks, slot listing, special-hours validation)
// goes through Range.Overlaps so the boundary semantics cannot diverge.
package timeslot

import (
	"errors"
	"fmt"
	"regexp"
)

// Minutes is a time of day expressed as minutes since midnight.
type Minutes int

var ErrBadClock = errors.New("time must be in HH:MM format")

var clockRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// Parse converts "HH:MM" to minutes since midnight.
func Parse(s string) (Minutes, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	var h, mm int
	fmt.Sscanf(s, "%d:%d", &h, &mm)
	return Minutes(h*60 + mm), nil
}

// Format renders minutes since midnight as zero-padded "HH:MM".
func (m Minutes) Format() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Range is a half-open interval [Start, End) on a single day.
type Range struct {
	Start Minutes
	End   Minutes
}

// NewRange parses both bounds and requires start < end.
func NewRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	if s >= e {
		return Range{}, fmt.Errorf("start %s must be before end %s", start, end)
	}
	return Range{Start: s, End: e}, nil
}

// Hours is the duration of the range as a fractional hour count.
func (r Range) Hours() float64 {
	return float64(r.End-r.Start) / 60.0
}

// Overlaps reports whether two half-open intervals intersect.
// Touching bounds (r.End == o.Start) do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Within reports whether r lies entirely inside o.
func (r Range) Within(o Range) bool {
	return r.Start >= o.Start && r.End <= o.End
}
