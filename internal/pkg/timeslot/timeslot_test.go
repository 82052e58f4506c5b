package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := Parse("09:30")
	require.NoError(t, err)
	assert.Equal(t, Minutes(570), m)

	m, err = Parse("00:00")
	require.NoError(t, err)
	assert.Equal(t, Minutes(0), m)

	m, err = Parse("23:59")
	require.NoError(t, err)
	assert.Equal(t, Minutes(1439), m)

	for _, bad := range []string{"24:00", "9:5", "nope", "12:60", ""} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrBadClock, "input %q", bad)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "09:05", Minutes(545).Format())
	assert.Equal(t, "00:00", Minutes(0).Format())
	assert.Equal(t, "22:30", Minutes(1350).Format())
}

func TestNewRange(t *testing.T) {
	r, err := NewRange("10:00", "11:30")
	require.NoError(t, err)
	assert.Equal(t, 1.5, r.Hours())

	_, err = NewRange("11:00", "11:00")
	assert.Error(t, err)

	_, err = NewRange("12:00", "11:00")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	mk := func(s, e string) Range {
		r, err := NewRange(s, e)
		require.NoError(t, err)
		return r
	}

	cases := []struct {
		name string
		a, b Range
		want bool
	}{
		{"disjoint", mk("08:00", "09:00"), mk("10:00", "11:00"), false},
		{"touching bounds", mk("08:00", "09:00"), mk("09:00", "10:00"), false},
		{"partial", mk("10:00", "11:00"), mk("10:30", "11:30"), true},
		{"contained", mk("10:00", "13:00"), mk("11:00", "12:00"), true},
		{"identical", mk("10:00", "11:00"), mk("10:00", "11:00"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			// overlap is symmetric
			assert.Equal(t, tc.a.Overlaps(tc.b), tc.b.Overlaps(tc.a))
		})
	}
}

func TestWithin(t *testing.T) {
	outer, _ := NewRange("09:00", "22:00")
	inner, _ := NewRange("10:00", "11:00")
	assert.True(t, inner.Within(outer))
	assert.False(t, outer.Within(inner))

	edge, _ := NewRange("09:00", "22:00")
	assert.True(t, edge.Within(outer))

	spill, _ := NewRange("08:30", "10:00")
	assert.False(t, spill.Within(outer))
}
