package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewDateRange_NormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2024, 3, 10, 23, 30, 0, 0, loc)
	end := time.Date(2024, 3, 12, 1, 0, 0, 0, loc)

	r, err := NewDateRange(start, end)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), r.End)
}

func TestNewDateRange_RejectsEmptyAndInverted(t *testing.T) {
	_, err := NewDateRange(date("2024-03-10"), date("2024-03-10"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewDateRange(date("2024-03-12"), date("2024-03-10"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	// same calendar day at different hours collapses to zero nights
	_, err = NewDateRange(date("2024-03-10").Add(2*time.Hour), date("2024-03-10").Add(20*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestParseDateRange_BadFormat(t *testing.T) {
	_, err := ParseDateRange("10.03.2024", "2024-03-12")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]string
		want bool
	}{
		{"same range", [2]string{"2024-03-10", "2024-03-12"}, [2]string{"2024-03-10", "2024-03-12"}, true},
		{"partial", [2]string{"2024-03-10", "2024-03-12"}, [2]string{"2024-03-11", "2024-03-13"}, true},
		{"contained", [2]string{"2024-03-01", "2024-03-31"}, [2]string{"2024-03-11", "2024-03-13"}, true},
		{"touching", [2]string{"2024-03-10", "2024-03-12"}, [2]string{"2024-03-12", "2024-03-14"}, false},
		{"disjoint", [2]string{"2024-03-10", "2024-03-12"}, [2]string{"2024-04-01", "2024-04-03"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustRange(t, tt.a[0], tt.a[1])
			b := mustRange(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.want, a.Overlaps(b))
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_TouchingNeverOverlap(t *testing.T) {
	d1 := date("2024-01-01")
	for i := 1; i <= 30; i++ {
		d2 := d1.AddDate(0, 0, i)
		for j := 1; j <= 5; j++ {
			d3 := d2.AddDate(0, 0, j)
			a, err := NewDateRange(d1, d2)
			require.NoError(t, err)
			b, err := NewDateRange(d2, d3)
			require.NoError(t, err)
			assert.False(t, a.Overlaps(b))
			assert.False(t, b.Overlaps(a))
		}
	}
}

func TestContains(t *testing.T) {
	r := mustRange(t, "2024-03-10", "2024-03-12")

	assert.True(t, r.Contains(date("2024-03-10")))
	assert.True(t, r.Contains(date("2024-03-11").Add(15*time.Hour)))
	assert.False(t, r.Contains(date("2024-03-12")))
	assert.False(t, r.Contains(date("2024-03-09")))
}

func TestNights(t *testing.T) {
	r := mustRange(t, "2024-03-10", "2024-03-13")
	n, err := r.Nights()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// DST does not matter: everything is UTC
	r = mustRange(t, "2024-03-30", "2024-04-01")
	n, err = r.Nights()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = DateRange{}.Nights()
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDateRange_String(t *testing.T) {
	assert.Equal(t, "2024-03-10..2024-03-12", mustRange(t, "2024-03-10", "2024-03-12").String())
}
