package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidRange is returned for ranges that do not cover at least one night.
var ErrInvalidRange = errors.New("domain: invalid date range")

const day = 24 * time.Hour

// DateRange is a half-open interval of calendar dates [Start, End).
// Both ends are midnight UTC; End is the check-out date and is not occupied.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes start and end to midnight UTC and checks start < end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: NormalizeDate(start), End: NormalizeDate(end)}
	if !r.Start.Before(r.End) {
		return DateRange{}, fmt.Errorf("%w: %s is not before %s", ErrInvalidRange,
			r.Start.Format(DateFormat), r.End.Format(DateFormat))
	}
	return r, nil
}

// ParseDateRange builds a range from two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateFormat, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	e, err := time.Parse(DateFormat, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	return NewDateRange(s, e)
}

// NormalizeDate keeps the calendar date of t (in t's own location) at midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports half-open overlap. A check-out on the other's check-in day is not an overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Contains reports whether instant falls in [Start, End).
func (r DateRange) Contains(instant time.Time) bool {
	return !instant.Before(r.Start) && instant.Before(r.End)
}

// Nights is ceil((End-Start)/24h).
func (r DateRange) Nights() (int, error) {
	nights := int(math.Ceil(float64(r.End.Sub(r.Start)) / float64(day)))
	if nights <= 0 {
		return 0, fmt.Errorf("%w: %d nights", ErrInvalidRange, nights)
	}
	return nights, nil
}

// Equal compares both ends.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// IsZero reports an unset range.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) String() string {
	return r.Start.Format(DateFormat) + ".." + r.End.Format(DateFormat)
}
