package pricing

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

// CancellationPolicy: cancelling at least FreeCancellationDays before check-in is free,
// later cancellations are charged the full total.
type CancellationPolicy struct {
	FreeCancellationDays int
}

// NewCancellationPolicy validates the window
func NewCancellationPolicy(freeDays int) (CancellationPolicy, error) {
	if freeDays < 0 {
		return CancellationPolicy{}, fmt.Errorf("%w: free cancellation days must be >= 0, got %d", ErrInvalidPolicy, freeDays)
	}
	return CancellationPolicy{FreeCancellationDays: freeDays}, nil
}

// Deadline is the last calendar day on which cancellation is free
func (p CancellationPolicy) Deadline(checkIn time.Time) time.Time {
	return domain.NormalizeDate(checkIn).AddDate(0, 0, -p.FreeCancellationDays)
}

// Fee returns 0 when now is on or before the deadline, otherwise the booking total
func (p CancellationPolicy) Fee(b *domain.Booking, now time.Time) float64 {
	if !domain.NormalizeDate(now).After(p.Deadline(b.Stay.Start)) {
		return 0
	}
	return b.TotalPrice
}
