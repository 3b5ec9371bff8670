// Package availability classifies a candidate stay against a room's existing
// bookings and blocked dates.
package availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

// Conflicts found for a candidate stay. Bookings and blocks are kept apart
// because the caller applies different policies to each.
type Conflicts struct {
	Bookings []*domain.Booking
	Blocks   []*domain.BlockedDate
}

// HasBookings reports overlapping active bookings
func (c Conflicts) HasBookings() bool {
	return len(c.Bookings) > 0
}

// HasBlocks reports overlapping blocked dates
func (c Conflicts) HasBlocks() bool {
	return len(c.Blocks) > 0
}

// IsFree reports that nothing overlaps the stay
func (c Conflicts) IsFree() bool {
	return !c.HasBookings() && !c.HasBlocks()
}

// CheckAvailability returns everything overlapping stay in room roomID.
//
// Inputs are re-filtered: records for other rooms and inactive bookings are ignored.
// When excludeBookingID is set (re-validating an edit), that booking and its own
// shadow block are not reported.
func CheckAvailability(
	roomID int64,
	stay domain.DateRange,
	bookings []*domain.Booking,
	blocks []*domain.BlockedDate,
	excludeBookingID *uuid.UUID,
) Conflicts {
	var result Conflicts

	for _, b := range bookings {
		if b == nil || b.RoomID != roomID || !b.IsActive() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if b.Stay.Overlaps(stay) {
			result.Bookings = append(result.Bookings, b)
		}
	}

	for _, blk := range blocks {
		if blk == nil || blk.RoomID != roomID {
			continue
		}
		if excludeBookingID != nil && blk.IsShadowOf(*excludeBookingID) {
			continue
		}
		if blk.Range.Overlaps(stay) {
			result.Blocks = append(result.Blocks, blk)
		}
	}

	return result
}
