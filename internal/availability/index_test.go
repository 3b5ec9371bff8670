package availability

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/pkg/ptr"
)

const roomR int64 = 7

func stay(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func booking(t *testing.T, roomID int64, start, end string) *domain.Booking {
	return &domain.Booking{
		ID:            uuid.New(),
		RoomID:        roomID,
		Stay:          stay(t, start, end),
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func block(t *testing.T, roomID int64, start, end string) *domain.BlockedDate {
	return &domain.BlockedDate{ID: uuid.New(), RoomID: roomID, Range: stay(t, start, end)}
}

func TestCheckAvailability_BookingConflict(t *testing.T) {
	existing := booking(t, roomR, "2024-03-10", "2024-03-12")

	c := CheckAvailability(roomR, stay(t, "2024-03-11", "2024-03-13"), []*domain.Booking{existing}, nil, nil)

	require.True(t, c.HasBookings())
	assert.Equal(t, existing.ID, c.Bookings[0].ID)
	assert.False(t, c.HasBlocks())
}

func TestCheckAvailability_TouchingIsFree(t *testing.T) {
	existing := booking(t, roomR, "2024-03-10", "2024-03-12")
	blk := block(t, roomR, "2024-03-14", "2024-03-16")

	c := CheckAvailability(roomR, stay(t, "2024-03-12", "2024-03-14"), []*domain.Booking{existing}, []*domain.BlockedDate{blk}, nil)

	assert.True(t, c.IsFree())
}

func TestCheckAvailability_RefiltersRoomAndStatus(t *testing.T) {
	otherRoom := booking(t, roomR+1, "2024-03-10", "2024-03-12")
	canceled := booking(t, roomR, "2024-03-10", "2024-03-12")
	canceled.PaymentStatus = domain.PaymentStatusCanceled
	otherRoomBlock := block(t, roomR+1, "2024-03-10", "2024-03-12")

	c := CheckAvailability(roomR, stay(t, "2024-03-10", "2024-03-12"),
		[]*domain.Booking{otherRoom, canceled, nil}, []*domain.BlockedDate{otherRoomBlock, nil}, nil)

	assert.True(t, c.IsFree())
}

func TestCheckAvailability_BlockConflict(t *testing.T) {
	blk := block(t, roomR, "2024-03-10", "2024-03-12")

	c := CheckAvailability(roomR, stay(t, "2024-03-10", "2024-03-12"), nil, []*domain.BlockedDate{blk}, nil)

	assert.False(t, c.HasBookings())
	require.True(t, c.HasBlocks())
	assert.Equal(t, blk.ID, c.Blocks[0].ID)
}

func TestCheckAvailability_EditExcludesSelfAndOwnShadow(t *testing.T) {
	self := booking(t, roomR, "2024-03-10", "2024-03-12")
	shadow := block(t, roomR, "2024-03-10", "2024-03-12")
	shadow.ExternalReference = ptr.Ptr(domain.ShadowReference(self.ID))
	foreign := block(t, roomR, "2024-03-12", "2024-03-13")

	c := CheckAvailability(roomR, stay(t, "2024-03-10", "2024-03-13"),
		[]*domain.Booking{self}, []*domain.BlockedDate{shadow, foreign}, &self.ID)

	assert.False(t, c.HasBookings())
	require.Len(t, c.Blocks, 1)
	assert.Equal(t, foreign.ID, c.Blocks[0].ID)
}
