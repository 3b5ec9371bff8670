package override

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/pkg/ptr"
)

func mustRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func fixedID(id uuid.UUID) func() uuid.UUID {
	return func() uuid.UUID { return id }
}

func TestResolveOverride_ReleasesBlockAndCreatesShadow(t *testing.T) {
	stay := mustRange(t, "2024-03-10", "2024-03-12")
	blk := &domain.BlockedDate{ID: uuid.New(), RoomID: 7, Range: stay, Reason: "maintenance"}
	target := Target{BookingID: uuid.New(), BookingNumber: 42, GuestName: "Ivan Petrov", RoomID: 7, Stay: stay}
	shadowID := uuid.New()

	plan := ResolveOverride(target, []*domain.BlockedDate{blk}, fixedID(shadowID))

	require.Len(t, plan.ToDelete, 1)
	assert.Equal(t, blk.ID, plan.ToDelete[0].ID)
	require.NotNil(t, plan.ToCreate)
	assert.Equal(t, shadowID, plan.ToCreate.ID)
	assert.Equal(t, "Booking #42 - Ivan Petrov", plan.ToCreate.Reason)
	assert.True(t, plan.ToCreate.IsShadowOf(target.BookingID))
	assert.True(t, plan.ToCreate.Range.Equal(stay))
	assert.Equal(t, int64(7), plan.ToCreate.RoomID)
}

func TestResolveOverride_ExternalBlocksAreReleasedToo(t *testing.T) {
	stay := mustRange(t, "2024-03-10", "2024-03-12")
	external := &domain.BlockedDate{
		ID:             uuid.New(),
		RoomID:         7,
		Range:          stay,
		ExternalSource: ptr.Ptr(domain.ExternalSourceBookingCom),
	}

	plan := ResolveOverride(Target{BookingID: uuid.New(), RoomID: 7, Stay: stay}, []*domain.BlockedDate{external, external, nil}, uuid.New)

	assert.Equal(t, []uuid.UUID{external.ID}, plan.DeleteIDs())
}

func TestPlan_AddDeletionsSkipsDuplicates(t *testing.T) {
	blk := &domain.BlockedDate{ID: uuid.New()}
	plan := &Plan{ToDelete: []*domain.BlockedDate{blk}}

	plan.AddDeletions(blk, nil, &domain.BlockedDate{ID: blk.ID})

	assert.Len(t, plan.ToDelete, 1)
}

func TestApply_IsIdempotent(t *testing.T) {
	stay := mustRange(t, "2024-03-10", "2024-03-12")
	conflicting := &domain.BlockedDate{ID: uuid.New(), RoomID: 7, Range: stay}
	unrelated := &domain.BlockedDate{ID: uuid.New(), RoomID: 7, Range: mustRange(t, "2024-04-01", "2024-04-03")}
	blocks := []*domain.BlockedDate{conflicting, unrelated}

	plan := ResolveOverride(Target{BookingID: uuid.New(), BookingNumber: 1, GuestName: "A", RoomID: 7, Stay: stay},
		[]*domain.BlockedDate{conflicting}, uuid.New)

	once := Apply(blocks, plan)
	twice := Apply(once, plan)

	assert.Equal(t, once, twice)
	require.Len(t, once, 2)
	assert.Equal(t, unrelated.ID, once[0].ID)
	assert.Equal(t, plan.ToCreate.ID, once[1].ID)
}

func TestApply_NilPlan(t *testing.T) {
	blocks := []*domain.BlockedDate{{ID: uuid.New()}}
	assert.Equal(t, blocks, Apply(blocks, nil))
}
