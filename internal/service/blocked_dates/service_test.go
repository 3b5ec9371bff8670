package blocked_dates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/internal/usecase/fakes"
	"github.com/m04kA/SMC-FrontDeskService/pkg/ptr"
)

const roomID int64 = 7

type env struct {
	svc      *Service
	bookings *fakes.Bookings
	blocks   *fakes.Blocks
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{bookings: fakes.NewBookings(), blocks: fakes.NewBlocks()}
	rooms := fakes.NewRooms(&domain.Room{ID: roomID, Number: "101", BasePricePerNight: 100, IsActive: true})
	e.svc = NewService(rooms, e.bookings, e.blocks, &fakes.TxManager{}, fakes.Logger{})

	stay, err := domain.ParseDateRange("2024-03-10", "2024-03-12")
	require.NoError(t, err)
	_, err = e.bookings.Create(context.Background(), &domain.Booking{
		ID: uuid.New(), BookingNumber: 1, RoomID: roomID, Stay: stay, PaymentStatus: domain.PaymentStatusPaid,
	})
	require.NoError(t, err)
	return e
}

func TestCreate(t *testing.T) {
	e := newEnv(t)

	resp, err := e.svc.Create(context.Background(), &CreateRequest{
		RoomID:            roomID,
		StartDate:         "2024-03-12",
		EndDate:           "2024-03-15",
		Reason:            "  Booking.com reservation ",
		ExternalSource:    ptr.Ptr(domain.ExternalSourceBookingCom),
		ExternalReference: ptr.Ptr("bdc-123"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-12", resp.StartDate)
	assert.Equal(t, "2024-03-15", resp.EndDate)
	assert.Equal(t, "Booking.com reservation", resp.Reason)
	assert.False(t, resp.IsShadow)
	assert.Len(t, e.blocks.All(), 1)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "overlaps booking",
			req:     CreateRequest{RoomID: roomID, StartDate: "2024-03-11", EndDate: "2024-03-13", Reason: "repair"},
			wantErr: ErrOverlapsBooking,
		},
		{
			name:    "zero nights",
			req:     CreateRequest{RoomID: roomID, StartDate: "2024-03-20", EndDate: "2024-03-20", Reason: "repair"},
			wantErr: ErrInvalidDates,
		},
		{
			name:    "empty reason",
			req:     CreateRequest{RoomID: roomID, StartDate: "2024-03-20", EndDate: "2024-03-21", Reason: "   "},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "reserved reference",
			req:     CreateRequest{RoomID: roomID, StartDate: "2024-03-20", EndDate: "2024-03-21", Reason: "x", ExternalReference: ptr.Ptr("booking:" + uuid.NewString())},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown room",
			req:     CreateRequest{RoomID: 99, StartDate: "2024-03-20", EndDate: "2024-03-21", Reason: "repair"},
			wantErr: ErrRoomNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			_, err := e.svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.blocks.All())
		})
	}
}

func TestCreate_DuplicateReference(t *testing.T) {
	e := newEnv(t)
	req := &CreateRequest{RoomID: roomID, StartDate: "2024-04-01", EndDate: "2024-04-03", Reason: "ota", ExternalReference: ptr.Ptr("bdc-1")}

	_, err := e.svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = e.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, &CreateRequest{RoomID: roomID, StartDate: "2024-04-01", EndDate: "2024-04-03", Reason: "repair"})
	require.NoError(t, err)

	require.NoError(t, e.svc.Delete(ctx, created.ID, 1))
	assert.Empty(t, e.blocks.All())

	assert.ErrorIs(t, e.svc.Delete(ctx, created.ID, 1), ErrBlockedDateNotFound)
}

func TestDelete_RefusesShadowBlock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	r, err := domain.ParseDateRange("2024-03-10", "2024-03-12")
	require.NoError(t, err)
	shadow, err := e.blocks.UpsertShadow(ctx, &domain.BlockedDate{
		ID:                uuid.New(),
		RoomID:            roomID,
		Range:             r,
		Reason:            "Booking #1 - Guest",
		ExternalReference: ptr.Ptr(domain.ShadowReference(uuid.New())),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, e.svc.Delete(ctx, shadow.ID, 1), ErrShadowBlock)
	assert.Len(t, e.blocks.All(), 1)
}
