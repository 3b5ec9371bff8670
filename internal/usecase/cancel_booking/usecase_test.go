package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/admission"
	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/internal/pricing"
	"github.com/m04kA/SMC-FrontDeskService/internal/usecase/fakes"
	"github.com/m04kA/SMC-FrontDeskService/pkg/ptr"
	"github.com/m04kA/SMC-FrontDeskService/pkg/txmanager"
)

const roomID int64 = 7

var room = &domain.Room{ID: roomID, Number: "101", BasePricePerNight: 100, IsActive: true}

type env struct {
	uc       *UseCase
	svc      *admission.Service
	bookings *fakes.Bookings
	blocks   *fakes.Blocks
	tx       *fakes.TxManager
}

func newEnv(t *testing.T, now string) *env {
	t.Helper()
	calc, err := pricing.NewCalculator(domain.DefaultVATRate)
	require.NoError(t, err)
	policy, err := pricing.NewCancellationPolicy(domain.DefaultFreeCancellationDays)
	require.NoError(t, err)

	e := &env{
		svc:      admission.NewService(calc, policy),
		bookings: fakes.NewBookings(),
		blocks:   fakes.NewBlocks(),
		tx:       &fakes.TxManager{},
	}
	e.uc = NewUseCase(e.bookings, e.blocks, e.svc, e.tx, fakes.Logger{}).
		WithTimeProvider(fakes.Clock{T: date(t, now)})
	return e
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return d
}

func (e *env) admit(t *testing.T, checkIn, checkOut string) *admission.Result {
	t.Helper()
	ctx := context.Background()
	stay, err := domain.ParseDateRange(checkIn, checkOut)
	require.NoError(t, err)

	bookings, err := e.bookings.GetByRoom(ctx, domain.RoomBookingsFilter{RoomID: roomID, Window: &stay})
	require.NoError(t, err)
	blocks, err := e.blocks.GetByRoom(ctx, roomID, &stay)
	require.NoError(t, err)

	return e.svc.Admit(admission.Request{
		BookingNumber: int64(len(e.bookings.All()) + 1),
		RoomID:        roomID,
		CheckIn:       stay.Start,
		CheckOut:      stay.End,
		Guest:         domain.Guest{Name: "Guest", Phone: "1"},
		CreatedBy:     1,
	}, admission.Context{Room: room, Bookings: bookings, Blocks: blocks})
}

func (e *env) seed(t *testing.T, checkIn, checkOut string) *domain.Booking {
	t.Helper()
	res := e.admit(t, checkIn, checkOut)
	require.True(t, res.Admitted())

	ctx := context.Background()
	_, err := e.bookings.Create(ctx, res.Booking)
	require.NoError(t, err)
	_, err = e.blocks.UpsertShadow(ctx, res.Plan.ToCreate)
	require.NoError(t, err)
	return res.Booking
}

func TestExecute_ReleasesShadowAndRestoresAvailability(t *testing.T) {
	e := newEnv(t, "2024-03-01")
	b := e.seed(t, "2024-03-20", "2024-03-22")

	require.False(t, e.admit(t, "2024-03-20", "2024-03-22").Admitted())

	resp, err := e.uc.Execute(context.Background(), &Request{BookingID: b.ID, CancelledBy: 1})
	require.NoError(t, err)

	assert.Equal(t, b.BookingNumber, resp.BookingNumber)
	assert.Equal(t, int64(1), resp.ReleasedBlocks)
	assert.Zero(t, resp.Fee)
	assert.Equal(t, "2024-03-17", resp.FreeCancellationUntil.Format(domain.DateFormat))
	assert.Empty(t, e.bookings.All())
	assert.Empty(t, e.blocks.All())

	assert.True(t, e.admit(t, "2024-03-20", "2024-03-22").Admitted())
}

func TestExecute_LateCancellationChargesTotal(t *testing.T) {
	e := newEnv(t, "2024-03-19")
	b := e.seed(t, "2024-03-20", "2024-03-22")

	resp, err := e.uc.Execute(context.Background(), &Request{BookingID: b.ID})
	require.NoError(t, err)

	assert.Equal(t, 234.0, resp.Fee)
}

func TestExecute_RemovesUnlinkedBlockWithSameDates(t *testing.T) {
	e := newEnv(t, "2024-03-01")
	b := e.seed(t, "2024-03-20", "2024-03-22")
	ctx := context.Background()

	// блокировка с датами брони, но без ссылки на нее
	_, err := e.blocks.Create(ctx, &domain.BlockedDate{ID: uuid.New(), RoomID: roomID, Range: b.Stay, Reason: "Booking #1 - Guest"})
	require.NoError(t, err)
	other, err := domain.ParseDateRange("2024-04-01", "2024-04-03")
	require.NoError(t, err)
	_, err = e.blocks.Create(ctx, &domain.BlockedDate{ID: uuid.New(), RoomID: roomID, Range: other, Reason: "repair"})
	require.NoError(t, err)

	resp, err := e.uc.Execute(ctx, &Request{BookingID: b.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.ReleasedBlocks)
	left := e.blocks.All()
	require.Len(t, left, 1)
	assert.Equal(t, "repair", left[0].Reason)
}

func TestExecute_RemovesShadowLeftInAnotherRoom(t *testing.T) {
	e := newEnv(t, "2024-03-01")
	b := e.seed(t, "2024-03-20", "2024-03-22")
	ctx := context.Background()

	stale, err := domain.ParseDateRange("2024-05-01", "2024-05-03")
	require.NoError(t, err)
	_, err = e.blocks.Create(ctx, &domain.BlockedDate{
		ID:                uuid.New(),
		RoomID:            roomID + 1,
		Range:             stale,
		Reason:            "stale shadow",
		ExternalReference: ptr.Ptr(b.ShadowReference()),
	})
	require.NoError(t, err)

	_, err = e.uc.Execute(ctx, &Request{BookingID: b.ID})
	require.NoError(t, err)
	assert.Empty(t, e.blocks.All())
}

func TestExecute_Errors(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		e := newEnv(t, "2024-03-01")
		_, err := e.uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown booking", func(t *testing.T) {
		e := newEnv(t, "2024-03-01")
		_, err := e.uc.Execute(context.Background(), &Request{BookingID: uuid.New()})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("serialization failure", func(t *testing.T) {
		e := newEnv(t, "2024-03-01")
		b := e.seed(t, "2024-03-20", "2024-03-22")
		e.tx.Err = txmanager.ErrSerialization

		_, err := e.uc.Execute(context.Background(), &Request{BookingID: b.ID})
		assert.ErrorIs(t, err, ErrConflict)
	})
}
