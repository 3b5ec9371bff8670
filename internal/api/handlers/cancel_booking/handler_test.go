package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-FrontDeskService/internal/usecase/cancel_booking"
)

type stubUseCase struct {
	got  *cancelBooking.Request
	resp *cancelBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc CancelBookingUseCase, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/bookings/"+id, nil)
	req.Header.Set(middleware.UserIDHeader, "7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.New()
	uc := &stubUseCase{resp: &cancelBooking.Response{
		BookingID:             id,
		BookingNumber:         1001,
		RoomID:                1,
		CheckIn:               time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:              time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Fee:                   234,
		FreeCancellationUntil: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		ReleasedBlocks:        1,
		CancelledAt:           time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
	}}

	rec := serve(uc, id.String())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, uc.got.BookingID)
	assert.Equal(t, int64(7), uc.got.CancelledBy)

	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 234.0, resp.CancellationFee)
	assert.Equal(t, "2024-03-07", resp.FreeCancellationUntil)
	assert.Equal(t, "2024-03-10", resp.CheckIn)
	assert.Equal(t, int64(1), resp.ReleasedBlocks)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "42", wantStatus: http.StatusBadRequest},
		{name: "not found", id: uuid.NewString(), err: cancelBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "conflict", id: uuid.NewString(), err: cancelBooking.ErrConflict, wantStatus: http.StatusConflict},
		{name: "internal", id: uuid.NewString(), err: cancelBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, serve(&stubUseCase{err: tt.err}, tt.id).Code)
		})
	}
}
