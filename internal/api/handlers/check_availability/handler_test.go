package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
)

type stubService struct {
	got *models.AvailabilityRequest
	err error
}

func (s *stubService) CheckAvailability(_ context.Context, req *models.AvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AvailabilityResponse{RoomID: req.RoomID, Available: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/rooms/{roomId}/availability", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	exclude := uuid.New()

	rec := serve(svc, "/rooms/7/availability?checkIn=2024-03-10&checkOut=2024-03-12&excludeBookingId="+exclude.String())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.got.RoomID)
	assert.Equal(t, "2024-03-10", svc.got.CheckIn)
	require.NotNil(t, svc.got.ExcludeBookingID)
	assert.Equal(t, exclude, *svc.got.ExcludeBookingID)

	var body models.AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Available)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/rooms/x/availability").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/rooms/7/availability?excludeBookingId=1").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{err: bookings.ErrInvalidDates}, "/rooms/7/availability").Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: bookings.ErrRoomNotFound}, "/rooms/7/availability?checkIn=2024-03-10&checkOut=2024-03-12").Code)
}
