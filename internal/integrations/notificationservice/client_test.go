package notificationservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(t *testing.T) *domain.Booking {
	t.Helper()
	stay, err := domain.ParseDateRange("2024-03-10", "2024-03-13")
	require.NoError(t, err)
	return &domain.Booking{
		ID:                   uuid.New(),
		BookingNumber:        1001,
		RoomID:               7,
		Stay:                 stay,
		Nights:               3,
		Guest:                domain.Guest{Name: "Ivan Petrov", Phone: "+79990000000"},
		PricePerNightWithVat: 117,
		TotalPrice:           351,
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	var got BookingConfirmation
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/booking-confirmations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	b := testBooking(t)

	err := client.SendBookingConfirmation(context.Background(), b, &domain.Room{ID: 7, Number: "101", Name: "Deluxe"})
	require.NoError(t, err)

	assert.Equal(t, b.ID.String(), got.BookingID)
	assert.Equal(t, "2024-03-10", got.CheckIn)
	assert.Equal(t, "2024-03-13", got.CheckOut)
	assert.Equal(t, "101", got.RoomNumber)
	assert.Equal(t, 351.0, got.TotalPrice)
}

func TestSendBookingConfirmation_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rejected", http.StatusUnprocessableEntity, `{"code":422,"message":"bad phone"}`, ErrRejected},
		{"server error", http.StatusBadGateway, "upstream down", ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, time.Second, nopLogger{}).SendBookingConfirmation(context.Background(), testBooking(t), nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSendBookingConfirmation_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url, 100*time.Millisecond, nopLogger{}).SendBookingConfirmation(context.Background(), testBooking(t), nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSendBookingConfirmation_Disabled(t *testing.T) {
	err := NewClient("", time.Second, nopLogger{}).SendBookingConfirmation(context.Background(), testBooking(t), nil)
	assert.ErrorIs(t, err, ErrDisabled)
}
