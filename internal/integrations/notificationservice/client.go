package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений (подтверждения бронирований гостям)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента. Пустой baseURL отключает отправку
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет подтверждение нового бронирования
func (c *Client) SendBookingConfirmation(ctx context.Context, booking *domain.Booking, room *domain.Room) error {
	if c.baseURL == "" {
		return ErrDisabled
	}

	payload := BookingConfirmation{
		BookingID:            booking.ID.String(),
		BookingNumber:        booking.BookingNumber,
		RoomID:               booking.RoomID,
		CheckIn:              booking.Stay.Start.Format(domain.DateFormat),
		CheckOut:             booking.Stay.End.Format(domain.DateFormat),
		Nights:               booking.Nights,
		GuestName:            booking.Guest.Name,
		GuestPhone:           booking.Guest.Phone,
		GuestEmail:           booking.Guest.Email,
		IsTourist:            booking.IsTourist,
		PricePerNightWithVat: booking.PricePerNightWithVat,
		TotalPrice:           booking.TotalPrice,
	}
	if room != nil {
		payload.RoomNumber = room.Number
		payload.RoomName = room.Name
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications/booking-confirmations", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusNoContent:
		c.log.Info("Booking confirmation sent for booking_number=%d", booking.BookingNumber)
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, errResp.Message)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
