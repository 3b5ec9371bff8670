package cancel_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-FrontDeskService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID             uuid.UUID `json:"bookingId"`
	BookingNumber         int64     `json:"bookingNumber"`
	RoomID                int64     `json:"roomId"`
	CheckIn               string    `json:"checkIn"`
	CheckOut              string    `json:"checkOut"`
	CancellationFee       float64   `json:"cancellationFee"`
	FreeCancellationUntil string    `json:"freeCancellationUntil"`
	ReleasedBlocks        int64     `json:"releasedBlocks"`
	CancelledAt           string    `json:"cancelledAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:             resp.BookingID,
		BookingNumber:         resp.BookingNumber,
		RoomID:                resp.RoomID,
		CheckIn:               resp.CheckIn.Format(domain.DateFormat),
		CheckOut:              resp.CheckOut.Format(domain.DateFormat),
		CancellationFee:       resp.Fee,
		FreeCancellationUntil: resp.FreeCancellationUntil.Format(domain.DateFormat),
		ReleasedBlocks:        resp.ReleasedBlocks,
		CancelledAt:           resp.CancelledAt.Format(time.RFC3339),
	}
}
