package update_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-FrontDeskService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model: отсутствующие поля не меняются
type UpdateBookingRequest struct {
	RoomID   *int64  `json:"roomId,omitempty"`
	CheckIn  *string `json:"checkIn,omitempty"`
	CheckOut *string `json:"checkOut,omitempty"`

	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	IsTourist  *bool   `json:"isTourist,omitempty"`

	BasePricePerNight *float64 `json:"basePricePerNight,omitempty"`
	TotalPrice        *float64 `json:"totalPrice,omitempty"`

	PaymentStatus *string `json:"paymentStatus,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// UpdateBookingResponse HTTP response model
type UpdateBookingResponse struct {
	Booking        *models.BookingResponse      `json:"booking"`
	ShadowBlock    *models.BlockedDateResponse  `json:"shadowBlock,omitempty"`
	ReleasedBlocks []models.BlockedDateResponse `json:"releasedBlocks"`
	Repriced       bool                         `json:"repriced"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID uuid.UUID, userID int64) (*updateBooking.Request, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("checkOut: %w", err)
	}

	req := &updateBooking.Request{
		BookingID:         bookingID,
		UpdatedBy:         userID,
		RoomID:            r.RoomID,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		GuestName:         r.GuestName,
		GuestPhone:        r.GuestPhone,
		GuestEmail:        r.GuestEmail,
		IsTourist:         r.IsTourist,
		BasePricePerNight: r.BasePricePerNight,
		TotalPrice:        r.TotalPrice,
		PaymentMethod:     r.PaymentMethod,
		Notes:             r.Notes,
	}
	if r.PaymentStatus != nil {
		status := domain.PaymentStatus(*r.PaymentStatus)
		req.PaymentStatus = &status
	}
	return req, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		Booking:        models.FromDomainBooking(resp.Booking),
		ShadowBlock:    models.FromDomainBlockedDate(resp.ShadowBlock),
		ReleasedBlocks: models.FromDomainBlockedDateList(resp.ReleasedBlocks),
		Repriced:       resp.Repriced,
	}
}
