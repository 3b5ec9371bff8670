package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-FrontDeskService/internal/usecase/create_booking"
)

// GuestRequest контакты гостя
type GuestRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID    int64        `json:"roomId"`
	CheckIn   string       `json:"checkIn"`  // "2025-10-15"
	CheckOut  string       `json:"checkOut"` // "2025-10-17"
	Guest     GuestRequest `json:"guest"`
	IsTourist bool         `json:"isTourist"`

	BasePricePerNight *float64 `json:"basePricePerNight,omitempty"`
	TotalPrice        *float64 `json:"totalPrice,omitempty"`

	PaymentStatus string  `json:"paymentStatus,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking        *models.BookingResponse      `json:"booking"`
	ShadowBlock    *models.BlockedDateResponse  `json:"shadowBlock,omitempty"`
	ReleasedBlocks []models.BlockedDateResponse `json:"releasedBlocks"`
	Warnings       []string                     `json:"warnings,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("checkOut: %w", err)
	}

	return &createBooking.Request{
		RoomID:   r.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guest: domain.Guest{
			Name:  r.Guest.Name,
			Phone: r.Guest.Phone,
			Email: r.Guest.Email,
		},
		IsTourist:         r.IsTourist,
		BasePricePerNight: r.BasePricePerNight,
		TotalPrice:        r.TotalPrice,
		PaymentStatus:     domain.PaymentStatus(r.PaymentStatus),
		PaymentMethod:     r.PaymentMethod,
		Notes:             r.Notes,
		CreatedBy:         userID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		Booking:        models.FromDomainBooking(resp.Booking),
		ShadowBlock:    models.FromDomainBlockedDate(resp.ShadowBlock),
		ReleasedBlocks: models.FromDomainBlockedDateList(resp.ReleasedBlocks),
	}
	for _, w := range resp.Warnings {
		out.Warnings = append(out.Warnings, string(w))
	}
	return out
}
