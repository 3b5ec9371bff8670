package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

// Request модели

// UpdatePaymentRequest запрос на изменение статуса оплаты
type UpdatePaymentRequest struct {
	UserID        int64   `json:"-"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
}

// CalendarRequest запрос календаря номера за период [From, To)
type CalendarRequest struct {
	RoomID          int64
	From            string
	To              string
	IncludeCanceled bool
}

// AvailabilityRequest запрос проверки доступности номера
type AvailabilityRequest struct {
	RoomID           int64
	CheckIn          string
	CheckOut         string
	ExcludeBookingID *uuid.UUID
}

// PriceQuoteRequest запрос расчета стоимости.
// Указывается либо BasePricePerNight (без НДС), либо TotalPrice.
type PriceQuoteRequest struct {
	Nights            int      `json:"nights"`
	IsTourist         bool     `json:"isTourist"`
	BasePricePerNight *float64 `json:"basePricePerNight,omitempty"`
	TotalPrice        *float64 `json:"totalPrice,omitempty"`
}

// Response модели

// GuestResponse контакты гостя
type GuestResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            uuid.UUID     `json:"id"`
	BookingNumber int64         `json:"bookingNumber"`
	RoomID        int64         `json:"roomId"`
	CheckIn       string        `json:"checkIn"`  // "2025-10-15"
	CheckOut      string        `json:"checkOut"` // "2025-10-17"
	Nights        int           `json:"nights"`
	Guest         GuestResponse `json:"guest"`
	IsTourist     bool          `json:"isTourist"`

	BasePricePerNight    float64 `json:"basePricePerNight"`
	PricePerNightWithVat float64 `json:"pricePerNightWithVat"`
	TotalPrice           float64 `json:"totalPrice"`
	VATRate              float64 `json:"vatRate"`

	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedBy     int64   `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlockedDateResponse ответ с данными блокировки
type BlockedDateResponse struct {
	ID                uuid.UUID `json:"id"`
	RoomID            int64     `json:"roomId"`
	StartDate         string    `json:"startDate"`
	EndDate           string    `json:"endDate"`
	Reason            string    `json:"reason"`
	ExternalSource    *string   `json:"externalSource,omitempty"`
	ExternalReference *string   `json:"externalReference,omitempty"`
	GuestDetails      *string   `json:"guestDetails,omitempty"`
	IsShadow          bool      `json:"isShadow"`
	CreatedAt         time.Time `json:"createdAt"`
}

// CalendarResponse бронирования и блокировки номера за период
type CalendarResponse struct {
	RoomID       int64                 `json:"roomId"`
	From         string                `json:"from"`
	To           string                `json:"to"`
	Bookings     []BookingResponse     `json:"bookings"`
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// AvailabilityResponse результат проверки доступности.
// Блокировки не делают номер недоступным: новое бронирование их снимает.
type AvailabilityResponse struct {
	RoomID              int64                 `json:"roomId"`
	CheckIn             string                `json:"checkIn"`
	CheckOut            string                `json:"checkOut"`
	Nights              int                   `json:"nights"`
	Available           bool                  `json:"available"`
	ConflictingBookings []BookingResponse     `json:"conflictingBookings"`
	BlocksToRelease     []BlockedDateResponse `json:"blocksToRelease"`
}

// PriceQuoteResponse результат расчета стоимости
type PriceQuoteResponse struct {
	Nights               int     `json:"nights"`
	IsTourist            bool    `json:"isTourist"`
	VATRate              float64 `json:"vatRate"`
	BasePricePerNight    float64 `json:"basePricePerNight"`
	PricePerNightWithVat float64 `json:"pricePerNightWithVat"`
	TotalPrice           float64 `json:"totalPrice"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		RoomID:        b.RoomID,
		CheckIn:       b.Stay.Start.Format(domain.DateFormat),
		CheckOut:      b.Stay.End.Format(domain.DateFormat),
		Nights:        b.Nights,
		Guest: GuestResponse{
			Name:  b.Guest.Name,
			Phone: b.Guest.Phone,
			Email: b.Guest.Email,
		},
		IsTourist:            b.IsTourist,
		BasePricePerNight:    b.BasePricePerNight,
		PricePerNightWithVat: b.PricePerNightWithVat,
		TotalPrice:           b.TotalPrice,
		VATRate:              b.VATRate,
		PaymentStatus:        string(b.PaymentStatus),
		PaymentMethod:        b.PaymentMethod,
		Notes:                b.Notes,
		CreatedBy:            b.CreatedBy,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if b == nil {
			continue
		}
		result = append(result, *FromDomainBooking(b))
	}
	return result
}

// FromDomainBlockedDate конвертирует блокировку в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}

	return &BlockedDateResponse{
		ID:                b.ID,
		RoomID:            b.RoomID,
		StartDate:         b.Range.Start.Format(domain.DateFormat),
		EndDate:           b.Range.End.Format(domain.DateFormat),
		Reason:            b.Reason,
		ExternalSource:    b.ExternalSource,
		ExternalReference: b.ExternalReference,
		GuestDetails:      b.GuestDetails,
		IsShadow:          b.IsShadow(),
		CreatedAt:         b.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список блокировок в DTO
func FromDomainBlockedDateList(blocks []*domain.BlockedDate) []BlockedDateResponse {
	result := make([]BlockedDateResponse, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		result = append(result, *FromDomainBlockedDate(b))
	}
	return result
}

// FromDomainQuote конвертирует расчет стоимости в DTO
func FromDomainQuote(q domain.PriceQuote) *PriceQuoteResponse {
	return &PriceQuoteResponse{
		Nights:               q.Nights,
		IsTourist:            q.IsTourist,
		VATRate:              q.VATRate,
		BasePricePerNight:    q.BasePricePerNight,
		PricePerNightWithVat: q.PricePerNightWithVat,
		TotalPrice:           q.TotalPrice,
	}
}

// ToDomainPaymentStatus конвертирует строку в статус оплаты
func ToDomainPaymentStatus(s string) (domain.PaymentStatus, bool) {
	status := domain.PaymentStatus(s)
	return status, status.IsValid()
}
