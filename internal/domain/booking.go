package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusCanceled PaymentStatus = "canceled"
)

// IsValid checks the status against the known set
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusCanceled:
		return true
	default:
		return false
	}
}

// Guest contact details
type Guest struct {
	Name  string
	Phone string
	Email string
}

// Booking is a guest reservation of one room for a stay
type Booking struct {
	ID            uuid.UUID
	BookingNumber int64
	RoomID        int64
	Stay          DateRange
	Nights        int
	Guest         Guest
	IsTourist     bool

	BasePricePerNight    float64 // net of VAT
	PricePerNightWithVat float64
	TotalPrice           float64
	VATRate              float64

	PaymentStatus PaymentStatus
	PaymentMethod *string
	Notes         *string
	CreatedBy     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true unless the booking was marked canceled
func (b *Booking) IsActive() bool {
	return b.PaymentStatus != PaymentStatusCanceled
}

// Quote returns the embedded price quote
func (b *Booking) Quote() PriceQuote {
	return PriceQuote{
		Nights:               b.Nights,
		BasePricePerNight:    b.BasePricePerNight,
		PricePerNightWithVat: b.PricePerNightWithVat,
		TotalPrice:           b.TotalPrice,
		VATRate:              b.VATRate,
		IsTourist:            b.IsTourist,
	}
}

// ApplyQuote copies monetary fields from q
func (b *Booking) ApplyQuote(q PriceQuote) {
	b.Nights = q.Nights
	b.BasePricePerNight = q.BasePricePerNight
	b.PricePerNightWithVat = q.PricePerNightWithVat
	b.TotalPrice = q.TotalPrice
	b.VATRate = q.VATRate
	b.IsTourist = q.IsTourist
}

// ShadowReference is the external reference of the blocked date mirroring this booking
func (b *Booking) ShadowReference() string {
	return ShadowReference(b.ID)
}

// RoomBookingsFilter фильтр бронирований номера
type RoomBookingsFilter struct {
	RoomID          int64
	Window          *DateRange // только пересекающиеся с окном (опционально)
	IncludeInactive bool
}
