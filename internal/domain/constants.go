package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Pricing defaults. The VAT rate is a policy input and is overridden from configuration.
const (
	DefaultVATRate              = 0.17
	DefaultFreeCancellationDays = 3
)

// External calendar sources known to the front desk
const (
	ExternalSourceBookingCom = "booking.com"
)

// Business validation constants
const (
	MaxNotesLength     = 1000
	MaxReasonLength    = 500
	MaxGuestNameLength = 200
)

// ActivePaymentStatuses статусы оплаты активных бронирований
var ActivePaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPartial,
	PaymentStatusPaid,
}
