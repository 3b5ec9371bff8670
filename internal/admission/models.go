package admission

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/internal/override"
)

// State of an admission attempt
type State string

const (
	StateValidating      State = "validating"
	StateConflictChecked State = "conflict_checked"
	StatePriced          State = "priced"
	StateAdmitted        State = "admitted"
	StateRejected        State = "rejected"
)

// Reason why a request was rejected
type Reason string

const (
	ReasonInvalidDates     Reason = "invalid_dates"
	ReasonMissingGuestInfo Reason = "missing_guest_info"
	ReasonRoomUnavailable  Reason = "room_unavailable"
	ReasonRoomNotFound     Reason = "room_not_found"
	ReasonInvalidInput     Reason = "invalid_input"
)

// Warning is a non-fatal note attached to an admitted booking
type Warning string

const (
	WarningNotificationFailed Warning = "notification_failed"
)

// Rejection terminal business outcome of an admission
type Rejection struct {
	Reason  Reason
	Message string

	// ConflictingBookings set for ReasonRoomUnavailable
	ConflictingBookings []*domain.Booking
}

func (r *Rejection) Error() string {
	return string(r.Reason) + ": " + r.Message
}

// Request describes a booking to create or, when Existing is set, the full
// desired state of an edited booking. Price fields are set only when the
// operator typed them.
type Request struct {
	Existing *domain.Booking

	BookingNumber int64 // new bookings only
	RoomID        int64
	CheckIn       time.Time
	CheckOut      time.Time
	Guest         domain.Guest
	IsTourist     bool

	BasePricePerNight *float64
	TotalPrice        *float64

	PaymentStatus domain.PaymentStatus
	PaymentMethod *string
	Notes         *string
	CreatedBy     int64
}

// IsEdit reports whether the request modifies an existing booking
func (r *Request) IsEdit() bool {
	return r.Existing != nil
}

// Context is the persisted state admission is evaluated against.
// Bookings and Blocks may contain records of other rooms; they are re-filtered.
// On edit Blocks should also include the booking's current shadow block.
type Context struct {
	Room     *domain.Room
	Bookings []*domain.Booking
	Blocks   []*domain.BlockedDate
}

// Result of Admit. Booking and Plan are set only when State is StateAdmitted.
type Result struct {
	State     State
	Booking   *domain.Booking
	Plan      *override.Plan
	Rejection *Rejection
	Warnings  []Warning
}

// Admitted reports a successful admission
func (r *Result) Admitted() bool {
	return r.State == StateAdmitted
}

// AddWarning attaches a warning once
func (r *Result) AddWarning(w Warning) {
	for _, existing := range r.Warnings {
		if existing == w {
			return
		}
	}
	r.Warnings = append(r.Warnings, w)
}

// CancelPlan rows to remove when a booking is canceled
type CancelPlan struct {
	BookingToDelete uuid.UUID
	BlocksToDelete  []*domain.BlockedDate
	Fee             float64
}

// BlockIDs ids of blocks to remove
func (p *CancelPlan) BlockIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.BlocksToDelete))
	for _, b := range p.BlocksToDelete {
		ids = append(ids, b.ID)
	}
	return ids
}
