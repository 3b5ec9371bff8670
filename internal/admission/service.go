// Package admission decides whether a booking request may be accepted, prices it
// and computes the blocked-date override plan. It performs no I/O: persisted state
// comes in through Context and the caller applies the result in one transaction.
package admission

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/availability"
	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/internal/override"
	"github.com/m04kA/SMC-FrontDeskService/internal/pricing"
	"github.com/m04kA/SMC-FrontDeskService/pkg/money"
)

type Service struct {
	calculator *pricing.Calculator
	policy     pricing.CancellationPolicy
	newID      func() uuid.UUID
}

func NewService(calculator *pricing.Calculator, policy pricing.CancellationPolicy) *Service {
	return &Service{
		calculator: calculator,
		policy:     policy,
		newID:      uuid.New,
	}
}

// WithIDGenerator replaces the uuid source
func (s *Service) WithIDGenerator(gen func() uuid.UUID) *Service {
	s.newID = gen
	return s
}

// Calculator returns the price calculator the service quotes with
func (s *Service) Calculator() *pricing.Calculator {
	return s.calculator
}

// Policy returns the cancellation policy
func (s *Service) Policy() pricing.CancellationPolicy {
	return s.policy
}

// Admit runs Validating -> ConflictChecked -> Priced -> Admitted. Business outcomes
// are reported through Result.Rejection, never as errors.
func (s *Service) Admit(req Request, actx Context) *Result {
	res := &Result{State: StateValidating}

	stay, rej := s.validate(&req, &actx)
	if rej != nil {
		return reject(res, rej)
	}

	var exclude *uuid.UUID
	if req.IsEdit() {
		exclude = &req.Existing.ID
	}

	conflicts := availability.CheckAvailability(req.RoomID, stay, actx.Bookings, actx.Blocks, exclude)
	if conflicts.HasBookings() {
		return reject(res, &Rejection{
			Reason:              ReasonRoomUnavailable,
			Message:             fmt.Sprintf("room %d is already booked for %s", req.RoomID, stay),
			ConflictingBookings: conflicts.Bookings,
		})
	}
	res.State = StateConflictChecked

	nights, err := stay.Nights()
	if err != nil {
		return reject(res, &Rejection{Reason: ReasonInvalidDates, Message: err.Error()})
	}

	quote, err := s.price(&req, actx.Room, nights)
	if err != nil {
		return reject(res, &Rejection{Reason: ReasonInvalidInput, Message: err.Error()})
	}
	res.State = StatePriced

	draft := s.draft(&req, stay, quote)

	plan := override.ResolveOverride(override.Target{
		BookingID:     draft.ID,
		BookingNumber: draft.BookingNumber,
		GuestName:     draft.Guest.Name,
		RoomID:        draft.RoomID,
		Stay:          draft.Stay,
	}, conflicts.Blocks, s.newID)

	if req.IsEdit() && (req.Existing.RoomID != draft.RoomID || !req.Existing.Stay.Equal(draft.Stay)) {
		for _, b := range actx.Blocks {
			if b != nil && b.IsShadowOf(draft.ID) {
				plan.AddDeletions(b)
			}
		}
	}

	res.Booking = draft
	res.Plan = plan
	res.State = StateAdmitted
	return res
}

func reject(res *Result, rej *Rejection) *Result {
	res.State = StateRejected
	res.Rejection = rej
	return res
}

func (s *Service) validate(req *Request, actx *Context) (domain.DateRange, *Rejection) {
	if actx.Room == nil || actx.Room.ID != req.RoomID {
		return domain.DateRange{}, &Rejection{Reason: ReasonRoomNotFound, Message: fmt.Sprintf("room %d not found", req.RoomID)}
	}
	if !actx.Room.IsActive {
		return domain.DateRange{}, &Rejection{Reason: ReasonRoomUnavailable, Message: fmt.Sprintf("room %d is out of service", req.RoomID)}
	}

	stay, err := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.DateRange{}, &Rejection{Reason: ReasonInvalidDates, Message: err.Error()}
	}

	req.Guest.Name = strings.TrimSpace(req.Guest.Name)
	req.Guest.Phone = strings.TrimSpace(req.Guest.Phone)
	if !req.IsEdit() && (req.Guest.Name == "" || req.Guest.Phone == "") {
		return domain.DateRange{}, &Rejection{Reason: ReasonMissingGuestInfo, Message: "guest name and phone are required"}
	}
	if req.IsEdit() && req.Guest.Name == "" {
		return domain.DateRange{}, &Rejection{Reason: ReasonMissingGuestInfo, Message: "guest name cannot be empty"}
	}

	if utf8.RuneCountInString(req.Guest.Name) > domain.MaxGuestNameLength {
		return domain.DateRange{}, &Rejection{Reason: ReasonInvalidInput, Message: "guest name is too long"}
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return domain.DateRange{}, &Rejection{Reason: ReasonInvalidInput, Message: "notes are too long"}
	}
	if req.PaymentStatus != "" && !req.PaymentStatus.IsValid() {
		return domain.DateRange{}, &Rejection{Reason: ReasonInvalidInput, Message: fmt.Sprintf("unknown payment status %q", req.PaymentStatus)}
	}
	status := req.PaymentStatus
	if status == "" && req.IsEdit() {
		status = req.Existing.PaymentStatus
	}
	if status == domain.PaymentStatusCanceled {
		return domain.DateRange{}, &Rejection{Reason: ReasonInvalidInput, Message: "canceled bookings cannot be admitted"}
	}

	return stay, nil
}

// price picks the derivation. New bookings: explicit total, explicit net, room rate.
// Edits keep the previous prices unless the operator typed new ones or nights or
// the tourist flag changed; the latter re-quote from the previous net.
func (s *Service) price(req *Request, room *domain.Room, nights int) (domain.PriceQuote, error) {
	if req.TotalPrice != nil {
		return s.calculator.QuoteFromTotal(*req.TotalPrice, nights, req.IsTourist)
	}

	if !req.IsEdit() {
		net := room.BasePricePerNight
		if req.BasePricePerNight != nil {
			net = *req.BasePricePerNight
		}
		return s.calculator.Quote(net, nights, req.IsTourist)
	}

	prev := req.Existing.Quote()
	if req.BasePricePerNight != nil && money.Round2(*req.BasePricePerNight) != prev.BasePricePerNight {
		return s.calculator.Quote(*req.BasePricePerNight, nights, req.IsTourist)
	}
	if nights != prev.Nights || req.IsTourist != prev.IsTourist {
		return s.calculator.Requote(prev, nights, req.IsTourist)
	}
	return prev, nil
}

func (s *Service) draft(req *Request, stay domain.DateRange, quote domain.PriceQuote) *domain.Booking {
	var b domain.Booking
	if req.IsEdit() {
		b = *req.Existing
	} else {
		b = domain.Booking{
			ID:            s.newID(),
			BookingNumber: req.BookingNumber,
			PaymentStatus: domain.PaymentStatusPending,
			CreatedBy:     req.CreatedBy,
		}
	}

	b.RoomID = req.RoomID
	b.Stay = stay
	b.Guest = req.Guest
	b.ApplyQuote(quote)
	if req.PaymentStatus != "" {
		b.PaymentStatus = req.PaymentStatus
	}
	if req.PaymentMethod != nil {
		b.PaymentMethod = req.PaymentMethod
	}
	if req.Notes != nil {
		b.Notes = req.Notes
	}
	return &b
}

// Cancel lists what has to be removed for a canceled booking: the booking, every block
// referencing it and, as a fallback, any block of the same room with exactly its dates.
func (s *Service) Cancel(booking *domain.Booking, roomBlocks []*domain.BlockedDate, now time.Time) *CancelPlan {
	plan := &CancelPlan{
		BookingToDelete: booking.ID,
		Fee:             s.policy.Fee(booking, now),
	}

	seen := make(map[uuid.UUID]struct{}, len(roomBlocks))
	for _, b := range roomBlocks {
		if b == nil {
			continue
		}
		if _, dup := seen[b.ID]; dup {
			continue
		}
		if b.IsShadowOf(booking.ID) || (b.RoomID == booking.RoomID && b.Range.Equal(booking.Stay)) {
			seen[b.ID] = struct{}{}
			plan.BlocksToDelete = append(plan.BlocksToDelete, b)
		}
	}

	return plan
}
