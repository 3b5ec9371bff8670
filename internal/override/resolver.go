// Package override decides which blocked dates an admitted booking releases and
// which shadow block reserves its stay. New bookings win over blocked dates,
// never over other bookings; the latter is enforced by the admission service.
package override

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/pkg/ptr"
)

// Target the booking the shadow block is created for
type Target struct {
	BookingID     uuid.UUID
	BookingNumber int64
	GuestName     string
	RoomID        int64
	Stay          domain.DateRange
}

// Plan is applied by persistence as one unit: ToDelete first, then ToCreate.
// Deleting a missing block and re-creating an existing shadow are both no-ops.
type Plan struct {
	ToDelete []*domain.BlockedDate
	ToCreate *domain.BlockedDate
}

// DeleteIDs ids of blocks to remove
func (p *Plan) DeleteIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.ToDelete))
	for _, b := range p.ToDelete {
		ids = append(ids, b.ID)
	}
	return ids
}

// ShadowReason formats the reason of a shadow block
func ShadowReason(bookingNumber int64, guestName string) string {
	return fmt.Sprintf("Booking #%d - %s", bookingNumber, guestName)
}

// ResolveOverride marks every conflicting block for deletion, whatever its external
// source, and builds the shadow block for the target. newID allocates the shadow's id.
func ResolveOverride(target Target, conflictingBlocks []*domain.BlockedDate, newID func() uuid.UUID) *Plan {
	plan := &Plan{
		ToDelete: make([]*domain.BlockedDate, 0, len(conflictingBlocks)),
	}

	seen := make(map[uuid.UUID]struct{}, len(conflictingBlocks))
	for _, b := range conflictingBlocks {
		if b == nil {
			continue
		}
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		plan.ToDelete = append(plan.ToDelete, b)
	}

	plan.ToCreate = &domain.BlockedDate{
		ID:                newID(),
		RoomID:            target.RoomID,
		Range:             target.Stay,
		Reason:            ShadowReason(target.BookingNumber, target.GuestName),
		ExternalReference: ptr.Ptr(domain.ShadowReference(target.BookingID)),
	}

	return plan
}

// AddDeletions appends blocks not already scheduled for deletion
func (p *Plan) AddDeletions(blocks ...*domain.BlockedDate) {
	for _, b := range blocks {
		if b == nil || p.deletes(b.ID) {
			continue
		}
		p.ToDelete = append(p.ToDelete, b)
	}
}

func (p *Plan) deletes(id uuid.UUID) bool {
	for _, d := range p.ToDelete {
		if d.ID == id {
			return true
		}
	}
	return false
}

// Apply executes the plan against an in-memory block set and returns the new set.
// It mirrors the persistence contract: delete-by-id ignores missing rows and the shadow
// is upserted by its external reference, so applying a plan twice equals applying it once.
func Apply(blocks []*domain.BlockedDate, plan *Plan) []*domain.BlockedDate {
	if plan == nil {
		return blocks
	}

	result := make([]*domain.BlockedDate, 0, len(blocks)+1)
	for _, b := range blocks {
		if plan.deletes(b.ID) {
			continue
		}
		if plan.ToCreate != nil && sameReference(b, plan.ToCreate) {
			continue
		}
		result = append(result, b)
	}

	if plan.ToCreate != nil {
		created := *plan.ToCreate
		result = append(result, &created)
	}

	return result
}

func sameReference(a, b *domain.BlockedDate) bool {
	return a.ExternalReference != nil && b.ExternalReference != nil && *a.ExternalReference == *b.ExternalReference
}
