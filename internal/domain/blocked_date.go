package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const shadowReferencePrefix = "booking:"

// BlockedDate reserves a room against bookings. Shadow blocks mirror an active booking
// and carry ExternalReference "booking:<bookingId>"; external blocks come from channel sync.
type BlockedDate struct {
	ID                uuid.UUID
	RoomID            int64
	Range             DateRange
	Reason            string
	ExternalSource    *string
	ExternalReference *string
	GuestDetails      *string

	CreatedAt time.Time
}

// ShadowReference formats the reference of a booking's shadow block
func ShadowReference(bookingID uuid.UUID) string {
	return shadowReferencePrefix + bookingID.String()
}

// IsShadowOf reports whether the block mirrors the given booking
func (b *BlockedDate) IsShadowOf(bookingID uuid.UUID) bool {
	return b.ExternalReference != nil && *b.ExternalReference == ShadowReference(bookingID)
}

// IsShadow reports whether the block mirrors any booking
func (b *BlockedDate) IsShadow() bool {
	return b.ExternalReference != nil && strings.HasPrefix(*b.ExternalReference, shadowReferencePrefix)
}

// Source returns the external source or "" for internal blocks
func (b *BlockedDate) Source() string {
	if b.ExternalSource == nil {
		return ""
	}
	return *b.ExternalSource
}
