package domain

import "time"

// Room is a bookable hotel room
type Room struct {
	ID                int64
	Number            string
	Name              string
	BasePricePerNight float64 // net of VAT
	IsActive          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
