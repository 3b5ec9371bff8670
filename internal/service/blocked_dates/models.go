package blocked_dates

// CreateRequest запрос на блокировку дат номера
type CreateRequest struct {
	UserID            int64   `json:"-"`
	RoomID            int64   `json:"-"`
	StartDate         string  `json:"startDate"` // "2025-10-15"
	EndDate           string  `json:"endDate"`   // не включается в блокировку
	Reason            string  `json:"reason"`
	ExternalSource    *string `json:"externalSource,omitempty"`    // "booking.com"
	ExternalReference *string `json:"externalReference,omitempty"` // UID события во внешнем календаре
	GuestDetails      *string `json:"guestDetails,omitempty"`
}
