package notificationservice

// BookingConfirmation тело запроса на отправку подтверждения бронирования
type BookingConfirmation struct {
	BookingID            string  `json:"booking_id"`
	BookingNumber        int64   `json:"booking_number"`
	RoomID               int64   `json:"room_id"`
	RoomNumber           string  `json:"room_number"`
	RoomName             string  `json:"room_name"`
	CheckIn              string  `json:"check_in"`
	CheckOut             string  `json:"check_out"`
	Nights               int     `json:"nights"`
	GuestName            string  `json:"guest_name"`
	GuestPhone           string  `json:"guest_phone"`
	GuestEmail           string  `json:"guest_email,omitempty"`
	IsTourist            bool    `json:"is_tourist"`
	PricePerNightWithVat float64 `json:"price_per_night_with_vat"`
	TotalPrice           float64 `json:"total_price"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
