package domain

// PriceQuote is the monetary part of a booking.
// PricePerNightWithVat equals BasePricePerNight for tourists, otherwise
// round2(BasePricePerNight * (1 + VATRate)); TotalPrice = round2(PricePerNightWithVat * Nights).
type PriceQuote struct {
	Nights               int
	BasePricePerNight    float64
	PricePerNightWithVat float64
	TotalPrice           float64
	VATRate              float64
	IsTourist            bool
}
