package pricing

import (
	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/pkg/money"
)

// Calculator binds the VAT policy so callers do not pass the rate around
type Calculator struct {
	vatRate float64
}

// NewCalculator validates the VAT rate
func NewCalculator(vatRate float64) (*Calculator, error) {
	if err := checkRate(vatRate); err != nil {
		return nil, err
	}
	return &Calculator{vatRate: vatRate}, nil
}

// VATRate is the configured policy constant
func (c *Calculator) VATRate() float64 {
	return c.vatRate
}

func (c *Calculator) WithVat(net float64, isTourist bool) (float64, error) {
	return WithVat(net, c.vatRate, isTourist)
}

func (c *Calculator) WithoutVat(gross float64, isTourist bool) (float64, error) {
	return WithoutVat(gross, c.vatRate, isTourist)
}

func (c *Calculator) DeriveFromTotal(total float64, nights int, isTourist bool) (NetGross, error) {
	return DeriveFromTotal(total, nights, isTourist, c.vatRate)
}

// Quote derives net -> gross -> total. Net does not depend on the tourist flag,
// gross and total are derived from it.
func (c *Calculator) Quote(net float64, nights int, isTourist bool) (domain.PriceQuote, error) {
	if err := checkNights(nights); err != nil {
		return domain.PriceQuote{}, err
	}

	gross, err := c.WithVat(net, isTourist)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	total, err := TotalForStay(gross, nights)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	return domain.PriceQuote{
		Nights:               nights,
		BasePricePerNight:    money.Round2(net),
		PricePerNightWithVat: gross,
		TotalPrice:           total,
		VATRate:              c.vatRate,
		IsTourist:            isTourist,
	}, nil
}

// QuoteFromTotal keeps an operator-entered total and derives the nightly rates from it.
func (c *Calculator) QuoteFromTotal(total float64, nights int, isTourist bool) (domain.PriceQuote, error) {
	ng, err := c.DeriveFromTotal(total, nights, isTourist)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	return domain.PriceQuote{
		Nights:               nights,
		BasePricePerNight:    ng.Net,
		PricePerNightWithVat: ng.Gross,
		TotalPrice:           money.Round2(total),
		VATRate:              c.vatRate,
		IsTourist:            isTourist,
	}, nil
}

// Requote switches tourist status (or nights) starting again from the previous net rate.
func (c *Calculator) Requote(prev domain.PriceQuote, nights int, isTourist bool) (domain.PriceQuote, error) {
	return c.Quote(prev.BasePricePerNight, nights, isTourist)
}
