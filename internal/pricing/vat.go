// Package pricing derives booking prices from a net nightly rate, the VAT policy and the
// tourist exemption. Every derivation step rounds to 2 decimals.
package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-FrontDeskService/pkg/money"
)

// WithVat returns net for tourists, otherwise round2(net * (1 + vatRate)).
func WithVat(net, vatRate float64, isTourist bool) (float64, error) {
	if err := checkAmount("net", net); err != nil {
		return 0, err
	}
	if err := checkRate(vatRate); err != nil {
		return 0, err
	}
	if isTourist {
		return money.Round2(net), nil
	}
	return money.Round2(net * (1 + vatRate)), nil
}

// WithoutVat returns gross for tourists, otherwise round2(gross / (1 + vatRate)).
func WithoutVat(gross, vatRate float64, isTourist bool) (float64, error) {
	if err := checkAmount("gross", gross); err != nil {
		return 0, err
	}
	if err := checkRate(vatRate); err != nil {
		return 0, err
	}
	if isTourist {
		return money.Round2(gross), nil
	}
	return money.Round2(gross / (1 + vatRate)), nil
}

// TotalForStay multiplies the gross nightly rate by nights. VAT is already in the rate.
func TotalForStay(pricePerNightGross float64, nights int) (float64, error) {
	if err := checkAmount("price per night", pricePerNightGross); err != nil {
		return 0, err
	}
	if err := checkNights(nights); err != nil {
		return 0, err
	}
	return money.Round2(pricePerNightGross * float64(nights)), nil
}

// NetGross is a nightly rate before and after VAT
type NetGross struct {
	Net   float64
	Gross float64
}

// DeriveFromTotal inverts TotalForStay when an operator edits the total:
// gross = round2(total / nights), net = WithoutVat(gross).
func DeriveFromTotal(total float64, nights int, isTourist bool, vatRate float64) (NetGross, error) {
	if err := checkAmount("total", total); err != nil {
		return NetGross{}, err
	}
	if err := checkNights(nights); err != nil {
		return NetGross{}, err
	}

	gross := money.Round2(total / float64(nights))
	net, err := WithoutVat(gross, vatRate, isTourist)
	if err != nil {
		return NetGross{}, err
	}
	return NetGross{Net: net, Gross: gross}, nil
}

func checkAmount(name string, v float64) error {
	if !money.IsValidAmount(v) {
		return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidInput, name, v)
	}
	return nil
}

func checkNights(nights int) error {
	if nights <= 0 {
		return fmt.Errorf("%w: nights must be positive, got %d", ErrInvalidInput, nights)
	}
	return nil
}

func checkRate(rate float64) error {
	if !money.IsValidAmount(rate) || rate >= 1 {
		return fmt.Errorf("%w: vat rate must be in [0, 1), got %v", ErrInvalidPolicy, rate)
	}
	return nil
}
