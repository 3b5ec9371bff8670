package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/pkg/money"
)

func newCalculator(t *testing.T, rate float64) *Calculator {
	t.Helper()
	c, err := NewCalculator(rate)
	require.NoError(t, err)
	return c
}

func TestQuote_NonTourist(t *testing.T) {
	c := newCalculator(t, 0.17)

	q, err := c.Quote(100, 3, false)
	require.NoError(t, err)

	assert.Equal(t, 117.00, q.PricePerNightWithVat)
	assert.Equal(t, 351.00, q.TotalPrice)
	assert.Equal(t, 100.00, q.BasePricePerNight)
	assert.Equal(t, 0.17, q.VATRate)
	assert.Equal(t, 3, q.Nights)
}

func TestQuote_Tourist(t *testing.T) {
	c := newCalculator(t, 0.17)

	q, err := c.Quote(100, 3, true)
	require.NoError(t, err)

	assert.Equal(t, 100.00, q.PricePerNightWithVat)
	assert.Equal(t, 300.00, q.TotalPrice)
	assert.True(t, q.IsTourist)
}

func TestWithVat_TouristInvariance(t *testing.T) {
	for _, rate := range []float64{0, 0.17, 0.18, 0.5} {
		for i := 0; i < 200; i++ {
			p := money.Round2(float64(i) * 13.37)
			got, err := WithVat(p, rate, true)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	}
}

func TestVat_RoundTrip(t *testing.T) {
	for _, rate := range []float64{0.17, 0.18} {
		for i := 0; i < 2000; i++ {
			p := money.Round2(float64(i) * 0.37)

			gross, err := WithVat(p, rate, false)
			require.NoError(t, err)
			net, err := WithoutVat(gross, rate, false)
			require.NoError(t, err)

			assert.True(t, money.AlmostEqual(p, net), "rate=%v p=%v net=%v", rate, p, net)
		}
	}
}

func TestWithoutVat(t *testing.T) {
	net, err := WithoutVat(117, 0.17, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, net)

	net, err = WithoutVat(117, 0.17, true)
	require.NoError(t, err)
	assert.Equal(t, 117.0, net)
}

func TestInvalidInputs(t *testing.T) {
	_, err := WithVat(-1, 0.17, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = WithoutVat(math.NaN(), 0.17, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = TotalForStay(100, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = TotalForStay(math.Inf(1), 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DeriveFromTotal(300, -2, false, 0.17)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = WithVat(100, 1.5, false)
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = NewCalculator(-0.1)
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	c := newCalculator(t, 0.17)
	_, err = c.Quote(100, 0, false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeriveFromTotal(t *testing.T) {
	ng, err := DeriveFromTotal(351, 3, false, 0.17)
	require.NoError(t, err)
	assert.Equal(t, 117.0, ng.Gross)
	assert.Equal(t, 100.0, ng.Net)

	ng, err = DeriveFromTotal(300, 3, true, 0.17)
	require.NoError(t, err)
	assert.Equal(t, 100.0, ng.Gross)
	assert.Equal(t, 100.0, ng.Net)
}

func TestQuoteFromTotal_KeepsOperatorTotal(t *testing.T) {
	c := newCalculator(t, 0.17)

	q, err := c.QuoteFromTotal(1000, 3, false)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, q.TotalPrice)
	assert.Equal(t, 333.33, q.PricePerNightWithVat)
	assert.Equal(t, 284.9, q.BasePricePerNight)
}

func TestRequote_TouristToggleDoesNotDrift(t *testing.T) {
	c := newCalculator(t, 0.18)

	q, err := c.Quote(89.99, 4, false)
	require.NoError(t, err)
	first := q

	for i := 0; i < 10; i++ {
		q, err = c.Requote(q, q.Nights, !q.IsTourist)
		require.NoError(t, err)
	}

	assert.Equal(t, first, q)
	assert.Equal(t, 89.99, q.BasePricePerNight)
}
