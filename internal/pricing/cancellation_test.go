package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

func TestCancellationPolicy_Fee(t *testing.T) {
	policy, err := NewCancellationPolicy(3)
	require.NoError(t, err)

	stay, err := domain.ParseDateRange("2024-03-10", "2024-03-12")
	require.NoError(t, err)
	b := &domain.Booking{Stay: stay, TotalPrice: 234}

	at := func(s string) time.Time {
		d, err := time.Parse(domain.DateFormat, s)
		require.NoError(t, err)
		return d.Add(18 * time.Hour)
	}

	assert.Equal(t, 0.0, policy.Fee(b, at("2024-03-01")))
	assert.Equal(t, 0.0, policy.Fee(b, at("2024-03-07")), "deadline day is still free")
	assert.Equal(t, 234.0, policy.Fee(b, at("2024-03-08")))
	assert.Equal(t, 234.0, policy.Fee(b, at("2024-03-10")))
}

func TestNewCancellationPolicy_Invalid(t *testing.T) {
	_, err := NewCancellationPolicy(-1)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
