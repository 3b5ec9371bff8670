package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValues собирает значения счётчика по склеенным значениям меток
func counterValues(t *testing.T, reg *prometheus.Registry, name string) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, l := range metric.GetLabel() {
				labels = append(labels, l.GetValue())
			}
			values[strings.Join(labels, "/")] = metric.GetCounter().GetValue()
		}
	}
	return values
}

func TestMetrics_DomainCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("frontdesk", reg)

	m.ObserveAdmission("admitted")
	m.ObserveAdmission("admitted")
	m.ObserveAdmission("room_unavailable")
	m.ObserveOverride("")
	m.ObserveOverride("booking.com")
	m.ObserveNotificationFailure()

	// метки сортируются по имени: outcome, service / service, source
	admissions := counterValues(t, reg, "booking_admissions_total")
	assert.Equal(t, 2.0, admissions["admitted/frontdesk"])
	assert.Equal(t, 1.0, admissions["room_unavailable/frontdesk"])

	overrides := counterValues(t, reg, "blocked_date_overrides_total")
	assert.Equal(t, 1.0, overrides["frontdesk/internal"])
	assert.Equal(t, 1.0, overrides["frontdesk/booking.com"])

	failures := counterValues(t, reg, "booking_notification_failures_total")
	assert.Equal(t, 1.0, failures["frontdesk"])
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAdmission("admitted")
		m.ObserveOverride("booking.com")
		m.ObserveNotificationFailure()
	})
	assert.Empty(t, m.ServiceName())
}
