package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveBooking(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "studio")

	m.ObserveBooking("booked")
	m.ObserveBooking("booked")
	m.ObserveBooking("waitlisted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("studio", "booked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("studio", "waitlisted")))
}
