package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("barber-booking", prometheus.NewRegistry())

	m.IncBookingCreated()
	m.IncBookingCreated()
	m.IncBookingConflict()
	m.IncBookingTransition("confirmed")
	m.RecordDBQuery("query", time.Millisecond, errors.New("down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingTransitions.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("query")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated()
		m.IncBookingConflict()
		m.IncBookingTransition("cancelled")
		m.IncNotificationDropped()
		m.RecordHTTPRequest("GET", "/x", 200, time.Second)
		m.RecordDBQuery("exec", time.Second, nil)
		m.SetDBPoolStats(1, 1, 0)
	})
}
