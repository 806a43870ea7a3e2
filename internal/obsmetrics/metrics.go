// Package obsmetrics carries the host's Prometheus counters, adapted
// from edgectl's observability.metrics (HTTP request counters there,
// invocation/transfer counters here).
package obsmetrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lf",
			Subsystem: "host",
			Name:      "invocations_total",
			Help:      "Total lf_invoke calls by device, module, and error code.",
		},
		[]string{"device", "module", "error"},
	)
	invocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lf",
			Subsystem: "host",
			Name:      "invocation_duration_seconds",
			Help:      "Round-trip duration of an invoke call.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"device", "module", "class"},
	)
	bulkBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lf",
			Subsystem: "host",
			Name:      "bulk_bytes_total",
			Help:      "Total raw payload bytes transferred by push/pull/ram-load/send/receive.",
		},
		[]string{"device", "class", "direction"},
	)
)

// Register installs the collectors with the default registry exactly
// once; safe to call from every binary's main.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(invocations, invocationDuration, bulkBytes)
	})
}

// RecordInvocation observes one invoke's outcome and latency.
func RecordInvocation(device, module string, errCode uint32, duration time.Duration) {
	Register()
	label := strconv.FormatUint(uint64(errCode), 10)
	invocations.WithLabelValues(device, module, label).Inc()
	invocationDuration.WithLabelValues(device, module, "invoke").Observe(duration.Seconds())
}

// RecordBulkTransfer observes the byte count moved by a push/pull/
// ram-load/send/receive class, and its direction from the host's
// perspective ("out" for host-to-device, "in" for device-to-host).
func RecordBulkTransfer(device, class, direction string, n int) {
	Register()
	bulkBytes.WithLabelValues(device, class, direction).Add(float64(n))
}
