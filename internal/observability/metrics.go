package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	proto "github.com/ystepanoff/bpskbeacon/protocol"
	"github.com/ystepanoff/bpskbeacon/transport"
)

var (
	registerOnce sync.Once

	framesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beacon",
			Subsystem: "tx",
			Name:      "frames_total",
			Help:      "Messages drained to the PHY.",
		},
		[]string{"kind"},
	)
	spacingTicks = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "beacon",
			Subsystem: "tx",
			Name:      "spacing_ticks",
			Help:      "Ticks between consecutive message starts.",
			Buckets:   prometheus.LinearBuckets(proto.MinSpacing, 1, proto.JitterSpan),
		},
	)
	syncEpoch = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "beacon",
			Subsystem: "sync",
			Name:      "epoch",
			Help:      "Epoch announced by the last time-sync beacon.",
		},
	)
	syncDeadline = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "beacon",
			Subsystem: "sync",
			Name:      "deadline_ticks",
			Help:      "Deadline announced by the last time-sync beacon.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesSent, spacingTicks, syncEpoch, syncDeadline)
	})
}

// RecordCycle updates the transmit metrics for one scheduler cycle.
func RecordCycle(c transport.Cycle) {
	RegisterMetrics()
	framesSent.WithLabelValues(c.Sent.String()).Inc()
	spacingTicks.Observe(float64(c.Deadline - c.Start))
	if c.Next == proto.KindTimeSync {
		syncEpoch.Set(float64(c.Epoch))
		syncDeadline.Set(float64(c.Deadline))
	}
}
