package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process-wide counters shared by every engine. They register with the
// default Prometheus registry on import.
var (
	samplesFiltered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zplane_stream_samples_filtered_total",
		Help: "Samples produced by the streaming filter",
	})
	stepsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zplane_stream_steps_rejected_total",
		Help: "Filter steps rejected because the cascade was degenerate",
	})
	precisionWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zplane_stream_precision_warnings_total",
		Help: "Outputs whose imaginary part exceeded the tolerance and was dropped",
	})
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zplane_stream_sessions_started_total",
		Help: "Signal sessions started by attaching or appending a signal",
	})
)
