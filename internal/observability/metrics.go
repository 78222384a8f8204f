package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	candidateProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hostctl",
			Subsystem: "locator",
			Name:      "candidate_probes_total",
			Help:      "Candidate path existence probes during discovery.",
		},
		[]string{"exists"},
	)
	launchAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hostctl",
			Subsystem: "supervisor",
			Name:      "launch_attempts_total",
			Help:      "Backend launch attempts by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)
	backendRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hostctl",
			Subsystem: "supervisor",
			Name:      "backend_running",
			Help:      "Whether a backend process handle is currently held.",
		},
	)
	shutdownDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hostctl",
			Subsystem: "supervisor",
			Name:      "shutdown_duration_seconds",
			Help:      "Kill-and-reap duration at host exit.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hostctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Status endpoint requests.",
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			candidateProbes,
			launchAttempts,
			backendRunning,
			shutdownDuration,
			httpRequests,
		)
	})
}

func RecordCandidateProbe(exists bool) {
	RegisterMetrics()
	candidateProbes.WithLabelValues(strconv.FormatBool(exists)).Inc()
}

func RecordLaunch(mode string, ok bool) {
	RegisterMetrics()
	outcome := "error"
	if ok {
		outcome = "ok"
	}
	launchAttempts.WithLabelValues(mode, outcome).Inc()
}

func SetBackendRunning(running bool) {
	RegisterMetrics()
	if running {
		backendRunning.Set(1)
		return
	}
	backendRunning.Set(0)
}

func RecordShutdown(duration time.Duration) {
	RegisterMetrics()
	shutdownDuration.Observe(duration.Seconds())
}

func RecordHTTPRequest(method, path string, status int) {
	RegisterMetrics()
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
