package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordCandidateProbe(true)
	RecordCandidateProbe(false)
	RecordLaunch("bundled", true)
	RecordLaunch("dev", false)
	SetBackendRunning(true)
	SetBackendRunning(false)
	RecordShutdown(12 * time.Millisecond)
	RecordHTTPRequest("GET", "/health", 200)
}
