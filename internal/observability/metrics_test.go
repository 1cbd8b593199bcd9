package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRequestTotal(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/users", "POST", 201, 5*time.Millisecond)
	m.RecordRequest("/api/users", "POST", 201, 7*time.Millisecond)
	m.RecordRequest("/api/users", "POST", 400, time.Millisecond)

	assert.Equal(t, int64(2), m.RequestTotal("/api/users", "POST", 201))
	assert.Equal(t, int64(1), m.RequestTotal("/api/users", "POST", 400))
	assert.Equal(t, int64(0), m.RequestTotal("/api/users", "GET", 200))
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/api/health", "GET", 200, time.Millisecond)
	m.RecordError("/api/health", "GET", "INTERNAL_ERROR")
	assert.Equal(t, int64(0), m.RequestTotal("/api/health", "GET", 200))
}
