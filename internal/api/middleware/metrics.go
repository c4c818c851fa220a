package middleware

import (
	"net/http"
	"sync/atomic"
	"time"
)

// Metrics holds request counters exposed on /metrics.
type Metrics struct {
	Requests     atomic.Int64
	ClientErrors atomic.Int64
	ServerErrors atomic.Int64
	// LatencyMicros is the summed handler latency.
	LatencyMicros atomic.Int64
}

// MeanLatency is the average handler latency over all requests.
func (m *Metrics) MeanLatency() time.Duration {
	n := m.Requests.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.LatencyMicros.Load()/n) * time.Microsecond
}

// Middleware counts requests, errors by class and latency.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		m.Requests.Add(1)
		m.LatencyMicros.Add(time.Since(start).Microseconds())
		switch {
		case rw.statusCode >= 500:
			m.ServerErrors.Add(1)
		case rw.statusCode >= 400:
			m.ClientErrors.Add(1)
		}
	})
}
