package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		// route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, duration, reqSize, respSize)
	}
}

// Handler exposes the collector's registry in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Timer measures a gateway call
type Timer struct {
	start     time.Time
	metrics   *Metrics
	gateway   string
	operation string
}

// NewTimer creates a new timer. A nil collector makes Stop a no-op.
func NewTimer(metrics *Metrics, gateway, operation string) *Timer {
	return &Timer{
		start:     time.Now(),
		metrics:   metrics,
		gateway:   gateway,
		operation: operation,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop(ok bool) {
	if t.metrics == nil {
		return
	}
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeDegraded
	}
	t.metrics.RecordGatewayCall(t.gateway, t.operation, outcome, time.Since(t.start))
}
