package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Use the route template so job names don't explode label cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, time.Since(start))
	}
}

// Timer measures an external call
type Timer struct {
	start     time.Time
	metrics   *Metrics
	client    string
	operation string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, client, operation string) *Timer {
	return &Timer{
		start:     time.Now(),
		metrics:   metrics,
		client:    client,
		operation: operation,
	}
}

// Stop stops the timer and records the call outcome
func (t *Timer) Stop(err error) {
	t.metrics.RecordCall(t.client, t.operation, err, time.Since(t.start))
}
