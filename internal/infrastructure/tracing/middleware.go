package tracing

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// HeaderTraceID carries the request's trace id back to the caller, so a
// POST /jobs response can be matched to the job's log lines.
const HeaderTraceID = "X-Trace-ID"

// HTTPMiddleware opens one span per admin request, named by route.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		span, ctx := tracer.StartSpan(c.Request.Context(), c.Request.Method+" "+route)
		span.SetTag("http.path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderTraceID, span.TraceID.String())

		c.Next()

		var err error
		if len(c.Errors) > 0 {
			err = c.Errors.Last()
		}
		span.SetStatus(c.Writer.Status(), err)
		span.SetTag("http.status", strconv.Itoa(c.Writer.Status()))
		tracer.End(span)
	}
}
