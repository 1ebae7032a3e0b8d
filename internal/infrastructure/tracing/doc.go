/*
Package tracing provides lightweight span tracing for job runs and admin
requests.

# Overview

Every job run opens a root span; admin HTTP requests open a span through
HTTPMiddleware, and a job triggered over HTTP becomes a child of the
request span. Finished spans are handed to a buffered collector that logs
them with zap. Trace and span ids are prefixed ULIDs from the id package.

# Usage

	tracer := tracing.New("botsync", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "job.sync")
	span.SetTag("run_id", runID.String())
	err := run(ctx)
	span.SetStatus(200, err)
	tracer.End(span)

Admin responses carry the request trace id in X-Trace-ID; incoming trace
headers are ignored.
*/
package tracing
