/*
Package tracing provides lightweight request tracing for the skill server.

Spans carry ULID-based trace and span ids from shared/id, propagate through
context.Context and the X-Trace-ID / X-Span-ID headers, and are written to
the structured log by a buffered collector goroutine.

# Usage

	tracer := tracing.New("recipedeck", logger.Logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "drive.list_folders")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
