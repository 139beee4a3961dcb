/*
Package tracing tags every API request with a trace id and logs a span
for it.

# Usage

	tracer := tracing.New("webdesk", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span around a slow operation
	span, ctx := tracer.StartSpan(ctx, "vfs.delete")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Propagation

The renderer may send X-Trace-ID and X-Span-ID; both are echoed on the
response. Missing trace ids are minted as UUIDs so they can be pasted
into log searches.

Spans are collected on a buffered channel (1000 spans) and logged by a
single goroutine. A full buffer drops spans rather than blocking a
request.
*/
package tracing
