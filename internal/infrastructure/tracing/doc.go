/*
Package tracing provides lightweight request tracing.

Every HTTP request gets a span. Trace and parent span IDs are taken from the
X-Trace-ID and X-Span-ID request headers when a caller supplies them and are
echoed back on the response. Finished spans are reported through zap by a
buffered background collector.

# Usage

	tracer := tracing.New("linkup", logger.Logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))
*/
package tracing
