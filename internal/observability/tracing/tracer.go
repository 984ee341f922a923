package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("wallfeed")

// GetTracer returns the shared tracer. Use it to open child spans around
// repository calls and importer batches:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "feed.rank")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
