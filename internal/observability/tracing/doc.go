// Package tracing wires OpenTelemetry into the request pipeline.
//
// Middleware opens a server span per request, joining any W3C trace
// context the client or CDN edge sent, and echoes the trace ID back in
// X-Trace-Id. GetTracer hands out the shared tracer for child spans
// around repository calls and importer batches.
package tracing
