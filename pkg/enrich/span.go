package enrich

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/StricklySoft/stricklysoft-enrichers/pkg/exception"
)

// SpanEventName is the name of the span event added when
// [Config.RecordSpanEvents] is set, following the OpenTelemetry
// convention for exceptions.
const SpanEventName = "exception"

// recordSpanEvent adds an exception event to the span in ctx. Spans that
// are not recording are left alone.
func (h *Handler) recordSpanEvent(ctx context.Context, ex *exception.Exception, message string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(SpanEventName, trace.WithAttributes(
		attribute.String("exception.type", ex.Type),
		attribute.String("exception.message", ex.Message),
		attribute.String("exception.stacktrace", h.flattener.GetStackTrace(ex)),
		attribute.String(h.cfg.PropertyName, message),
	))
}
