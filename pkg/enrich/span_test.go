package enrich

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/StricklySoft/stricklysoft-enrichers/pkg/exception"
)

func newTestTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, exporter
}

func eventAttrs(ev sdktrace.Event) map[attribute.Key]string {
	out := make(map[attribute.Key]string, len(ev.Attributes))
	for _, kv := range ev.Attributes {
		out[kv.Key] = kv.Value.AsString()
	}
	return out
}

func TestSpanEvents_Recorded(t *testing.T) {
	t.Parallel()
	tp, exporter := newTestTracer(t)
	cfg := DefaultConfig()
	cfg.RecordSpanEvents = true
	logger, err := NewLogger(newRecordingHandler(), cfg)
	require.NoError(t, err)

	ex := exception.Wrap(exception.New("IOError", "disk full"), "SaveError", "cannot save")
	ctx, span := tp.Tracer("enrich-test").Start(context.Background(), "save")
	logger.ErrorContext(ctx, "save failed", "error", ex)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	ev := spans[0].Events[0]
	assert.Equal(t, SpanEventName, ev.Name)

	attrs := eventAttrs(ev)
	assert.Equal(t, "SaveError", attrs["exception.type"])
	assert.Equal(t, "cannot save", attrs["exception.message"])
	assert.Equal(t, "", attrs["exception.stacktrace"])
	assert.Equal(t, exception.ToFriendlyMessage(ex), attrs[DefaultPropertyName])
}

func TestSpanEvents_Disabled(t *testing.T) {
	t.Parallel()
	tp, exporter := newTestTracer(t)
	logger := slog.New(WithFriendlyException(newRecordingHandler()))

	ctx, span := tp.Tracer("enrich-test").Start(context.Background(), "op")
	logger.ErrorContext(ctx, "failed", "error", errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Events)
}

func TestSpanEvents_NoSpanOrNoError(t *testing.T) {
	t.Parallel()
	tp, exporter := newTestTracer(t)
	next := newRecordingHandler()
	cfg := DefaultConfig()
	cfg.RecordSpanEvents = true
	logger, err := NewLogger(next, cfg)
	require.NoError(t, err)

	// Without a span in the context the record is still enriched.
	logger.Error("failed", "error", errors.New("boom"))
	assert.Len(t, attrValues(next.last(t), DefaultPropertyName), 1)

	ctx, span := tp.Tracer("enrich-test").Start(context.Background(), "op")
	logger.InfoContext(ctx, "fine")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Events)
}

func TestSpanEvents_EndedSpanIgnored(t *testing.T) {
	t.Parallel()
	tp, exporter := newTestTracer(t)
	cfg := DefaultConfig()
	cfg.RecordSpanEvents = true
	logger, err := NewLogger(newRecordingHandler(), cfg)
	require.NoError(t, err)

	ctx, span := tp.Tracer("enrich-test").Start(context.Background(), "op")
	span.End()
	logger.ErrorContext(ctx, "late failure", "error", errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Events)
}
