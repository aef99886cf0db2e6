package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintner/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer sets up a test tracer with an in-memory span recorder.
// Returns the span recorder for assertions and a cleanup function.
func setupTestTracer(t *testing.T) (*tracetest.SpanRecorder, func()) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sr),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		_ = tp.Shutdown(context.Background())
	}

	return sr, cleanup
}

func TestStartSpan(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartSpan(ctx, "manufacturer.create")
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, "manufacturer.create", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
}

func TestStartSpan_WithOptions(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartSpan(ctx, "taxonomy.sync",
		telemetry.WithAttribute(telemetry.SpanAttrCountryISO, "IT"),
		telemetry.WithSpanKind(trace.SpanKindClient),
	)
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())

	attrs := spans[0].Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, telemetry.SpanAttrCountryISO, string(attrs[0].Key))
	assert.Equal(t, "IT", attrs[0].Value.AsString())
}

func TestStartServiceSpan(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartServiceSpan(ctx, "manufacturer", "update_positions")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "manufacturer.update_positions", spans[0].Name())
}

func TestSetAttributes(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartSpan(ctx, "product.tag")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrProductSlug, "barolo-riserva",
		telemetry.SpanAttrTaxonPermalink, "countries/italy/piemonte",
		"taxon_count", 3,
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrs := spans[0].Attributes()
	require.Len(t, attrs, 3)
	assert.Equal(t, "barolo-riserva", attrs[0].Value.AsString())
	assert.Equal(t, "countries/italy/piemonte", attrs[1].Value.AsString())
	assert.Equal(t, int64(3), attrs[2].Value.AsInt64())
}

func TestSetAttributes_SkipsNonStringKeys(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartSpan(ctx, "test.operation")
	telemetry.SetAttributes(span, 42, "ignored", "valid_key", "kept")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrs := spans[0].Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "valid_key", string(attrs[0].Key))
}

func TestRecordError(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartSpan(ctx, "manufacturer.delete")
	telemetry.RecordError(span, errors.New("not found"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "not found", spans[0].Status().Description)

	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "exception", events[0].Name)
}

func TestRecordError_NilError(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartSpan(ctx, "test.operation")
	telemetry.RecordError(span, nil)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
}

func TestSetOK(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartSpan(ctx, "test.operation")
	telemetry.SetOK(span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestAddEvent(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	_, span := telemetry.StartSpan(ctx, "taxonomy.sync")
	telemetry.AddEvent(span, "taxon_created",
		telemetry.SpanAttrTaxonPermalink, "countries/france",
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "taxon_created", events[0].Name)
	require.Len(t, events[0].Attributes, 1)
	assert.Equal(t, "countries/france", events[0].Attributes[0].Value.AsString())
}

func TestGetTraceID(t *testing.T) {
	_, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx := context.Background()

	assert.Empty(t, telemetry.GetTraceID(ctx))

	ctx, span := telemetry.StartSpan(ctx, "test.operation")
	defer span.End()

	traceID := telemetry.GetTraceID(ctx)
	assert.NotEmpty(t, traceID)
	assert.Len(t, traceID, 32)

	spanID := telemetry.GetSpanID(ctx)
	assert.NotEmpty(t, spanID)
	assert.Len(t, spanID, 16)
}
