package observability

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs, err := New("test-service", promclient.NewRegistry(), sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	ctx, parent := obs.StartSpan(context.Background(), "job", attribute.String("task_type", "x"))
	_, child := obs.StartSpan(ctx, "retrieve")
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "retrieve", spans[0].Name())
	assert.Equal(t, "job", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestObservability_Metrics(t *testing.T) {
	reg := promclient.NewRegistry()
	obs, err := New("test-service", reg)
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "save-script", "completed")
	obs.RecordJobDuration(ctx, "save-script", 12*time.Millisecond, "completed")
	obs.RecordBundle(ctx, "fashion")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["jobs_processed_total"], "got %v", names)
	assert.True(t, names["jobs_duration_milliseconds"], "got %v", names)
	assert.True(t, names["context_bundles_total"], "got %v", names)
	assert.False(t, names["jobs.processed_total"], "dotted names must not be exposed")
}

func TestObservability_NilIsNoop(t *testing.T) {
	var obs *Observability

	ctx, span := obs.StartSpan(context.Background(), "noop")
	span.End()
	assert.NotNil(t, ctx)

	obs.RecordJobProcessed(ctx, "x", "ok")
	obs.RecordBundle(ctx, "general")
	obs.Shutdown(ctx)
}
