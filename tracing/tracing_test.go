package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")

	require.NoError(t, Init("jobsim", "0.0.1", fname))
	t.Cleanup(func() { _ = Shutdown(context.Background()) })

	ctx, span := StartSpan(context.Background(), "test")
	span.WithAttributes(WorkerAttributes(1, 3)).WithInt("jobs", 3)
	_, child := StartSpan(ctx, "child")
	EndSpan(child, errors.New("boom"))
	EndSpan(span, nil)

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, string(data), "worker.id")
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithInt("k", 1))
	span.SetStatus(nil)
	EndSpan(span, nil)
}

func TestInitWithExporter_Installed(t *testing.T) {
	ctx := context.Background()
	first := tracetest.NewInMemoryExporter()
	second := tracetest.NewInMemoryExporter()
	fname := filepath.Join(t.TempDir(), "spans.txt")
	require.NoError(t, os.WriteFile(fname, []byte("keep"), 0o644))

	require.NoError(t, InitWithExporter("jobsim", "0.0.1", first))
	assert.NoError(t, InitWithExporter("jobsim", "0.0.1", first))
	assert.ErrorIs(t, InitWithExporter("jobsim", "0.0.1", second), ErrProviderInstalled)
	assert.ErrorIs(t, Init("jobsim", "0.0.1", fname), ErrProviderInstalled)
	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	_, span := StartSpan(ctx, "first")
	EndSpan(span, nil)
	assert.Len(t, first.GetSpans(), 1)
	require.NoError(t, Shutdown(ctx))

	require.NoError(t, InitWithExporter("jobsim", "0.0.1", second))
	_, span = StartSpan(ctx, "second")
	EndSpan(span, nil)
	assert.Len(t, second.GetSpans(), 1)
	require.NoError(t, Shutdown(ctx))
	assert.NoError(t, Shutdown(ctx))
}
