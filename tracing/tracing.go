package tracing

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/viant/jobsim"

// ErrProviderInstalled is returned when tracing is initialised again with a
// different exporter before Shutdown.
var ErrProviderInstalled = errors.New("tracing: provider already installed")

// Init configures OpenTelemetry with the stdout exporter. If outputFile is
// empty traces are written to os.Stdout. The provider is process-wide: once
// installed, Init returns ErrProviderInstalled until Shutdown and leaves
// outputFile untouched.
func Init(serviceName, serviceVersion, outputFile string) error {
	mux.Lock()
	defer mux.Unlock()
	if provider != nil {
		return ErrProviderInstalled
	}
	var w io.Writer = os.Stdout
	var f *os.File
	if outputFile != "" {
		var err error
		if f, err = os.Create(outputFile); err != nil {
			return err
		}
		w = f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err == nil {
		err = installProvider(serviceName, serviceVersion, exporter)
	}
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return err
	}
	if f != nil {
		output = f
	}
	return nil
}

// InitWithExporter configures OpenTelemetry using the supplied SpanExporter.
// Repeated calls with the installed exporter are no-ops; a different
// exporter yields ErrProviderInstalled until Shutdown.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	mux.Lock()
	defer mux.Unlock()
	if provider != nil {
		if exporter == installed {
			return nil
		}
		return ErrProviderInstalled
	}
	return installProvider(serviceName, serviceVersion, exporter)
}

var (
	mux       sync.Mutex
	provider  *sdktrace.TracerProvider
	installed sdktrace.SpanExporter
	output    io.Closer
)

// installProvider must be called with mux held.
func installProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return err
	}
	provider = sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	installed = exporter
	otel.SetTracerProvider(provider)
	return nil
}

// Shutdown flushes and stops the installed provider, if any, and closes its
// output file. A new provider may be installed afterwards.
func Shutdown(ctx context.Context) error {
	mux.Lock()
	defer mux.Unlock()
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	if output != nil {
		err = errors.Join(err, output.Close())
	}
	provider, installed, output = nil, nil, nil
	return err
}

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

// WithAttributes attaches string attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(k, v))
	}
	s.span.SetAttributes(otelAttrs...)
	return s
}

// WithInt attaches an integer attribute to the span.
func (s *Span) WithInt(key string, value int) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Int(key, value))
	return s
}

// SetStatus records an error status on the span, or OK when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
}

// StartSpan starts an internal child span.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// EndSpan records status depending on err and ends the span.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}

// WorkerAttributes returns the common attribute set for a worker replay span.
func WorkerAttributes(workerID, jobs int) map[string]string {
	return map[string]string{
		"worker.id":   strconv.Itoa(workerID),
		"worker.jobs": strconv.Itoa(jobs),
	}
}
