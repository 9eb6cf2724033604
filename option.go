package jobsim

import (
	"github.com/sirupsen/logrus"
	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/progress"
	"github.com/viant/jobsim/service/dao"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service. Options are applied in order, so WithConfig
// should precede options overriding individual settings.
type Option func(s *Service)

// WithConfig replaces the whole configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithWorkers sets the worker pool size
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.Workers = count
	}
}

// WithArrivalValidation toggles rejection of out of order arrivals
func WithArrivalValidation(enabled bool) Option {
	return func(s *Service) {
		s.config.Arrival.Validate = enabled
	}
}

// WithParallel replays workers concurrently during ComputeCompletions
func WithParallel(parallel bool) Option {
	return func(s *Service) {
		s.config.Simulator.Parallel = parallel
	}
}

// WithJobDAO sets the job registry
func WithJobDAO(jobs dao.Service[int, model.Job]) Option {
	return func(s *Service) {
		s.jobs = jobs
	}
}

// WithLogger sets the logger; log.level from config is not applied to it
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithProgressListener registers a callback invoked on every counter change
func WithProgressListener(listener func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = listener
	}
}

// WithTracing enables OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty spans are written to stdout. The provider is
// process-wide: New fails with tracing.ErrProviderInstalled while another
// service's provider is installed; call tracing.Shutdown to release it.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.config.Tracing = TracingConfig{Enabled: true, Service: serviceName, Version: serviceVersion, OutputFile: outputFile}
	}
}

// WithTracingExporter enables tracing with a custom SpanExporter. Services
// sharing the installed exporter may coexist; a different exporter makes New
// fail with tracing.ErrProviderInstalled until tracing.Shutdown.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.config.Tracing.Enabled = true
		s.config.Tracing.Service = serviceName
		s.config.Tracing.Version = serviceVersion
		s.exporter = exporter
	}
}
