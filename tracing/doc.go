// Package tracing wires OpenTelemetry into the simulator.  Spans are no-ops
// until Init or InitWithExporter installs a provider, so callers can trace
// unconditionally.
package tracing
