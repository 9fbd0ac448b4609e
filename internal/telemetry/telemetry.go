// Package telemetry wraps OpenTelemetry tracing around the major phases
// of a run (wind load, integration, rasterization, markup), exporting
// spans to stdout or a file — never over the network, matching the
// tools' offline, file-in/file-out nature.
package telemetry

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"trajectory/internal/errs"
)

// Provider owns the tracer and its shutdown hook. A disabled Provider
// (Enabled() == false) returns a no-op tracer, so callers never need to
// branch on whether tracing is on.
type Provider struct {
	tp      *sdktrace.TracerProvider
	tracer  trace.Tracer
	enabled bool
}

// Setup builds a stdout (or file) trace exporter for serviceName, or a
// no-op provider if enabled is false.
func Setup(serviceName string, enabled bool, outputFile string) (*Provider, error) {
	if !enabled {
		return &Provider{tracer: otel.Tracer(serviceName)}, nil
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, errs.Wrapf(errs.ErrUnreadableFile, "creating trace output file %s: %v", outputFile, err)
		}
		w = f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, errs.Wrapf(errs.ErrConfig, "building stdout trace exporter: %v", err)
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewSchemaless(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, errs.Wrapf(errs.ErrConfig, "building trace resource: %v", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp, tracer: tp.Tracer(serviceName), enabled: true}, nil
}

// Enabled reports whether spans are actually being exported anywhere.
func (p *Provider) Enabled() bool { return p.enabled }

// Start opens a span for one named phase of the run.
func (p *Provider) Start(ctx context.Context, name string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name)
}

// Shutdown flushes and closes the exporter. Safe to call on a disabled
// provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	if err := p.tp.Shutdown(ctx); err != nil {
		return errs.Wrapf(errs.ErrUnreadableFile, "shutting down trace provider: %v", err)
	}
	return nil
}
