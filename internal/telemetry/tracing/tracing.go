package tracing

import (
	"fmt"

	honeycomb "github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("semearapi")

// HoneycombSetup configures the global otel providers to export to honeycomb.
// The returned func flushes and shuts the exporters down. When disabled, otel
// keeps its no-op providers and the shutdown func does nothing.
func HoneycombSetup(enabled bool, serviceName, serviceVersion string) (func(), error) {
	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithServiceVersion(serviceVersion),
		otelconfig.WithSpanProcessor(honeycomb.NewBaggageSpanProcessor()),
	)
	if err != nil {
		return nil, fmt.Errorf("configure opentelemetry: %w", err)
	}

	log.Infof("honeycomb tracing enabled for %s", serviceName)
	return otelShutdown, nil
}

// RecordError marks span as failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	RecordError(span, err)
	span.End()
}
