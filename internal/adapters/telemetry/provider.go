package telemetry

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
)

// NewProvider creates a tracer provider that reports generation passes to logger.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(logger)))
}

// Tracer returns the application tracer of provider.
func Tracer(provider trace.TracerProvider) trace.Tracer {
	return provider.Tracer(domain.AppName)
}
