// Package telemetry connects OpenTelemetry tracing to the logger.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to report finished generation
// passes through the logger.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{
		logger: logger,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd reports a successful generation pass with its symbol count and duration.
// Failed passes are reported by the caller that receives the error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || s.Name() != domain.SpanGenerate {
		return
	}
	if s.Status().Code == codes.Error {
		return
	}

	symbols := int64(0)
	for _, attr := range s.Attributes() {
		if string(attr.Key) == domain.AttrSymbolCount {
			symbols = attr.Value.AsInt64()
		}
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	b.logger.Info(fmt.Sprintf("generated sprite (%d symbols) in %s", symbols, elapsed))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
