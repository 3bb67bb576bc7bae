package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.trai.ch/spritz/internal/adapters/telemetry"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_ReportsGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var got string
	mockLogger.EXPECT().Info(gomock.Any()).Do(func(msg string) { got = msg }).Times(1)

	tracer := telemetry.Tracer(telemetry.NewProvider(mockLogger))
	_, span := tracer.Start(context.Background(), domain.SpanGenerate)
	span.SetAttributes(attribute.Int(domain.AttrSymbolCount, 3))
	span.End()

	assert.True(t, strings.HasPrefix(got, "generated sprite (3 symbols) in "), got)
}

func TestBridge_IgnoresOtherSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	tracer := telemetry.Tracer(telemetry.NewProvider(mockLogger))
	_, span := tracer.Start(context.Background(), domain.SpanIcon)
	span.End()
}

func TestBridge_IgnoresFailedPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	tracer := telemetry.Tracer(telemetry.NewProvider(mockLogger))
	_, span := tracer.Start(context.Background(), domain.SpanGenerate)
	span.RecordError(errors.New("cancelled"))
	span.SetStatus(codes.Error, "cancelled")
	span.End()
}

func TestBridge_NilLogger(t *testing.T) {
	tracer := telemetry.Tracer(telemetry.NewProvider(nil))
	_, span := tracer.Start(context.Background(), domain.SpanGenerate)
	assert.NotPanics(t, func() { span.End() })
}
