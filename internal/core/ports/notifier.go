package ports

import (
	"context"

	"go.trai.ch/spritz/internal/core/domain"
)

// Notifier is told about every regenerated sprite so that live consumers can refresh.
//
//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks
type Notifier interface {
	// Notify publishes sprite to connected consumers.
	Notify(ctx context.Context, sprite *domain.Sprite)
}
