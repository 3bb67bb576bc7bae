package ports

import "go.trai.ch/spritz/internal/core/domain"

// Optimizer rewrites raw SVG markup into a smaller equivalent.
//
//go:generate mockgen -source=optimizer.go -destination=mocks/mock_optimizer.go -package=mocks
type Optimizer interface {
	// Optimize returns the optimized markup of raw. Unset fields of opts fall back to
	// domain.DefaultOptimizerOptions.
	Optimize(raw []byte, opts domain.OptimizerOptions) ([]byte, error)
}
