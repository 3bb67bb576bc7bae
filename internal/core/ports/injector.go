package ports

import "go.trai.ch/spritz/internal/core/domain"

// Injector splices the sprite document into HTML pages.
//
//go:generate mockgen -source=injector.go -destination=mocks/mock_injector.go -package=mocks
type Injector interface {
	// Inject returns page with the sprite markup placed at pos. Any sprite previously
	// injected under rootID is replaced. With domain.InjectNone the page is returned unchanged.
	Inject(page []byte, sprite *domain.Sprite, pos domain.InjectPosition) ([]byte, error)
}
