package ports

import "go.trai.ch/spritz/internal/core/domain"

// ConfigLoader defines the interface for loading the sprite configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to the nearest spritz.yaml and returns the validated configuration.
	Load(cwd string) (*domain.Config, error)

	// LoadFile reads the configuration from an explicit file path.
	LoadFile(path string) (*domain.Config, error)
}
