// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/spritz/internal/adapters/config"
	_ "go.trai.ch/spritz/internal/adapters/fs"
	_ "go.trai.ch/spritz/internal/adapters/html"
	_ "go.trai.ch/spritz/internal/adapters/logger"
	_ "go.trai.ch/spritz/internal/adapters/svgo"
	_ "go.trai.ch/spritz/internal/adapters/telemetry"
	_ "go.trai.ch/spritz/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/spritz/internal/app"
)
