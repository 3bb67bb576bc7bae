package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/spritz/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/adapters/html"      //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/adapters/svgo"      //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ScannerNodeID,
			fs.WriterNodeID,
			svgo.NodeID,
			html.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	scanner, err := graft.Dep[ports.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.Writer](ctx)
	if err != nil {
		return nil, err
	}

	optimizer, err := graft.Dep[ports.Optimizer](ctx)
	if err != nil {
		return nil, err
	}

	injector, err := graft.Dep[ports.Injector](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[trace.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, scanner, optimizer, writer, injector, w, log, tracer), nil
}
