package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spritz/internal/adapters/logger"
	"go.trai.ch/spritz/internal/core/ports"
)

const (
	// ScannerNodeID is the unique identifier for the icon scanner Graft node.
	ScannerNodeID graft.ID = "adapter.fs.scanner"
	// WriterNodeID is the unique identifier for the sprite writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
)

func init() {
	graft.Register(graft.Node[ports.Scanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Scanner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScanner(log), nil
		},
	})

	graft.Register(graft.Node[ports.Writer]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Writer, error) {
			return NewWriter(), nil
		},
	})
}
