package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envsync/internal/adapters/config"
	"go.trai.ch/envsync/internal/adapters/logger"
	"go.trai.ch/envsync/internal/adapters/shell"
	"go.trai.ch/envsync/internal/adapters/state"
	"go.trai.ch/envsync/internal/adapters/watcher"
	"go.trai.ch/envsync/internal/core/ports"
)

// Components is the root of the application dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			state.NodeID,
			watcher.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.RunInfoStore](ctx)
			if err != nil {
				return nil, err
			}
			manifestWatcher, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, executor, log, store, manifestWatcher),
				Logger: log,
			}, nil
		},
	})
}
