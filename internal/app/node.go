package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/derp/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/derp/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/engine/memo"
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
			memo.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			engine, err := graft.Dep[*memo.Engine](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[*logger.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(engine, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
		Config: cfg,
	}, nil
}
