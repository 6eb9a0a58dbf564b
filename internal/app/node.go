package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/morsellabs/dashci/internal/adapters/config"
	"github.com/morsellabs/dashci/internal/adapters/logger"
	"github.com/morsellabs/dashci/internal/adapters/pip"
	"github.com/morsellabs/dashci/internal/adapters/pytest"
	"github.com/morsellabs/dashci/internal/adapters/venv"
	"github.com/morsellabs/dashci/internal/adapters/watcher"
	"github.com/morsellabs/dashci/internal/core/ports"
)

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

// Components bundles the fully wired application with the services the CLI
// layer needs directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			venv.NodeID,
			pip.NodeID,
			pytest.NodeID,
			watcher.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			provisioner, err := graft.Dep[ports.EnvironmentProvisioner](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.DependencyInstaller](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.TestRunner](ctx)
			if err != nil {
				return nil, err
			}

			fsWatcher, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, provisioner, installer, runner, log, fsWatcher),
				Logger: log,
			}, nil
		},
	})
}
