package venv

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/morsellabs/dashci/internal/adapters/logger"
	"github.com/morsellabs/dashci/internal/core/ports"
)

// NodeID is the unique identifier for the environment provisioner Graft node.
const NodeID graft.ID = "adapter.env_provisioner"

func init() {
	graft.Register(graft.Node[ports.EnvironmentProvisioner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentProvisioner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvisioner(log), nil
		},
	})
}
