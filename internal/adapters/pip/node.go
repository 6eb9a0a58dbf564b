package pip

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/morsellabs/dashci/internal/adapters/shell"
	"github.com/morsellabs/dashci/internal/core/ports"
)

// NodeID is the unique identifier for the dependency installer Graft node.
const NodeID graft.ID = "adapter.installer"

func init() {
	graft.Register(graft.Node[ports.DependencyInstaller]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.DependencyInstaller, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(executor), nil
		},
	})
}
