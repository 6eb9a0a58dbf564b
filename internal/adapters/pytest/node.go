package pytest

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/morsellabs/dashci/internal/adapters/shell"
	"github.com/morsellabs/dashci/internal/core/ports"
)

// NodeID is the unique identifier for the test runner Graft node.
const NodeID graft.ID = "adapter.test_runner"

func init() {
	graft.Register(graft.Node[ports.TestRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.TestRunner, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(executor), nil
		},
	})
}
