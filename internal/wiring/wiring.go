// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/morsellabs/dashci/internal/adapters/config"
	_ "github.com/morsellabs/dashci/internal/adapters/logger"
	_ "github.com/morsellabs/dashci/internal/adapters/pip"
	_ "github.com/morsellabs/dashci/internal/adapters/pytest"
	_ "github.com/morsellabs/dashci/internal/adapters/shell"
	_ "github.com/morsellabs/dashci/internal/adapters/venv"
	_ "github.com/morsellabs/dashci/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/morsellabs/dashci/internal/app"
)
