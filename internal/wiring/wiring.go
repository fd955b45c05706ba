// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/envsync/internal/adapters/config"
	_ "go.trai.ch/envsync/internal/adapters/logger"
	_ "go.trai.ch/envsync/internal/adapters/shell"
	_ "go.trai.ch/envsync/internal/adapters/state"
	_ "go.trai.ch/envsync/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/envsync/internal/app"
)
