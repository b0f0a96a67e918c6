// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/Baltazore/hex/internal/adapters/lockfile"
	_ "github.com/Baltazore/hex/internal/adapters/logger"
	_ "github.com/Baltazore/hex/internal/adapters/manifest"
	_ "github.com/Baltazore/hex/internal/adapters/registry"
	_ "github.com/Baltazore/hex/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/Baltazore/hex/internal/app"
	_ "github.com/Baltazore/hex/internal/engine/resolver"
)
