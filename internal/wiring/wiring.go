// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/derp/internal/adapters/config"
	_ "go.trai.ch/derp/internal/adapters/fingerprint"
	_ "go.trai.ch/derp/internal/adapters/index"
	_ "go.trai.ch/derp/internal/adapters/invoke"
	_ "go.trai.ch/derp/internal/adapters/logger"
	_ "go.trai.ch/derp/internal/adapters/object"
	_ "go.trai.ch/derp/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/derp/internal/app"
	_ "go.trai.ch/derp/internal/engine/memo"
)
