package app

import (
	"go.trai.ch/derp/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/derp/internal/core/domain"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger *logger.Logger
	Config domain.Config
}
