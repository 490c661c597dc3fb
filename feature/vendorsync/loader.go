package vendorsync

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates the sync feature.
func NewFeature(service *Service, logger *zap.Logger, enabled bool) *Feature {
	return &Feature{handler: NewHandler(service, logger), enabled: enabled}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "vendorsync"
}

// IsEnabled reports whether a catalog database is available.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
