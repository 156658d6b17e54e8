package matchrun

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	library string
}

// NewFeature creates the matchrun feature. The library is loaded lazily at
// Load time so a missing file surfaces as a startup error, not a panic.
func NewFeature(service *Service, library string) *Feature {
	return &Feature{service: service, library: library}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "matchrun"
}

// IsEnabled checks if the feature is enabled. Without a library there is
// nothing to match against.
func (f *Feature) IsEnabled() bool {
	return f.library != ""
}

// Load builds the library index and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	idx, name, err := f.service.LoadLibrary(context.Background(), f.library)
	if err != nil {
		return err
	}
	h := NewHandler(f.service, idx, name)
	h.RegisterRoutes(app)
	return nil
}
