// Package loader provides the feature loading system for the HTTP server.
//
// Each feature implements the Feature interface, which reports whether it is
// enabled and registers its routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry: features are added with Register and the
// enabled ones are loaded, in order, by LoadAll.
package loader
