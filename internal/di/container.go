// Package di provides dependency injection configuration for the seed tooling.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/listenup-seed/internal/config"
	"github.com/listenupapp/listenup-seed/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// Services are constructed lazily on first invoke.
func NewContainer(flags config.Flags) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, flags)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Seeding
	do.Provide(injector, providers.ProvideNormalizer)
	do.Provide(injector, providers.ProvideTropeGenerator)
	do.Provide(injector, providers.ProvideSeeder)

	return injector
}
