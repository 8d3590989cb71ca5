// Package providers contains dependency injection providers for the seed tooling.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/listenup-seed/internal/config"
	"github.com/listenupapp/listenup-seed/internal/logger"
)

// ProvideConfig provides the seed configuration built from the command-line flags.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	flags := do.MustInvoke[config.Flags](i)
	return config.LoadConfig(flags)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Debug("Configuration loaded",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"driver", cfg.Database.Driver,
		"catalog", cfg.Seed.CatalogPath,
	)

	return log, nil
}
