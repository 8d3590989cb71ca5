package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/listenup-seed/internal/config"
	"github.com/listenupapp/listenup-seed/internal/genre"
	"github.com/listenupapp/listenup-seed/internal/logger"
	"github.com/listenupapp/listenup-seed/internal/seeder"
	"github.com/listenupapp/listenup-seed/internal/trope"
)

// ProvideNormalizer provides the genre normalizer with the default exception list.
func ProvideNormalizer(i do.Injector) (*genre.Normalizer, error) {
	log := do.MustInvoke[*logger.Logger](i)

	for _, e := range genre.UnreachableExceptions(genre.DefaultExceptions) {
		log.Warn("Genre exception can never match lower-cased input", "exception", e)
	}

	return genre.NewNormalizer(nil), nil
}

// ProvideTropeGenerator provides the random trope generator.
func ProvideTropeGenerator(i do.Injector) (*trope.Generator, error) {
	return trope.NewGenerator(uint64(time.Now().UnixNano()), nil), nil
}

// ProvideSeeder provides the seeder bound to the configured store.
func ProvideSeeder(i do.Injector) (*seeder.Seeder, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	normalizer := do.MustInvoke[*genre.Normalizer](i)
	tropes := do.MustInvoke[*trope.Generator](i)

	return seeder.New(storeHandle.Store, normalizer, log.Logger, seeder.Options{
		AssignedBy:  cfg.Seed.AssignedBy,
		Concurrency: cfg.Seed.Concurrency,
		RateLimit:   cfg.Seed.Rate,
		Tropes:      cfg.Seed.Tropes,
	}, seeder.WithTropeSource(tropes)), nil
}
