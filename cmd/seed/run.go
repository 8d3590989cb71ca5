package main

import (
	"time"

	"github.com/fatih/color"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/listenup-seed/internal/catalog"
	"github.com/listenupapp/listenup-seed/internal/errors"
	"github.com/listenupapp/listenup-seed/internal/logger"
	"github.com/listenupapp/listenup-seed/internal/seeder"
)

func runSeed(cmd *cobra.Command, o *options) error {
	injector, cfg, err := setup(cmd, o, true)
	defer shutdown(injector)
	if err != nil {
		return err
	}

	log := do.MustInvoke[*logger.Logger](injector)

	books, err := catalog.Load(cfg.Seed.CatalogPath)
	if err != nil {
		return err
	}

	sd, err := do.Invoke[*seeder.Seeder](injector)
	if err != nil {
		return errors.Internal("open database").WithCause(err)
	}

	result, err := sd.Run(cmd.Context(), books)
	if err != nil {
		if cfg.Seed.BestEffort {
			log.WithError(err).Warn("Seed failed, continuing in best-effort mode",
				"books_created", result.BooksCreated)
			color.Yellow("⚠ Seed incomplete: %d of %d books loaded", result.BooksCreated, len(books))
			return nil
		}
		return err
	}

	color.Green("✓ Seeded %d books, %d genres, %d links and %d tropes in %s",
		result.BooksCreated, result.GenresCreated, result.LinksCreated, result.TropesCreated,
		result.Duration.Round(time.Millisecond))
	for _, u := range result.UnmatchedGenres {
		color.Yellow("  no genre row for %q on %q", u.Genre, u.Title)
	}
	return nil
}
