package main

import (
	"github.com/fatih/color"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/listenup-seed/internal/errors"
	"github.com/listenupapp/listenup-seed/internal/seeder"
)

func newResetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete seeded links, genres and books without reloading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			injector, _, err := setup(cmd, o, true)
			defer shutdown(injector)
			if err != nil {
				return err
			}

			sd, err := do.Invoke[*seeder.Seeder](injector)
			if err != nil {
				return errors.Internal("open database").WithCause(err)
			}

			deleted, err := sd.Reset(cmd.Context())
			if err != nil {
				return err
			}

			color.Green(
				"✓ Deleted %d books, %d genres, %d book genres, %d tropes, %d book tropes",
				deleted.Books, deleted.Genres, deleted.BookGenres, deleted.Tropes, deleted.BookTropes)
			return nil
		},
	}
}
