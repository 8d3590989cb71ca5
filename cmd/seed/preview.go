package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/listenup-seed/internal/catalog"
	"github.com/listenupapp/listenup-seed/internal/genre"
)

func newPreviewCmd(o *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the normalized catalog without touching the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			injector, cfg, err := setup(cmd, o, false)
			defer shutdown(injector)
			if err != nil {
				return err
			}

			books, err := catalog.Load(cfg.Seed.CatalogPath)
			if err != nil {
				return err
			}

			normalizer := do.MustInvoke[*genre.Normalizer](injector)
			res := normalizer.Normalize(books, time.Now())

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			bold := color.New(color.Bold).SprintFunc()
			for _, b := range res.Books {
				fmt.Printf("%s by %s\n", bold(b.Title), b.Author)
				color.Cyan("    %s", strings.Join(b.Genres, ", "))
			}
			fmt.Println()
			fmt.Printf("%s %s\n", color.GreenString("%d genres:", len(res.Vocabulary)),
				strings.Join(res.Vocabulary, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print books and vocabulary as JSON")
	return cmd
}
