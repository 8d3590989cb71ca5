// Package main provides the seed tool that resets a development database and
// reloads it with books, normalized genres, book-genre links and optional tropes.
//
// Usage:
//
//	go run ./cmd/seed                          # seed ./listenup-dev.db from the embedded catalog
//	go run ./cmd/seed --driver postgres --dsn postgres://localhost/listenup_dev --tropes 20
//	go run ./cmd/seed preview                  # print normalized genres, no database access
//	go run ./cmd/seed reset                    # delete seeded rows only
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/listenup-seed/internal/config"
	"github.com/listenupapp/listenup-seed/internal/di"
	"github.com/listenupapp/listenup-seed/internal/errors"
	"github.com/listenupapp/listenup-seed/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}

// options holds the parsed command line shared by every subcommand.
type options struct {
	flags config.Flags

	concurrency     int
	rate            float64
	tropes          int
	bestEffort      bool
	allowProduction bool
}

// configFlags returns the command-line values, leaving unset flags empty so
// environment and .env values still apply.
func (o *options) configFlags(cmd *cobra.Command) config.Flags {
	flags := o.flags
	set := cmd.Flags().Changed

	if set("concurrency") {
		flags.Concurrency = strconv.Itoa(o.concurrency)
	}
	if set("rate") {
		flags.Rate = strconv.FormatFloat(o.rate, 'f', -1, 64)
	}
	if set("tropes") {
		flags.Tropes = strconv.Itoa(o.tropes)
	}
	if set("best-effort") {
		flags.BestEffort = strconv.FormatBool(o.bestEffort)
	}
	if set("allow-production") {
		flags.AllowProduction = strconv.FormatBool(o.allowProduction)
	}
	return flags
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "seed",
		Short: "Reset and reload the development database with books and genres",
		Long: `Deletes book-genre links, genres and books, then inserts the genre vocabulary
derived from the catalog, every book, and the links between them.

Genres are lower-cased; a genre containing " fiction" that is not an exception
("science fiction", "historical fiction", ...) loses the word and the book is
tagged "fiction" instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, o)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.flags.Env, "env", "", "Environment (development, staging, production)")
	pf.StringVar(&o.flags.EnvFile, "env-file", ".env", "Path to .env file")
	pf.StringVar(&o.flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&o.flags.Driver, "driver", "", "Database driver: sqlite, postgres or mysql (default: sqlite)")
	pf.StringVar(&o.flags.DSN, "dsn", "", "Database DSN; a file path for sqlite (default: ./listenup-dev.db)")
	pf.StringVar(&o.flags.Catalog, "catalog", "", "JSON catalog file (default: embedded catalog)")
	pf.IntVar(&o.tropes, "tropes", 0, "Number of random tropes to generate; 0 leaves tropes untouched")
	pf.BoolVar(&o.allowProduction, "allow-production", false, "Allow seeding when ENV=production")

	f := root.Flags()
	f.StringVar(&o.flags.AssignedBy, "assigned-by", "", "Value stamped on every book-genre link (default: seed)")
	f.IntVar(&o.concurrency, "concurrency", 0, "Books inserted concurrently (default: 4)")
	f.Float64Var(&o.rate, "rate", 0, "Maximum books inserted per second; 0 is unlimited")
	f.BoolVar(&o.bestEffort, "best-effort", false, "Log seed failures and exit 0")

	root.AddCommand(newPreviewCmd(o), newResetCmd(o))
	return root
}

// setup builds the container and loads configuration, refusing production
// unless explicitly allowed.
func setup(cmd *cobra.Command, o *options, needsDatabase bool) (*do.RootScope, *config.Config, error) {
	injector := di.NewContainer(o.configFlags(cmd))

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return injector, nil, errors.Wrap(err, errors.CodeValidation, "load config")
	}

	if needsDatabase && cfg.IsProduction() && !cfg.Seed.AllowProduction {
		return injector, nil, errors.Validationf(
			"refusing to modify the %s database without --allow-production", cfg.App.Environment)
	}
	return injector, cfg, nil
}

// shutdown closes every service the container constructed.
func shutdown(injector *do.RootScope) {
	if err := injector.Shutdown(); err != nil {
		if log, ierr := do.Invoke[*logger.Logger](injector); ierr == nil {
			log.Error("Shutdown error", "error", err)
		}
	}
}
