package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/listenup-seed/internal/catalog"
	"github.com/listenupapp/listenup-seed/internal/errors"
	"github.com/listenupapp/listenup-seed/internal/store/sqlstore"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) error {
	t.Helper()
	for _, key := range []string{"ENV", "DB_DRIVER", "DATABASE_URL", "SEED_TROPES", "SEED_BEST_EFFORT"} {
		t.Setenv(key, "")
	}

	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"))
	return cmd.ExecuteContext(ctx)
}

func TestSeedCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	require.NoError(t, execute(t, "--dsn", dbPath, "--tropes", "4", "--concurrency", "2"))

	st, err := sqlstore.Open(context.Background(), sqlstore.Config{DSN: dbPath}, nil)
	require.NoError(t, err)
	defer st.Close()

	books, err := catalog.Default()
	require.NoError(t, err)

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(books), stats.Books)
	assert.Equal(t, 4, stats.Tropes)
	assert.Positive(t, stats.Genres)
	assert.Positive(t, stats.BookGenres)
	assert.Zero(t, stats.OrphanBookGenres)
}

func TestResetCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	require.NoError(t, execute(t, "--dsn", dbPath))
	require.NoError(t, execute(t, "reset", "--dsn", dbPath))

	st, err := sqlstore.Open(context.Background(), sqlstore.Config{DSN: dbPath}, nil)
	require.NoError(t, err)
	defer st.Close()

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Books)
	assert.Zero(t, stats.Genres)
	assert.Zero(t, stats.BookGenres)
}

func TestSeedCommand_RefusesProduction(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	err := execute(t, "--env", "production", "--dsn", dbPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Equal(t, 2, errors.ExitCode(err))

	require.NoError(t, execute(t, "--env", "production", "--allow-production", "--dsn", dbPath))
}

func TestSeedCommand_InvalidCatalog(t *testing.T) {
	err := execute(t, "--dsn", filepath.Join(t.TempDir(), "seed.db"),
		"--catalog", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, 4, errors.ExitCode(err))
}

func TestSeedCommand_FailureExitCode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executeContext(t, ctx, "--dsn", filepath.Join(t.TempDir(), "seed.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSeedFailed)
	assert.Equal(t, 3, errors.ExitCode(err))
}

func TestSeedCommand_BestEffort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executeContext(t, ctx, "--dsn", filepath.Join(t.TempDir(), "seed.db"), "--best-effort")
	assert.NoError(t, err)
}

func TestPreviewCommand_NoDatabase(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "seed.db")

	require.NoError(t, execute(t, "preview", "--dsn", dbPath))
	assert.NoFileExists(t, dbPath)
}

func TestConfigFlags_OnlyChangedFlags(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--tropes", "0", "--best-effort"}))

	opts := &options{tropes: 0, bestEffort: true}
	flags := opts.configFlags(root)
	assert.Equal(t, "0", flags.Tropes)
	assert.Equal(t, "true", flags.BestEffort)
	assert.Empty(t, flags.Concurrency)
	assert.Empty(t, flags.Rate)
	assert.Empty(t, flags.AllowProduction)
}
