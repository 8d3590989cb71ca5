package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/listenup-seed/internal/catalog"
	"github.com/listenupapp/listenup-seed/internal/config"
	"github.com/listenupapp/listenup-seed/internal/di/providers"
	"github.com/listenupapp/listenup-seed/internal/seeder"
)

func testFlags(t *testing.T) config.Flags {
	t.Helper()
	for _, key := range []string{"ENV", "DB_DRIVER", "DATABASE_URL", "SEED_TROPES"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	return config.Flags{
		EnvFile:  filepath.Join(dir, "missing.env"),
		DSN:      filepath.Join(dir, "seed.db"),
		LogLevel: "error",
		Tropes:   "3",
	}
}

func TestNewContainer_SeedsThroughProviders(t *testing.T) {
	injector := NewContainer(testFlags(t))
	defer injector.Shutdown()

	cfg := do.MustInvoke[*config.Config](injector)
	assert.Equal(t, 3, cfg.Seed.Tropes)

	sd, err := do.Invoke[*seeder.Seeder](injector)
	require.NoError(t, err)

	books, err := catalog.Default()
	require.NoError(t, err)

	result, err := sd.Run(context.Background(), books)
	require.NoError(t, err)
	assert.Equal(t, len(books), result.BooksCreated)
	assert.Equal(t, 3, result.TropesCreated)

	storeHandle := do.MustInvoke[*providers.StoreHandle](injector)
	stats, err := storeHandle.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Tropes)
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	flags := testFlags(t)
	flags.Driver = "oracle"

	injector := NewContainer(flags)
	defer injector.Shutdown()

	_, err := do.Invoke[*config.Config](injector)
	assert.Error(t, err)
}
