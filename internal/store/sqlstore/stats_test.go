package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/listenup-seed/internal/domain"
)

func seedStatsFixture(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.CreateBook(ctx, makeTestBook("book-1", "Dune")))
	require.NoError(t, s.CreateBook(ctx, makeTestBook("book-2", "Emma")))
	require.NoError(t, s.CreateGenres(ctx, []*domain.Genre{
		{ID: "genre-1", Text: "classics"},
		{ID: "genre-2", Text: "romance"},
		{ID: "genre-3", Text: "poetry"},
	}))
	require.NoError(t, s.CreateBookGenres(ctx, []domain.BookGenre{
		{BookID: "book-1", GenreID: "genre-1", AssignedBy: "seed", AssignedAt: now},
		{BookID: "book-2", GenreID: "genre-1", AssignedBy: "seed", AssignedAt: now},
		{BookID: "book-2", GenreID: "genre-2", AssignedBy: "seed", AssignedAt: now},
	}))
	require.NoError(t, s.CreateTropes(ctx, []*domain.Trope{
		{ID: "trope-1", Text: "lorem ipsum dolor"},
	}))
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	seedStatsFixture(t, s)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Books)
	assert.Equal(t, 3, stats.Genres)
	assert.Equal(t, 3, stats.BookGenres)
	assert.Equal(t, 1, stats.Tropes)
	assert.Equal(t, 0, stats.BookTropes)
	assert.Equal(t, 0, stats.OrphanBookGenres)
}

func TestStats_CountsOrphans(t *testing.T) {
	s := newTestStore(t)
	seedStatsFixture(t, s)
	ctx := context.Background()

	// The store holds a single connection, so this applies to every statement below.
	_, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys=OFF")
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, "DELETE FROM books WHERE id = 'book-2'")
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OrphanBookGenres)
}

func TestGenreUsage(t *testing.T) {
	s := newTestStore(t)
	seedStatsFixture(t, s)

	usage, err := s.GenreUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.GenreUsage{
		{Text: "classics", BookCount: 2},
		{Text: "romance", BookCount: 1},
		{Text: "poetry", BookCount: 0},
	}, usage)
}

func TestDeleteAllTropes(t *testing.T) {
	s := newTestStore(t)
	seedStatsFixture(t, s)
	ctx := context.Background()

	n, err := s.DeleteAllBookTropes(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.DeleteAllTropes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
