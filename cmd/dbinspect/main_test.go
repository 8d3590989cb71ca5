package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/store/sqlstore"
)

func TestInspect(t *testing.T) {
	ctx := context.Background()
	s, err := sqlstore.Open(ctx, sqlstore.Config{DSN: filepath.Join(t.TempDir(), "inspect.db")}, nil)
	require.NoError(t, err)
	defer s.Close()

	for _, b := range []*domain.Book{
		{ID: "book-1", Title: "Dune", Author: "Frank Herbert", CreatedAt: time.Now()},
		{ID: "book-2", Title: "Emma", Author: "Jane Austen", CreatedAt: time.Now()},
	} {
		require.NoError(t, s.CreateBook(ctx, b))
	}
	require.NoError(t, s.CreateGenres(ctx, []*domain.Genre{{ID: "genre-1", Text: "classics"}}))
	require.NoError(t, s.CreateBookGenres(ctx, []domain.BookGenre{
		{BookID: "book-1", GenreID: "genre-1", AssignedBy: "seed", AssignedAt: time.Now()},
	}))

	r, err := inspect(ctx, s, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Stats.Books)
	assert.Equal(t, []domain.GenreUsage{{Text: "classics", BookCount: 1}}, r.GenreUsage)
	require.Len(t, r.Books, 1)
	assert.Equal(t, "Dune", r.Books[0].Title)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
