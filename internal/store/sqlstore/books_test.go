package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/store"
)

// makeTestBook creates a domain.Book with sensible defaults for testing.
func makeTestBook(id, title string) *domain.Book {
	return &domain.Book{
		ID:          id,
		Title:       title,
		Author:      "Frank Herbert",
		Rating:      4.25,
		RatingCount: 1200,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCreateAndListBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, makeTestBook("book-2", "Emma")))
	require.NoError(t, s.CreateBook(ctx, makeTestBook("book-1", "Dune")))

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "book-1", books[0].ID)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.InDelta(t, 4.25, books[0].Rating, 0.0001)
	assert.Equal(t, 1200, books[0].RatingCount)
	assert.True(t, books[0].CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestCreateBook_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, makeTestBook("book-1", "Dune")))
	err := s.CreateBook(ctx, makeTestBook("book-1", "Dune"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateBook_MissingID(t *testing.T) {
	s := newTestStore(t)
	err := s.CreateBook(context.Background(), makeTestBook("", "Dune"))
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestDeleteAllBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, makeTestBook("book-1", "Dune")))
	require.NoError(t, s.CreateBook(ctx, makeTestBook("book-2", "Emma")))

	n, err := s.DeleteAllBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	n, err = s.DeleteAllBooks(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
