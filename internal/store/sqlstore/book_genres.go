package sqlstore

import (
	"context"
	"fmt"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/store"
)

var bookGenreColumns = []string{"book_id", "genre_id", "assigned_by", "assigned_at"}

// CreateBookGenres inserts book-genre links.
func (s *Store) CreateBookGenres(ctx context.Context, links []domain.BookGenre) error {
	if len(links) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(links))
	for _, l := range links {
		if l.BookID == "" || l.GenreID == "" {
			return store.ErrInvalidInput.WithCause(fmt.Errorf("book_genre requires book and genre ids"))
		}
		rows = append(rows, []any{l.BookID, l.GenreID, l.AssignedBy, formatTime(l.AssignedAt)})
	}
	return s.insertRows(ctx, tableBookGenres, bookGenreColumns, rows)
}

// ListBookGenres returns every link ordered by book then genre.
func (s *Store) ListBookGenres(ctx context.Context) ([]domain.BookGenre, error) {
	rows, err := s.query(ctx, s.builder().
		Select(bookGenreColumns...).
		From(tableBookGenres).
		OrderBy("book_id", "genre_id"))
	if err != nil {
		return nil, fmt.Errorf("list book genres: %w", err)
	}
	defer rows.Close()

	var links []domain.BookGenre
	for rows.Next() {
		var (
			l          domain.BookGenre
			assignedAt string
		)
		if err := rows.Scan(&l.BookID, &l.GenreID, &l.AssignedBy, &assignedAt); err != nil {
			return nil, fmt.Errorf("scan book genre: %w", err)
		}
		if l.AssignedAt, err = parseTime(assignedAt); err != nil {
			return nil, fmt.Errorf("parse assigned_at: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// DeleteAllBookGenres removes every book-genre link.
func (s *Store) DeleteAllBookGenres(ctx context.Context) (int64, error) {
	return s.deleteAll(ctx, tableBookGenres)
}

// DeleteAllBookTropes removes every book-trope link.
func (s *Store) DeleteAllBookTropes(ctx context.Context) (int64, error) {
	return s.deleteAll(ctx, tableBookTropes)
}
