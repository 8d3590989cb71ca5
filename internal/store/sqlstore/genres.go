package sqlstore

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/store"
)

var genreColumns = []string{"id", "text"}

// CreateGenres bulk-inserts genres. A text already present fails with
// store.ErrAlreadyExists.
func (s *Store) CreateGenres(ctx context.Context, genres []*domain.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(genres))
	for _, g := range genres {
		if g == nil || g.ID == "" || g.Text == "" {
			return store.ErrInvalidInput.WithCause(fmt.Errorf("genre id and text are required"))
		}
		rows = append(rows, []any{g.ID, g.Text})
	}
	return s.insertRows(ctx, tableGenres, genreColumns, rows)
}

// FindGenresByText returns the genres whose text is in texts. Missing texts are
// simply absent from the result.
func (s *Store) FindGenresByText(ctx context.Context, texts []string) ([]*domain.Genre, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var genres []*domain.Genre
	for start := 0; start < len(texts); start += insertChunkSize {
		end := min(start+insertChunkSize, len(texts))

		found, err := s.selectGenres(ctx, sq.Eq{"text": texts[start:end]})
		if err != nil {
			return nil, fmt.Errorf("find genres: %w", err)
		}
		genres = append(genres, found...)
	}
	return genres, nil
}

// ListGenres returns every genre ordered by text.
func (s *Store) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	genres, err := s.selectGenres(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

// DeleteAllGenres removes every genre row.
func (s *Store) DeleteAllGenres(ctx context.Context) (int64, error) {
	return s.deleteAll(ctx, tableGenres)
}

func (s *Store) selectGenres(ctx context.Context, where sq.Sqlizer) ([]*domain.Genre, error) {
	q := s.builder().Select(genreColumns...).From(tableGenres).OrderBy("text")
	if where != nil {
		q = q.Where(where)
	}

	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []*domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Text); err != nil {
			return nil, err
		}
		genres = append(genres, &g)
	}
	return genres, rows.Err()
}
