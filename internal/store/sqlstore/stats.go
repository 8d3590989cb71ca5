package sqlstore

import (
	"context"
	"fmt"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/store"
)

// Stats counts the rows of every seeded table and the book-genre links whose
// book or genre is missing.
func (s *Store) Stats(ctx context.Context) (*store.Stats, error) {
	var stats store.Stats

	counts := []struct {
		table string
		dst   *int
	}{
		{tableBooks, &stats.Books},
		{tableGenres, &stats.Genres},
		{tableBookGenres, &stats.BookGenres},
		{tableTropes, &stats.Tropes},
		{tableBookTropes, &stats.BookTropes},
	}
	for _, c := range counts {
		n, err := s.count(ctx, s.builder().Select("COUNT(*)").From(c.table))
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
		*c.dst = n
	}

	orphans, err := s.count(ctx, s.builder().
		Select("COUNT(*)").
		From(tableBookGenres+" bg").
		LeftJoin(tableBooks+" b ON b.id = bg.book_id").
		LeftJoin(tableGenres+" g ON g.id = bg.genre_id").
		Where("b.id IS NULL OR g.id IS NULL"))
	if err != nil {
		return nil, fmt.Errorf("count orphan book genres: %w", err)
	}
	stats.OrphanBookGenres = orphans

	return &stats, nil
}

// GenreUsage returns every genre with the number of books linked to it, most
// used first. Genres with no books report zero.
func (s *Store) GenreUsage(ctx context.Context) ([]domain.GenreUsage, error) {
	rows, err := s.query(ctx, s.builder().
		Select("g.text", "COUNT(bg.book_id) AS book_count").
		From(tableGenres+" g").
		LeftJoin(tableBookGenres+" bg ON bg.genre_id = g.id").
		GroupBy("g.text").
		OrderBy("book_count DESC", "g.text"))
	if err != nil {
		return nil, fmt.Errorf("genre usage: %w", err)
	}
	defer rows.Close()

	var usage []domain.GenreUsage
	for rows.Next() {
		var u domain.GenreUsage
		if err := rows.Scan(&u.Text, &u.BookCount); err != nil {
			return nil, fmt.Errorf("scan genre usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
