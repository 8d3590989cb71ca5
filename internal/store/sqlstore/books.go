package sqlstore

import (
	"context"
	"fmt"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
var bookColumns = []string{"id", "title", "author", "rating", "rating_count", "created_at"}

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var (
		b         domain.Book
		createdAt string
	)

	if err := scanner.Scan(&b.ID, &b.Title, &b.Author, &b.Rating, &b.RatingCount, &createdAt); err != nil {
		return nil, err
	}

	var err error
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for book %s: %w", b.ID, err)
	}
	return &b, nil
}

// CreateBook inserts a single book row.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if book == nil || book.ID == "" {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("book id is required"))
	}

	row := []any{book.ID, book.Title, book.Author, book.Rating, book.RatingCount, formatTime(book.CreatedAt)}
	return s.insertRows(ctx, tableBooks, bookColumns, [][]any{row})
}

// ListBooks returns every book ordered by title then id.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.query(ctx, s.builder().
		Select(bookColumns...).
		From(tableBooks).
		OrderBy("title", "id"))
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// DeleteAllBooks removes every book row.
func (s *Store) DeleteAllBooks(ctx context.Context) (int64, error) {
	return s.deleteAll(ctx, tableBooks)
}
