// Package store defines the persistence interface for seeded entities.
package store

import (
	"context"

	"github.com/listenupapp/listenup-seed/internal/domain"
)

// Store defines the persistence operations the seeder and inspection tools need.
// Every Delete* method removes all rows of its table and returns the row count.
type Store interface {
	// Lifecycle
	Close() error

	// Links
	DeleteAllBookTropes(ctx context.Context) (int64, error)
	DeleteAllBookGenres(ctx context.Context) (int64, error)
	CreateBookGenres(ctx context.Context, links []domain.BookGenre) error
	ListBookGenres(ctx context.Context) ([]domain.BookGenre, error)

	// Genres
	DeleteAllGenres(ctx context.Context) (int64, error)
	CreateGenres(ctx context.Context, genres []*domain.Genre) error
	FindGenresByText(ctx context.Context, texts []string) ([]*domain.Genre, error)
	ListGenres(ctx context.Context) ([]*domain.Genre, error)

	// Books
	DeleteAllBooks(ctx context.Context) (int64, error)
	CreateBook(ctx context.Context, book *domain.Book) error
	ListBooks(ctx context.Context) ([]*domain.Book, error)

	// Tropes
	DeleteAllTropes(ctx context.Context) (int64, error)
	CreateTropes(ctx context.Context, tropes []*domain.Trope) error

	// Inspection
	Stats(ctx context.Context) (*Stats, error)
	GenreUsage(ctx context.Context) ([]domain.GenreUsage, error)
}

// Stats holds row counts for every seeded table.
type Stats struct {
	Books      int `json:"books"`
	Genres     int `json:"genres"`
	BookGenres int `json:"book_genres"`
	Tropes     int `json:"tropes"`
	BookTropes int `json:"book_tropes"`
	// OrphanBookGenres counts links whose book or genre row is missing.
	OrphanBookGenres int `json:"orphan_book_genres"`
}
