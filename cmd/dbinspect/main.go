// Package main prints row counts, orphaned links and genre usage for a seeded database.
//
// Usage:
//
//	go run ./cmd/dbinspect
//	DB_DRIVER=postgres DATABASE_URL=postgres://localhost/listenup_dev go run ./cmd/dbinspect
//	go run ./cmd/dbinspect -dsn ./listenup-dev.db -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/store"
	"github.com/listenupapp/listenup-seed/internal/store/sqlstore"
)

var (
	driverFlag = flag.String("driver", "", "Database driver (default: $DB_DRIVER or sqlite)")
	dsnFlag    = flag.String("dsn", "", "Database DSN (default: $DATABASE_URL or ./listenup-dev.db)")
	jsonFlag   = flag.Bool("json", false, "Print the report as JSON")
	booksFlag  = flag.Int("books", 5, "Number of books to list")
)

type report struct {
	Stats      *store.Stats        `json:"stats"`
	GenreUsage []domain.GenreUsage `json:"genreUsage"`
	Books      []*domain.Book      `json:"books"`
}

func main() {
	flag.Parse()

	driver := firstNonEmpty(*driverFlag, os.Getenv("DB_DRIVER"), sqlstore.DriverSQLite)
	dsn := firstNonEmpty(*dsnFlag, os.Getenv("DATABASE_URL"), "listenup-dev.db")

	ctx := context.Background()
	s, err := sqlstore.Open(ctx, sqlstore.Config{Driver: driver, DSN: dsn}, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer s.Close()

	r, err := inspect(ctx, s, *booksFlag)
	if err != nil {
		log.Fatalf("Failed to inspect database: %v", err)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
		return
	}

	printReport(r)
}

func inspect(ctx context.Context, s store.Store, bookLimit int) (*report, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	usage, err := s.GenreUsage(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) > bookLimit {
		books = books[:max(bookLimit, 0)]
	}
	return &report{Stats: stats, GenreUsage: usage, Books: books}, nil
}

func printReport(r *report) {
	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	fmt.Printf("Books:        %d\n", r.Stats.Books)
	fmt.Printf("Genres:       %d\n", r.Stats.Genres)
	fmt.Printf("Book genres:  %d\n", r.Stats.BookGenres)
	fmt.Printf("Tropes:       %d\n", r.Stats.Tropes)
	fmt.Printf("Book tropes:  %d\n", r.Stats.BookTropes)
	if r.Stats.OrphanBookGenres > 0 {
		fmt.Printf("⚠ Orphaned book genres: %d\n", r.Stats.OrphanBookGenres)
	}

	fmt.Println()
	fmt.Println("=== Genre Usage ===")
	for _, u := range r.GenreUsage {
		fmt.Printf("  %4d  %s\n", u.BookCount, u.Text)
	}

	if len(r.Books) > 0 {
		fmt.Println()
		fmt.Println("=== Books ===")
		for _, b := range r.Books {
			fmt.Printf("  %s  %s by %s (%.2f, %d ratings)\n", b.ID, b.Title, b.Author, b.Rating, b.RatingCount)
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
