package seeder

import (
	"log/slog"
	"time"
)

// DeleteCounts holds the rows removed by the reset stage.
type DeleteCounts struct {
	BookTropes int64 `json:"bookTropes"`
	BookGenres int64 `json:"bookGenres"`
	Genres     int64 `json:"genres"`
	Books      int64 `json:"books"`
	Tropes     int64 `json:"tropes"`
}

// LogValue implements slog.LogValuer.
func (d DeleteCounts) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("book_tropes", d.BookTropes),
		slog.Int64("book_genres", d.BookGenres),
		slog.Int64("genres", d.Genres),
		slog.Int64("books", d.Books),
		slog.Int64("tropes", d.Tropes),
	)
}

// UnmatchedGenre is a book genre that had no genre row at link time.
type UnmatchedGenre struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
}

// Result summarizes a seed run. It is populated up to the failed stage when the
// run returns an error.
type Result struct {
	RunID           string           `json:"runId"`
	Deleted         DeleteCounts     `json:"deleted"`
	GenresCreated   int              `json:"genresCreated"`
	TropesCreated   int              `json:"tropesCreated"`
	BooksCreated    int              `json:"booksCreated"`
	LinksCreated    int              `json:"linksCreated"`
	UnmatchedGenres []UnmatchedGenre `json:"unmatchedGenres,omitempty"`
	Duration        time.Duration    `json:"duration"`
}

// LogValue implements slog.LogValuer.
func (r *Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("genres", r.GenresCreated),
		slog.Int("tropes", r.TropesCreated),
		slog.Int("books", r.BooksCreated),
		slog.Int("links", r.LinksCreated),
		slog.Int("unmatched", len(r.UnmatchedGenres)),
		slog.Duration("duration", r.Duration),
	)
}
