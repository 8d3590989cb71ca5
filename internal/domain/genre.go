package domain

import "time"

// Genre is a vocabulary entry, unique by Text.
type Genre struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// BookGenre links a book to a genre.
type BookGenre struct {
	AssignedAt time.Time `json:"assignedAt"`
	BookID     string    `json:"bookId"`
	GenreID    string    `json:"genreId"`
	AssignedBy string    `json:"assignedBy"`
}

// GenreUsage is the number of books linked to a genre.
type GenreUsage struct {
	Text      string `json:"text"`
	BookCount int    `json:"bookCount"`
}
