// Package domain contains the entities written by the seed tooling.
package domain

import "time"

// RawBook is a catalog record as provided by the source list.
type RawBook struct {
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	RatingCount int      `json:"ratingCount" validate:"gte=0"`
	Genres      []string `json:"genres" validate:"dive,required"`
}

// NormalizedBook is a RawBook after genre normalization, stamped with its creation time.
type NormalizedBook struct {
	CreatedAt   time.Time `json:"createdAt"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genres      []string  `json:"genres"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"ratingCount"`
}

// Book is a persisted book row.
type Book struct {
	CreatedAt   time.Time `json:"createdAt"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"ratingCount"`
}

// NewBook builds a Book row for a normalized record.
func NewBook(bookID string, nb NormalizedBook) *Book {
	return &Book{
		ID:          bookID,
		Title:       nb.Title,
		Author:      nb.Author,
		Rating:      nb.Rating,
		RatingCount: nb.RatingCount,
		CreatedAt:   nb.CreatedAt,
	}
}
