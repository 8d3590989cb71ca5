// Package genre normalizes free-text genre labels into the seed vocabulary.
package genre

import (
	"strings"
	"time"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/normalize"
)

const (
	// fictionMarker is the substring stripped from sub-genres like "romance fiction".
	fictionMarker = " fiction"
	// Fiction is the synthetic genre added to any book with a stripped sub-genre.
	Fiction = "fiction"
)

// DefaultExceptions are genres kept verbatim even though they contain " fiction".
// Comparison is exact against the lower-cased genre, so "Literary fiction" never
// matches; see UnreachableExceptions.
//
//nolint:gochecknoglobals // Static lookup table
var DefaultExceptions = []string{
	"science fiction",
	"historical fiction",
	"Literary fiction",
	"women's fiction",
	"realistic fiction",
}

// Result is the output of a normalization pass.
type Result struct {
	Books      []domain.NormalizedBook
	Vocabulary []string
}

// Normalizer maps raw catalog records to normalized books and a genre vocabulary.
type Normalizer struct {
	exceptions map[string]struct{}
}

// NewNormalizer creates a Normalizer with the given exception list.
// A nil list uses DefaultExceptions.
func NewNormalizer(exceptions []string) *Normalizer {
	if exceptions == nil {
		exceptions = DefaultExceptions
	}
	set := make(map[string]struct{}, len(exceptions))
	for _, e := range exceptions {
		set[e] = struct{}{}
	}
	return &Normalizer{exceptions: set}
}

// Normalize normalizes every book and derives the vocabulary as the union of all
// book genres in first-seen order. Every book is stamped with createdAt.
func (n *Normalizer) Normalize(books []domain.RawBook, createdAt time.Time) *Result {
	res := &Result{
		Books: make([]domain.NormalizedBook, 0, len(books)),
	}
	seen := make(map[string]struct{})

	for _, b := range books {
		genres := n.Genres(b.Genres)
		res.Books = append(res.Books, domain.NormalizedBook{
			Title:       b.Title,
			Author:      b.Author,
			Rating:      b.Rating,
			RatingCount: b.RatingCount,
			Genres:      genres,
			CreatedAt:   createdAt,
		})

		for _, g := range genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			res.Vocabulary = append(res.Vocabulary, g)
		}
	}

	return res
}

// Genres normalizes one book's genre list. The returned list has no duplicates
// and ends with Fiction when any genre was fiction-stripped.
func (n *Normalizer) Genres(raw []string) []string {
	out := make([]string, 0, len(raw)+1)
	seen := make(map[string]struct{}, len(raw)+1)
	hasFiction := false

	add := func(g string) {
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}

	for _, r := range raw {
		g, stripped := n.Genre(r)
		if g == "" {
			continue
		}
		if stripped {
			hasFiction = true
		}
		add(g)
	}

	if hasFiction {
		add(Fiction)
	}
	return out
}

// Genre normalizes a single label. It reports whether the " fiction" marker was
// stripped, in which case the caller owes the book a Fiction genre.
func (n *Normalizer) Genre(raw string) (string, bool) {
	g := strings.ToLower(normalize.Text(raw))
	if !strings.Contains(g, fictionMarker) {
		return g, false
	}
	if _, ok := n.exceptions[g]; ok {
		return g, false
	}
	return strings.TrimSpace(strings.Replace(g, fictionMarker, "", 1)), true
}

// UnreachableExceptions returns the exception entries that can never match because
// genres are lower-cased before comparison.
// TODO: decide with the catalog owners whether "Literary fiction" should be folded to
// lower case or dropped; until then it is reported, not fixed.
func UnreachableExceptions(exceptions []string) []string {
	var out []string
	for _, e := range exceptions {
		if e != strings.ToLower(e) {
			out = append(out, e)
		}
	}
	return out
}
