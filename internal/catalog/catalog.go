// Package catalog provides the raw book records used to seed the database.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/errors"
	"github.com/listenupapp/listenup-seed/internal/normalize"
	"github.com/listenupapp/listenup-seed/internal/validation"
)

//go:embed books.json
var defaultBooks []byte

// Default returns the embedded book list.
func Default() ([]domain.RawBook, error) {
	return Parse(bytes.NewReader(defaultBooks))
}

// Load reads a JSON book list from path. An empty path returns the embedded list.
func Load(path string) ([]domain.RawBook, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path) //#nosec G304 -- catalog path is supplied by the developer
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.NotFound("catalog not found").WithDetails(map[string]string{"path": path}).WithCause(err)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInternal, "open catalog %s", path)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a JSON array of books, sanitizes titles and authors, and validates
// every record. The first invalid record aborts parsing with a VALIDATION error.
func Parse(r io.Reader) ([]domain.RawBook, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var books []domain.RawBook
	if err := dec.Decode(&books); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "decode catalog")
	}

	v := validation.New()
	for i := range books {
		books[i].Title = normalize.Text(books[i].Title)
		books[i].Author = normalize.Text(books[i].Author)

		if err := v.Validate(books[i]); err != nil {
			return nil, errors.Wrapf(err, errors.CodeValidation, "catalog record %d (%q)", i, books[i].Title)
		}
	}

	return books, nil
}
