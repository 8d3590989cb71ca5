package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/listenup-seed/internal/errors"
)

func TestDefault(t *testing.T) {
	books, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, books)

	titles := make(map[string]bool)
	for _, b := range books {
		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.Author)
		assert.NotEmpty(t, b.Genres, "book %q has no genres", b.Title)
		assert.False(t, titles[b.Title], "duplicate title %q", b.Title)
		titles[b.Title] = true
	}
}

func TestParse_SanitizesText(t *testing.T) {
	books, err := Parse(strings.NewReader(`[
		{"title": "  The   Martian ", "author": "Andy\u0000 Weir", "rating": 4.4, "ratingCount": 10, "genres": ["Science Fiction"]}
	]`))
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.Equal(t, "The Martian", books[0].Title)
	assert.Equal(t, "Andy Weir", books[0].Author)
	assert.Equal(t, []string{"Science Fiction"}, books[0].Genres)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"not json", `{`, "decode catalog"},
		{"unknown field", `[{"title": "t", "author": "a", "isbn": "x"}]`, "decode catalog"},
		{"missing author", `[{"title": "t"}]`, "catalog record 0"},
		{"rating out of range", `[{"title": "ok", "author": "a"}, {"title": "t", "author": "a", "rating": 9}]`, "catalog record 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "Circe", "author": "Madeline Miller", "genres": ["Fantasy"]}]`), 0o600))

	books, err := Load(path)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Circe", books[0].Title)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	fromLoad, err := Load("")
	require.NoError(t, err)
	fromDefault, err := Default()
	require.NoError(t, err)

	assert.Equal(t, fromDefault, fromLoad)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, errors.CodeNotFound, codeOf(t, err))
	assert.Equal(t, 4, errors.ExitCode(err))
}

func codeOf(t *testing.T, err error) errors.Code {
	t.Helper()
	var coded *errors.Error
	require.True(t, errors.As(err, &coded))
	return coded.Code
}
