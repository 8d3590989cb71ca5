// Package seeder resets the development database and reloads it from a normalized
// book catalog.
package seeder

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/errors"
	"github.com/listenupapp/listenup-seed/internal/genre"
	"github.com/listenupapp/listenup-seed/internal/id"
	"github.com/listenupapp/listenup-seed/internal/store"
	"github.com/listenupapp/listenup-seed/internal/trope"
)

// Defaults applied to zero-valued Options.
const (
	DefaultAssignedBy  = "seed"
	DefaultConcurrency = 4
)

// Options tunes a seed run.
type Options struct {
	// AssignedBy stamps every book-genre link.
	AssignedBy string
	// Concurrency bounds the per-book units in flight.
	Concurrency int
	// RateLimit caps per-book units started per second. Zero means unlimited.
	RateLimit float64
	// Tropes is the number of generated tropes. Zero leaves the tropes table untouched.
	Tropes int
}

// TropeSource produces tropes for the tropes stage.
type TropeSource interface {
	CreateN(n int) ([]*domain.Trope, error)
}

// Seeder sequences the delete-then-insert steps of a seed run against a store.
type Seeder struct {
	store      store.Store
	normalizer *genre.Normalizer
	logger     *slog.Logger
	opts       Options

	ids    id.Generator
	tropes TropeSource
	now    func() time.Time
}

// Option customizes a Seeder.
type Option func(*Seeder)

// WithIDGenerator replaces the nanoid generator used for book and genre ids.
func WithIDGenerator(g id.Generator) Option {
	return func(s *Seeder) { s.ids = g }
}

// WithTropeSource replaces the random trope generator.
func WithTropeSource(src TropeSource) Option {
	return func(s *Seeder) { s.tropes = src }
}

// WithClock replaces time.Now for creation and assignment timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// New creates a Seeder. A nil normalizer uses the default exception list.
func New(st store.Store, normalizer *genre.Normalizer, logger *slog.Logger, opts Options, options ...Option) *Seeder {
	if normalizer == nil {
		normalizer = genre.NewNormalizer(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.AssignedBy == "" {
		opts.AssignedBy = DefaultAssignedBy
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	s := &Seeder{
		store:      st,
		normalizer: normalizer,
		logger:     logger,
		opts:       opts,
		ids:        id.NanoID{},
		now:        time.Now,
	}
	for _, o := range options {
		o(s)
	}
	if s.tropes == nil {
		s.tropes = trope.NewGenerator(uint64(s.now().UnixNano()), s.ids)
	}
	return s
}

// Run normalizes books and loads the result. See Load.
func (s *Seeder) Run(ctx context.Context, books []domain.RawBook) (*Result, error) {
	return s.Load(ctx, s.normalizer.Normalize(books, s.now()))
}

// Reset deletes links before the entities they reference. Tropes are deleted only
// when trope seeding is enabled.
func (s *Seeder) Reset(ctx context.Context) (DeleteCounts, error) {
	var counts DeleteCounts

	// Store delete errors already name their table.
	steps := []struct {
		fn   func(context.Context) (int64, error)
		dst  *int64
		skip bool
	}{
		{s.store.DeleteAllBookTropes, &counts.BookTropes, false},
		{s.store.DeleteAllBookGenres, &counts.BookGenres, false},
		{s.store.DeleteAllGenres, &counts.Genres, false},
		{s.store.DeleteAllBooks, &counts.Books, false},
		{s.store.DeleteAllTropes, &counts.Tropes, s.opts.Tropes <= 0},
	}

	for _, step := range steps {
		if step.skip {
			continue
		}
		n, err := step.fn(ctx)
		if err != nil {
			return counts, errors.SeedFailed(errors.StageReset, err)
		}
		*step.dst = n
	}
	return counts, nil
}

// Load resets the store and repopulates it from res. Nothing is rolled back on
// failure; the returned Result describes what was written up to that point and the
// error names the failed stage.
func (s *Seeder) Load(ctx context.Context, res *genre.Result) (*Result, error) {
	start := s.now()
	result := &Result{RunID: uuid.NewString()}
	logger := s.logger.With("run_id", result.RunID)

	finish := func(err error) (*Result, error) {
		result.Duration = s.now().Sub(start)
		if err != nil {
			logger.Error("seed failed", "error", err, "result", result)
			return result, err
		}
		logger.Info("seed complete", "result", result)
		return result, nil
	}

	logger.Info("seed started",
		"books", len(res.Books),
		"genres", len(res.Vocabulary),
		"tropes", s.opts.Tropes,
		"concurrency", s.opts.Concurrency,
	)

	deleted, err := s.Reset(ctx)
	result.Deleted = deleted
	if err != nil {
		return finish(err)
	}
	logger.Debug("reset complete", "deleted", deleted)

	n, err := s.createGenres(ctx, res.Vocabulary)
	result.GenresCreated = n
	if err != nil {
		return finish(err)
	}

	if s.opts.Tropes > 0 {
		n, err := s.createTropes(ctx)
		result.TropesCreated = n
		if err != nil {
			return finish(err)
		}
	}

	return finish(s.loadBooks(ctx, logger, res.Books, result))
}

func (s *Seeder) createGenres(ctx context.Context, vocabulary []string) (int, error) {
	genres := make([]*domain.Genre, 0, len(vocabulary))
	for _, text := range vocabulary {
		genreID, err := s.ids.Generate(id.PrefixGenre)
		if err != nil {
			return 0, errors.SeedFailed(errors.StageGenres, err)
		}
		genres = append(genres, &domain.Genre{ID: genreID, Text: text})
	}

	if err := s.store.CreateGenres(ctx, genres); err != nil {
		return 0, errors.SeedFailed(errors.StageGenres, err)
	}
	return len(genres), nil
}

func (s *Seeder) createTropes(ctx context.Context) (int, error) {
	tropes, err := s.tropes.CreateN(s.opts.Tropes)
	if err != nil {
		return 0, errors.SeedFailed(errors.StageTropes, err)
	}
	if err := s.store.CreateTropes(ctx, tropes); err != nil {
		return 0, errors.SeedFailed(errors.StageTropes, err)
	}
	return len(tropes), nil
}

// loadBooks runs one unit per book with bounded concurrency and waits for all of
// them. The first failure cancels the units not yet finished.
func (s *Seeder) loadBooks(ctx context.Context, logger *slog.Logger, books []domain.NormalizedBook, result *Result) error {
	var limiter *rate.Limiter
	if s.opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.opts.RateLimit), 1)
	}

	var (
		booksCreated atomic.Int64
		linksCreated atomic.Int64
		mu           sync.Mutex
		unmatched    []UnmatchedGenre
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for _, book := range books {
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return errors.SeedFailed(errors.StageBooks, fmt.Errorf("book %q: %w", book.Title, err))
				}
			}

			created, links, missing, err := s.loadBook(gctx, book)
			if created {
				booksCreated.Add(1)
			}
			if err != nil {
				return errors.SeedFailed(errors.StageBooks, fmt.Errorf("book %q: %w", book.Title, err))
			}

			linksCreated.Add(int64(links))
			if len(missing) > 0 {
				logger.Warn("genres not found for book", "title", book.Title, "genres", missing)
				mu.Lock()
				for _, m := range missing {
					unmatched = append(unmatched, UnmatchedGenre{Title: book.Title, Genre: m})
				}
				mu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()

	slices.SortFunc(unmatched, func(a, b UnmatchedGenre) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.Genre, b.Genre))
	})
	result.BooksCreated = int(booksCreated.Load())
	result.LinksCreated = int(linksCreated.Load())
	result.UnmatchedGenres = unmatched
	return err
}

// loadBook inserts one book and its genre links. It reports whether the book row
// was written, the number of links written and the book genres that had no genre
// row. created can be true alongside a non-nil error when linking fails.
func (s *Seeder) loadBook(ctx context.Context, book domain.NormalizedBook) (created bool, links int, missing []string, err error) {
	genres, err := s.store.FindGenresByText(ctx, book.Genres)
	if err != nil {
		return false, 0, nil, fmt.Errorf("find genres: %w", err)
	}

	found := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		found[g.Text] = struct{}{}
	}
	for _, text := range book.Genres {
		if _, ok := found[text]; !ok {
			missing = append(missing, text)
		}
	}

	bookID, err := s.ids.Generate(id.PrefixBook)
	if err != nil {
		return false, 0, nil, err
	}
	if err := s.store.CreateBook(ctx, domain.NewBook(bookID, book)); err != nil {
		return false, 0, nil, fmt.Errorf("create book: %w", err)
	}

	assignedAt := s.now()
	rows := make([]domain.BookGenre, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, domain.BookGenre{
			BookID:     bookID,
			GenreID:    g.ID,
			AssignedBy: s.opts.AssignedBy,
			AssignedAt: assignedAt,
		})
	}
	if err := s.store.CreateBookGenres(ctx, rows); err != nil {
		return true, 0, missing, fmt.Errorf("create book genres: %w", err)
	}
	return true, len(rows), missing, nil
}
