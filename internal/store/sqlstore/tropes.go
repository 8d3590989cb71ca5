package sqlstore

import (
	"context"
	"fmt"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/store"
)

// CreateTropes bulk-inserts tropes.
func (s *Store) CreateTropes(ctx context.Context, tropes []*domain.Trope) error {
	if len(tropes) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(tropes))
	for _, t := range tropes {
		if t == nil || t.ID == "" {
			return store.ErrInvalidInput.WithCause(fmt.Errorf("trope id is required"))
		}
		rows = append(rows, []any{t.ID, t.Text})
	}
	return s.insertRows(ctx, tableTropes, []string{"id", "text"}, rows)
}

// DeleteAllTropes removes every trope row.
func (s *Store) DeleteAllTropes(ctx context.Context) (int64, error) {
	return s.deleteAll(ctx, tableTropes)
}
