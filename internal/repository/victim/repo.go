// Package victim is the repository for the victims collection. Victims are
// written only by the loader; no read path exists today.
package victim

import (
	"context"
	"fmt"

	"github.com/crimedex/crimedex/internal/db"
	"github.com/crimedex/crimedex/internal/domain"
)

type store interface {
	InsertMany(ctx context.Context, collection string, docs []any) error
	DeleteAll(ctx context.Context, collection string) error
}

// Repo provides access to victim documents.
type Repo struct {
	store store
}

// New creates a victim repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// InsertMany bulk-inserts victims.
func (r *Repo) InsertMany(ctx context.Context, victims []domain.Victim) error {
	docs := make([]any, len(victims))
	for i, v := range victims {
		docs[i] = v
	}
	if err := r.store.InsertMany(ctx, db.Victims, docs); err != nil {
		return fmt.Errorf("insert victims: %w", err)
	}
	return nil
}

// DeleteAll clears the victims collection.
func (r *Repo) DeleteAll(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx, db.Victims); err != nil {
		return fmt.Errorf("clear victims: %w", err)
	}
	return nil
}
