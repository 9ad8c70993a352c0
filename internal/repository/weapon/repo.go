// Package weapon is the repository for the weapons collection. Weapons are
// written by the loader and read through the crimes-side $lookup join.
package weapon

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

// Repo provides access to weapon documents.
type Repo struct {
	store store
}

// New creates a weapon repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// InsertMany bulk-inserts weapons.
func (r *Repo) InsertMany(ctx context.Context, weapons []domain.Weapon) error {
	docs := make([]any, len(weapons))
	for i, w := range weapons {
		docs[i] = w
	}
	if err := r.store.InsertMany(ctx, db.Weapons, docs); err != nil {
		return fmt.Errorf("insert weapons: %w", err)
	}
	return nil
}

// DeleteAll clears the weapons collection.
func (r *Repo) DeleteAll(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx, db.Weapons); err != nil {
		return fmt.Errorf("clear weapons: %w", err)
	}
	return nil
}
