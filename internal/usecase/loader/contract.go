package loader

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimedex/crimedex/internal/domain"
)

// CrimeWriter is the crime-side storage contract of the loader.
type CrimeWriter interface {
	Insert(ctx context.Context, c domain.Crime) (primitive.ObjectID, error)
	DeleteAll(ctx context.Context) error
}

// VictimWriter is the victim-side storage contract of the loader.
type VictimWriter interface {
	InsertMany(ctx context.Context, victims []domain.Victim) error
	DeleteAll(ctx context.Context) error
}

// WeaponWriter is the weapon-side storage contract of the loader.
type WeaponWriter interface {
	InsertMany(ctx context.Context, weapons []domain.Weapon) error
	DeleteAll(ctx context.Context) error
}

// UpvoteCleaner clears the vote log during the destructive refresh.
type UpvoteCleaner interface {
	DeleteAll(ctx context.Context) error
}
