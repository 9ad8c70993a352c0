package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names. The loader and every repository address the same four
// collections; the names are part of the stored data contract.
const (
	Crimes  = "crimes"
	Victims = "victims"
	Weapons = "weapons"
	Upvotes = "upvotes"
)

// Store is the document-store facade. Consumers depend on narrow
// sub-interfaces declared at the point of use (ISP).
type Store interface {
	Pinger
	DocumentStore
	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore provides generic per-collection document operations.
// out arguments of Find/FindOne/Aggregate are pointers to a decode target
// (a struct for FindOne, a slice for Find and Aggregate).
type DocumentStore interface {
	InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, collection string, docs []any) error
	FindOne(ctx context.Context, collection string, filter any, out any) error
	Find(ctx context.Context, collection string, filter any, limit int64, out any) error
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, out any) error
	DeleteAll(ctx context.Context, collection string) error
}
