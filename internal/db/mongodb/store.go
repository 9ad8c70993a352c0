// Package mongodb implements db.Store on the official MongoDB driver.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/crimedex/crimedex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a MongoDB store.
type Config struct {
	URI      string
	Database string
}

// Store implements db.Store over a single process-scoped client. Opened once
// at startup, closed on shutdown; never accessed as a global.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects a MongoDB client. Connectivity is verified separately via
// WaitForReady; Connect itself does not block on the server.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// InsertOne inserts a document and returns its assigned identifier.
// A unique-index violation surfaces as db.ErrDuplicateKey; that signal is the
// authoritative guard for DR_NO and vote uniqueness under concurrency.
func (s *Store) InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("%s: %w", collection, db.ErrDuplicateKey)
		}
		return primitive.NilObjectID, &db.Error{Op: db.OpInsertOne, Err: err}
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// InsertMany bulk-inserts documents. No-op on an empty batch.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	if _, err := s.db.Collection(collection).InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", collection, db.ErrDuplicateKey)
		}
		return &db.Error{Op: db.OpInsertMany, Err: err}
	}
	return nil
}

// FindOne decodes the first document matching filter into out.
func (s *Store) FindOne(ctx context.Context, collection string, filter any, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return db.ErrNoDocument
		}
		return &db.Error{Op: db.OpFindOne, Err: err}
	}
	return nil
}

// Find decodes all documents matching filter into out, a pointer to a slice.
// limit <= 0 means unbounded.
func (s *Store) Find(ctx context.Context, collection string, filter any, limit int64, out any) error {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return &db.Error{Op: db.OpFind, Err: err}
	}
	if err := cur.All(ctx, out); err != nil {
		return &db.Error{Op: db.OpFind, Err: err}
	}
	return nil
}

// Aggregate runs a pipeline and decodes every result into out, a pointer to
// a slice.
func (s *Store) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, out any) error {
	cur, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return &db.Error{Op: db.OpAggregate, Err: err}
	}
	if err := cur.All(ctx, out); err != nil {
		return &db.Error{Op: db.OpAggregate, Err: err}
	}
	return nil
}

// DeleteAll removes every document of a collection.
func (s *Store) DeleteAll(ctx context.Context, collection string) error {
	if _, err := s.db.Collection(collection).DeleteMany(ctx, bson.D{}); err != nil {
		return &db.Error{Op: db.OpDeleteMany, Err: err}
	}
	return nil
}
