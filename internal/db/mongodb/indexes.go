package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crimedex/crimedex/internal/db"
)

// EnsureIndexes creates the index set at startup. Creation is idempotent.
//
// The unique index on crimes.DR_NO and the unique compound index on
// upvotes.(crime_id, officer.badge_number) are the authoritative guards for
// report and vote uniqueness; service-level lookups are only a fast path.
//
// crimes.location.coordinates carries no 2dsphere index: rows without a
// usable pair store coordinates as null, which 2dsphere key extraction
// rejects at write time, and no operation issues a geospatial query.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	byCollection := map[string][]mongo.IndexModel{
		db.Crimes: {
			{Keys: bson.D{{Key: "DR_NO", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "crime_code", Value: 1}}},
			{Keys: bson.D{{Key: "date_occurred", Value: -1}}},
		},
		db.Victims: {
			{Keys: bson.D{{Key: "crime_id", Value: 1}}},
		},
		db.Weapons: {
			{Keys: bson.D{{Key: "crime_id", Value: 1}}},
		},
		db.Upvotes: {
			{Keys: bson.D{{Key: "crime_id", Value: 1}}},
			{Keys: bson.D{{Key: "officer.email", Value: 1}}},
			{Keys: bson.D{{Key: "officer.badge_number", Value: 1}}},
			{
				Keys: bson.D{
					{Key: "crime_id", Value: 1},
					{Key: "officer.badge_number", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for collection, models := range byCollection {
		if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return &db.Error{Op: db.OpIndexes, Err: err}
		}
	}
	return nil
}
