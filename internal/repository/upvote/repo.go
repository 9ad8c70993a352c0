// Package upvote is the repository for the upvotes collection and the
// officer-engagement aggregations derived from it.
package upvote

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimedex/crimedex/internal/db"
	"github.com/crimedex/crimedex/internal/domain"
)

// store is the consumer interface for the upvotes collection (ISP).
type store interface {
	InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error)
	FindOne(ctx context.Context, collection string, filter any, out any) error
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, out any) error
	DeleteAll(ctx context.Context, collection string) error
}

// Repo provides access to upvote documents.
type Repo struct {
	store store
}

// New creates an upvote repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert stores an upvote. The unique (crime_id, officer.badge_number) index
// is the authoritative duplicate guard: a violation maps to
// domain.ErrDuplicateVote regardless of any earlier existence check.
func (r *Repo) Insert(ctx context.Context, vote domain.Upvote) error {
	if _, err := r.store.InsertOne(ctx, db.Upvotes, vote); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return domain.ErrDuplicateVote
		}
		return fmt.Errorf("insert upvote: %w", err)
	}
	return nil
}

// Exists reports whether the badge has already voted on the crime. This is
// the fast-path check only; Insert remains the source of truth under
// concurrency.
func (r *Repo) Exists(ctx context.Context, crimeID primitive.ObjectID, badgeNumber string) (bool, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	filter := bson.D{
		{Key: "crime_id", Value: crimeID},
		{Key: "officer.badge_number", Value: badgeNumber},
	}
	err := r.store.FindOne(ctx, db.Upvotes, filter, &doc)
	if err != nil {
		if errors.Is(err, db.ErrNoDocument) {
			return false, nil
		}
		return false, fmt.Errorf("find upvote: %w", err)
	}
	return true, nil
}

// DeleteAll clears the upvotes collection.
func (r *Repo) DeleteAll(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx, db.Upvotes); err != nil {
		return fmt.Errorf("clear upvotes: %w", err)
	}
	return nil
}

// TopActiveOfficers ranks badges by vote count, most active first, taking the
// first-seen name and email per badge as representative.
func (r *Repo) TopActiveOfficers(ctx context.Context, limit int) ([]domain.OfficerActivity, error) {
	var officers []domain.OfficerActivity
	if err := r.store.Aggregate(ctx, db.Upvotes, topActivePipeline(limit), &officers); err != nil {
		return nil, fmt.Errorf("aggregate top active officers: %w", err)
	}
	return officers, nil
}

// AreaCoverage ranks officers by the number of distinct area names their
// upvoted crimes touch.
func (r *Repo) AreaCoverage(ctx context.Context, limit int) ([]domain.OfficerAreaCoverage, error) {
	var officers []domain.OfficerAreaCoverage
	if err := r.store.Aggregate(ctx, db.Upvotes, areaCoveragePipeline(limit), &officers); err != nil {
		return nil, fmt.Errorf("aggregate officer area coverage: %w", err)
	}
	return officers, nil
}

// MultiBadge finds (crime, email) pairs voted under more than one badge
// number, joined back to the crime details, earliest occurrence first.
func (r *Repo) MultiBadge(ctx context.Context) ([]domain.MultiBadgeUpvote, error) {
	var anomalies []domain.MultiBadgeUpvote
	if err := r.store.Aggregate(ctx, db.Upvotes, multiBadgePipeline(), &anomalies); err != nil {
		return nil, fmt.Errorf("aggregate multi-badge upvotes: %w", err)
	}
	return anomalies, nil
}

// AreasForOfficer returns the distinct area names upvoted by an officer,
// matched by exact name, sorted alphabetically.
func (r *Repo) AreasForOfficer(ctx context.Context, officerName string) ([]domain.OfficerArea, error) {
	var areas []domain.OfficerArea
	if err := r.store.Aggregate(ctx, db.Upvotes, areasForOfficerPipeline(officerName), &areas); err != nil {
		return nil, fmt.Errorf("aggregate officer areas: %w", err)
	}
	return areas, nil
}
