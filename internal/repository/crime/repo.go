// Package crime is the repository for the crimes collection, including the
// analytical aggregation pipelines that run against it.
package crime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimedex/crimedex/internal/db"
	"github.com/crimedex/crimedex/internal/domain"
)

// store is the consumer interface for the crimes collection (ISP).
type store interface {
	InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error)
	FindOne(ctx context.Context, collection string, filter any, out any) error
	Find(ctx context.Context, collection string, filter any, limit int64, out any) error
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, out any) error
	DeleteAll(ctx context.Context, collection string) error
}

// Repo provides access to crime documents.
type Repo struct {
	store store
}

// New creates a crime repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert stores a crime and returns its assigned identifier. A DR_NO
// collision (unique index) maps to domain.ErrDuplicateReport.
func (r *Repo) Insert(ctx context.Context, c domain.Crime) (primitive.ObjectID, error) {
	id, err := r.store.InsertOne(ctx, db.Crimes, c)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return primitive.NilObjectID, domain.ErrDuplicateReport
		}
		return primitive.NilObjectID, fmt.Errorf("insert crime: %w", err)
	}
	return id, nil
}

// Exists reports whether a crime with the given identifier is stored.
func (r *Repo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.store.FindOne(ctx, db.Crimes, bson.D{{Key: "_id", Value: id}}, &doc)
	if err != nil {
		if errors.Is(err, db.ErrNoDocument) {
			return false, nil
		}
		return false, fmt.Errorf("find crime %s: %w", id.Hex(), err)
	}
	return true, nil
}

// ExistsByReportNumber reports whether a crime with the given DR_NO is stored.
func (r *Repo) ExistsByReportNumber(ctx context.Context, reportNumber int64) (bool, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.store.FindOne(ctx, db.Crimes, bson.D{{Key: "DR_NO", Value: reportNumber}}, &doc)
	if err != nil {
		if errors.Is(err, db.ErrNoDocument) {
			return false, nil
		}
		return false, fmt.Errorf("find crime by DR_NO %d: %w", reportNumber, err)
	}
	return true, nil
}

// List returns up to limit crimes in storage order.
func (r *Repo) List(ctx context.Context, limit int64) ([]domain.Crime, error) {
	var crimes []domain.Crime
	if err := r.store.Find(ctx, db.Crimes, bson.D{}, limit, &crimes); err != nil {
		return nil, fmt.Errorf("list crimes: %w", err)
	}
	return crimes, nil
}

// DeleteAll clears the crimes collection.
func (r *Repo) DeleteAll(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx, db.Crimes); err != nil {
		return fmt.Errorf("clear crimes: %w", err)
	}
	return nil
}

// CountByCode counts reports per crime code within a lexical date range,
// most frequent first. start and end are MM/DD/YYYY strings compared as
// text against date_occurred; this matches the stored format day-for-day
// but is not chronologically correct across year boundaries.
func (r *Repo) CountByCode(ctx context.Context, start, end string) ([]domain.CodeCount, error) {
	var counts []domain.CodeCount
	if err := r.store.Aggregate(ctx, db.Crimes, countByCodePipeline(start, end), &counts); err != nil {
		return nil, fmt.Errorf("aggregate counts by code: %w", err)
	}
	return counts, nil
}

// CountByDay returns the number of reports of a crime code per calendar day,
// keyed by MM/DD/YYYY prefix. Stored dates may carry a trailing time
// component; counts for all variants of one day are summed. Days with no
// reports are absent from the map.
func (r *Repo) CountByDay(ctx context.Context, crimeCode int, days []string) (map[string]int, error) {
	var rows []struct {
		Date  string `bson:"_id"`
		Count int    `bson:"report_count"`
	}
	if err := r.store.Aggregate(ctx, db.Crimes, countByDayPipeline(crimeCode, days), &rows); err != nil {
		return nil, fmt.Errorf("aggregate daily counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		day, _, _ := strings.Cut(row.Date, " ")
		counts[day] += row.Count
	}
	return counts, nil
}

// MostCommonByArea returns the top-3 crimes of every area for one day,
// areas sorted alphabetically.
func (r *Repo) MostCommonByArea(ctx context.Context, day string) ([]domain.AreaCrimes, error) {
	var areas []domain.AreaCrimes
	if err := r.store.Aggregate(ctx, db.Crimes, mostCommonByAreaPipeline(day), &areas); err != nil {
		return nil, fmt.Errorf("aggregate most common crimes: %w", err)
	}
	return areas, nil
}

// LeastCommon returns the limit least frequent crime descriptions across
// exactly the two boundary days (not the range between them).
func (r *Repo) LeastCommon(ctx context.Context, start, end string, limit int) ([]domain.CrimeCount, error) {
	var crimes []domain.CrimeCount
	if err := r.store.Aggregate(ctx, db.Crimes, leastCommonPipeline(start, end, limit), &crimes); err != nil {
		return nil, fmt.Errorf("aggregate least common crimes: %w", err)
	}
	return crimes, nil
}

// WeaponsUsed joins crimes of one code to their weapon documents and returns
// per-area weapon usage counts, most used first within each area. Crimes with
// no weapon attached contribute nothing.
func (r *Repo) WeaponsUsed(ctx context.Context, crimeCode int) ([]domain.AreaWeapons, error) {
	var areas []domain.AreaWeapons
	if err := r.store.Aggregate(ctx, db.Crimes, weaponsUsedPipeline(crimeCode), &areas); err != nil {
		return nil, fmt.Errorf("aggregate weapons used: %w", err)
	}
	return areas, nil
}

// TopUpvoted returns the limit most upvoted reports of one day with a fixed
// field projection.
func (r *Repo) TopUpvoted(ctx context.Context, day string, limit int) ([]domain.TopUpvotedReport, error) {
	var reports []domain.TopUpvotedReport
	if err := r.store.Aggregate(ctx, db.Crimes, topUpvotedPipeline(day, limit), &reports); err != nil {
		return nil, fmt.Errorf("aggregate top upvoted: %w", err)
	}
	return reports, nil
}
