package curation

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimedex/crimedex/internal/domain"
)

// CrimeRepository defines the crime-side storage contract for curation.
type CrimeRepository interface {
	Insert(ctx context.Context, c domain.Crime) (primitive.ObjectID, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistsByReportNumber(ctx context.Context, reportNumber int64) (bool, error)
	TopUpvoted(ctx context.Context, day string, limit int) ([]domain.TopUpvotedReport, error)
}

// UpvoteRepository defines the vote-log storage contract.
type UpvoteRepository interface {
	Insert(ctx context.Context, vote domain.Upvote) error
	Exists(ctx context.Context, crimeID primitive.ObjectID, badgeNumber string) (bool, error)
	TopActiveOfficers(ctx context.Context, limit int) ([]domain.OfficerActivity, error)
	AreaCoverage(ctx context.Context, limit int) ([]domain.OfficerAreaCoverage, error)
	MultiBadge(ctx context.Context) ([]domain.MultiBadgeUpvote, error)
	AreasForOfficer(ctx context.Context, officerName string) ([]domain.OfficerArea, error)
}

// Cache is the consumer interface of the optional leaderboard cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
