// Package curation implements officer upvoting over crime reports: vote
// recording, engagement leaderboards, anomaly detection, and report inserts.
package curation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/crimedex/crimedex/internal/domain"
)

const leaderboardLimit = 50

// UpvoteRequest is the validated input of Upvote.
type UpvoteRequest struct {
	CrimeID      string `json:"crime_id" validate:"required"`
	OfficerName  string `json:"officer_name" validate:"required"`
	OfficerBadge string `json:"officer_badge" validate:"required"`
	OfficerEmail string `json:"officer_email" validate:"required,email"`
}

// Service handles upvote curation. Stateless per request; the upvote
// uniqueness guarantee lives in the storage-level unique index, not here.
type Service struct {
	crimes   CrimeRepository
	upvotes  UpvoteRepository
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time

	cache      Cache
	cacheTTL   time.Duration
	cacheTotal *prometheus.CounterVec
}

// New creates a curation service.
func New(crimes CrimeRepository, upvotes UpvoteRepository, logger *zap.Logger) *Service {
	return &Service{
		crimes:   crimes,
		upvotes:  upvotes,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		now:      time.Now,
	}
}

// WithCache enables the leaderboard result cache. cacheTotal is a counter vec
// with label "result" ("hit"/"miss"), passed explicitly.
func (s *Service) WithCache(c Cache, ttl time.Duration, cacheTotal *prometheus.CounterVec) *Service {
	s.cache = c
	s.cacheTTL = ttl
	s.cacheTotal = cacheTotal
	return s
}

// Upvote records one officer vote on one crime. Validation short-circuits in
// order: payload syntax, crime reference format, crime existence, duplicate
// vote. The duplicate lookup is only a fast path; a concurrent double vote is
// caught by the unique index and surfaces as domain.ErrDuplicateVote from
// Insert.
func (s *Service) Upvote(ctx context.Context, req UpvoteRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	crimeID, err := primitive.ObjectIDFromHex(req.CrimeID)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, req.CrimeID)
	}

	exists, err := s.crimes.Exists(ctx, crimeID)
	if err != nil {
		return fmt.Errorf("check crime exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	voted, err := s.upvotes.Exists(ctx, crimeID, req.OfficerBadge)
	if err != nil {
		return fmt.Errorf("check prior vote: %w", err)
	}
	if voted {
		return domain.ErrDuplicateVote
	}

	vote := domain.Upvote{
		CrimeID: crimeID,
		Officer: domain.Officer{
			BadgeNumber: req.OfficerBadge,
			Name:        req.OfficerName,
			Email:       req.OfficerEmail,
		},
		VoteDate: s.now().UTC().Format(domain.VoteDateLayout),
	}
	if err := s.upvotes.Insert(ctx, vote); err != nil {
		return fmt.Errorf("record upvote: %w", err)
	}
	return nil
}

// InsertReport stores a fully specified crime report and returns its assigned
// identifier as a hex string. A DR_NO collision fails with
// domain.ErrDuplicateReport; the pre-check gives the friendly fast path, the
// unique index gives the guarantee.
func (s *Service) InsertReport(ctx context.Context, report domain.Crime) (string, error) {
	if err := s.validate.Struct(report); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	exists, err := s.crimes.ExistsByReportNumber(ctx, report.ReportNumber)
	if err != nil {
		return "", fmt.Errorf("check DR_NO: %w", err)
	}
	if exists {
		return "", domain.ErrDuplicateReport
	}

	report.ID = primitive.NilObjectID // store-assigned
	id, err := s.crimes.Insert(ctx, report)
	if err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}
	return id.Hex(), nil
}

// TopUpvoted returns the 50 most upvoted reports whose occurrence date begins
// with the given MM/DD/YYYY day.
func (s *Service) TopUpvoted(ctx context.Context, date string) ([]domain.TopUpvotedReport, error) {
	day, err := domain.ParseUSDate(date)
	if err != nil {
		return nil, err
	}

	reports, err := s.crimes.TopUpvoted(ctx, domain.FormatUSDate(day), leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("top upvoted: %w", err)
	}
	return reports, nil
}

// TopActiveOfficers returns the 50 officers with the most votes.
func (s *Service) TopActiveOfficers(ctx context.Context) ([]domain.OfficerActivity, error) {
	return cached(ctx, s, "top_active_officers", func(ctx context.Context) ([]domain.OfficerActivity, error) {
		return s.upvotes.TopActiveOfficers(ctx, leaderboardLimit)
	})
}

// AreaCoverage returns the 50 officers whose votes touch the most distinct
// areas.
func (s *Service) AreaCoverage(ctx context.Context) ([]domain.OfficerAreaCoverage, error) {
	return cached(ctx, s, "officer_area_coverage", func(ctx context.Context) ([]domain.OfficerAreaCoverage, error) {
		return s.upvotes.AreaCoverage(ctx, leaderboardLimit)
	})
}

// MultiBadge returns (crime, email) pairs that voted under more than one
// badge number, earliest occurrence first.
func (s *Service) MultiBadge(ctx context.Context) ([]domain.MultiBadgeUpvote, error) {
	return cached(ctx, s, "multi_badge_upvotes", func(ctx context.Context) ([]domain.MultiBadgeUpvote, error) {
		return s.upvotes.MultiBadge(ctx)
	})
}

// UpvotedAreas returns the distinct area names the named officer has upvoted,
// sorted alphabetically. The name match is exact.
func (s *Service) UpvotedAreas(ctx context.Context, officerName string) ([]domain.OfficerArea, error) {
	areas, err := s.upvotes.AreasForOfficer(ctx, officerName)
	if err != nil {
		return nil, fmt.Errorf("upvoted areas: %w", err)
	}
	return areas, nil
}
