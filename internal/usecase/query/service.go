// Package query implements the analytical read operations over crime reports.
package query

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/crimedex/crimedex/internal/domain"
)

const (
	// randomSampleLimit bounds the candidate set of RandomCrime. The pick is
	// uniform over the first randomSampleLimit crimes in storage order, not
	// over the full dataset; a known, documented bias.
	randomSampleLimit = 1000
	leastCommonLimit  = 2
)

// Service answers the analytical crime queries. Stateless per request.
type Service struct {
	crimes CrimeRepository
}

// New creates a query service.
func New(crimes CrimeRepository) *Service {
	return &Service{crimes: crimes}
}

// RandomCrime returns one crime chosen uniformly from the first 1000 stored
// reports. Returns domain.ErrNotFound when the store is empty.
func (s *Service) RandomCrime(ctx context.Context) (domain.Crime, error) {
	crimes, err := s.crimes.List(ctx, randomSampleLimit)
	if err != nil {
		return domain.Crime{}, fmt.Errorf("list crimes: %w", err)
	}
	if len(crimes) == 0 {
		return domain.Crime{}, domain.ErrNotFound
	}
	return crimes[rand.Intn(len(crimes))], nil
}

// CountByCode counts reports per crime code between two inclusive MM/DD/YYYY
// dates, most frequent first. The range is a lexical string comparison over
// the stored date text (see CrimeRepository.CountByCode).
func (s *Service) CountByCode(ctx context.Context, startDate, endDate string) ([]domain.CodeCount, error) {
	start, err := domain.ParseUSDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseUSDate(endDate)
	if err != nil {
		return nil, err
	}

	counts, err := s.crimes.CountByCode(ctx, domain.FormatUSDate(start), domain.FormatUSDate(end))
	if err != nil {
		return nil, fmt.Errorf("count by code: %w", err)
	}
	return counts, nil
}

// DailyCounts returns one entry per calendar day between startDate and
// endDate inclusive with the number of reports of crimeCode on that day,
// zero-filled and in chronological order.
func (s *Service) DailyCounts(ctx context.Context, crimeCode int, startDate, endDate string) ([]domain.DailyCount, error) {
	start, err := domain.ParseUSDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseUSDate(endDate)
	if err != nil {
		return nil, err
	}

	days := domain.EnumerateDays(start, end)
	if len(days) == 0 {
		return []domain.DailyCount{}, nil
	}

	counts, err := s.crimes.CountByDay(ctx, crimeCode, days)
	if err != nil {
		return nil, fmt.Errorf("count by day: %w", err)
	}

	series := make([]domain.DailyCount, len(days))
	for i, day := range days {
		series[i] = domain.DailyCount{Date: day, ReportCount: counts[day]}
	}
	return series, nil
}

// MostCommonByArea returns the top-3 crimes of every area for one day,
// areas sorted alphabetically.
func (s *Service) MostCommonByArea(ctx context.Context, date string) ([]domain.AreaCrimes, error) {
	day, err := domain.ParseUSDate(date)
	if err != nil {
		return nil, err
	}

	areas, err := s.crimes.MostCommonByArea(ctx, domain.FormatUSDate(day))
	if err != nil {
		return nil, fmt.Errorf("most common by area: %w", err)
	}
	return areas, nil
}

// LeastCommon returns the 2 least frequent crime descriptions across exactly
// the two boundary days, ascending by count. The narrow two-day filter (not
// the full range) is intentional.
func (s *Service) LeastCommon(ctx context.Context, startDate, endDate string) ([]domain.CrimeCount, error) {
	start, err := domain.ParseUSDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseUSDate(endDate)
	if err != nil {
		return nil, err
	}

	crimes, err := s.crimes.LeastCommon(ctx, domain.FormatUSDate(start), domain.FormatUSDate(end), leastCommonLimit)
	if err != nil {
		return nil, fmt.Errorf("least common: %w", err)
	}
	return crimes, nil
}

// WeaponsUsed returns per-area weapon usage for one crime code. An empty
// result means no weapon document is attached to any crime of that code.
func (s *Service) WeaponsUsed(ctx context.Context, crimeCode int) ([]domain.AreaWeapons, error) {
	areas, err := s.crimes.WeaponsUsed(ctx, crimeCode)
	if err != nil {
		return nil, fmt.Errorf("weapons used: %w", err)
	}
	return areas, nil
}
