package query

import (
	"context"

	"github.com/crimedex/crimedex/internal/domain"
)

// CrimeRepository defines the storage contract for the analytical queries.
type CrimeRepository interface {
	List(ctx context.Context, limit int64) ([]domain.Crime, error)
	CountByCode(ctx context.Context, start, end string) ([]domain.CodeCount, error)
	CountByDay(ctx context.Context, crimeCode int, days []string) (map[string]int, error)
	MostCommonByArea(ctx context.Context, day string) ([]domain.AreaCrimes, error)
	LeastCommon(ctx context.Context, start, end string, limit int) ([]domain.CrimeCount, error)
	WeaponsUsed(ctx context.Context, crimeCode int) ([]domain.AreaWeapons, error)
}
