// Package loader implements the one-shot CSV ingest: every row becomes one
// crime document, plus conditionally one victim and one weapon tied to it by
// the crime's freshly assigned identifier.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/crimedex/crimedex/internal/domain"
)

const (
	defaultBatchSize = 1000
	progressInterval = 10000
)

// Service runs the batch ingest. It is a one-shot job run out-of-band from
// the API server; it destructively clears all collections first and offers
// no transactionality; a failure mid-load leaves partial data.
type Service struct {
	crimes    CrimeWriter
	victims   VictimWriter
	weapons   WeaponWriter
	upvotes   UpvoteCleaner
	batchSize int
	logger    *zap.Logger
}

// New creates a loader service.
func New(crimes CrimeWriter, victims VictimWriter, weapons WeaponWriter, upvotes UpvoteCleaner, logger *zap.Logger) *Service {
	return &Service{
		crimes:    crimes,
		victims:   victims,
		weapons:   weapons,
		upvotes:   upvotes,
		batchSize: defaultBatchSize,
		logger:    logger,
	}
}

// WithBatchSize configures the victim/weapon bulk-insert flush threshold.
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// Run ingests a CSV dataset and returns the number of crime reports loaded.
// Any row-level error aborts the whole load.
func (s *Service) Run(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	cols, err := newColumnIndex(header)
	if err != nil {
		return 0, err
	}

	if err := s.clear(ctx); err != nil {
		return 0, err
	}

	var (
		count   int
		victims []domain.Victim
		weapons []domain.Weapon
	)
	for {
		if err := ctx.Err(); err != nil {
			return count, fmt.Errorf("load interrupted: %w", err)
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read row %d: %w", count+1, err)
		}

		crime, victim, weapon, err := cols.parseRow(record)
		if err != nil {
			return count, fmt.Errorf("parse row %d: %w", count+1, err)
		}

		crimeID, err := s.crimes.Insert(ctx, crime)
		if err != nil {
			return count, fmt.Errorf("insert row %d: %w", count+1, err)
		}
		count++

		if victim != nil {
			victim.CrimeID = crimeID
			victims = append(victims, *victim)
		}
		if weapon != nil {
			weapon.CrimeID = crimeID
			weapons = append(weapons, *weapon)
		}

		if len(victims) >= s.batchSize {
			if err := s.victims.InsertMany(ctx, victims); err != nil {
				return count, fmt.Errorf("flush victims: %w", err)
			}
			victims = victims[:0]
		}
		if len(weapons) >= s.batchSize {
			if err := s.weapons.InsertMany(ctx, weapons); err != nil {
				return count, fmt.Errorf("flush weapons: %w", err)
			}
			weapons = weapons[:0]
		}

		if count%progressInterval == 0 {
			s.logger.Info("Loading crime reports", zap.Int("loaded", count))
		}
	}

	if len(victims) > 0 {
		if err := s.victims.InsertMany(ctx, victims); err != nil {
			return count, fmt.Errorf("flush victims: %w", err)
		}
	}
	if len(weapons) > 0 {
		if err := s.weapons.InsertMany(ctx, weapons); err != nil {
			return count, fmt.Errorf("flush weapons: %w", err)
		}
	}

	s.logger.Info("Crime dataset loaded", zap.Int("reports", count))
	return count, nil
}

// clear performs the destructive refresh over all four collections.
func (s *Service) clear(ctx context.Context) error {
	if err := s.crimes.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.victims.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.weapons.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.upvotes.DeleteAll(ctx); err != nil {
		return err
	}
	return nil
}
