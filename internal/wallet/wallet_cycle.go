package wallet

import (
	"context"
	"errors"
	"time"

	"go-teamhub/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckAndCreateNewCycle closes every active wallet on the rollover day and
// opens the next cycle starting tomorrow with the same salary and rate. On
// any other day it does nothing.
func (s *service) CheckAndCreateNewCycle(ctx context.Context, now time.Time) (JobReport, error) {
	today := clock.Day(now)
	report := JobReport{Job: JobCycleRollover, Date: today.Format(dateLayout)}

	if now.Day() != s.rolloverDay {
		return report, nil
	}

	wallets, err := s.repo.ListActive(ctx)
	if err != nil {
		return report, err
	}

	for _, w := range wallets {
		report.Processed++
		rolled, err := s.rollover(ctx, w.UserID.String(), today)
		switch {
		case err != nil:
			report.Failed++
			s.logger.Warn("cycle rollover failed",
				zap.String("job", JobCycleRollover),
				zap.String("user_id", w.UserID.String()),
				zap.Error(err),
			)
		case rolled:
			report.Changed++
		default:
			report.Skipped++
		}
	}

	if report.Changed > 0 {
		s.invalidateSummary(ctx)
	}

	s.logger.Info("payroll cycle rollover finished",
		zap.String("date", report.Date),
		zap.Int("processed", report.Processed),
		zap.Int("rolled", report.Changed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *service) rollover(ctx context.Context, userID string, today time.Time) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active, err := qtx.FindActiveByUserForUpdate(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	// Already rolled today.
	if active.CycleStart.After(today) {
		return false, nil
	}

	end := today
	active.CycleEnd = &end
	if err := qtx.Update(ctx, active); err != nil {
		return false, err
	}

	next := &Wallet{
		ID:                 uuid.New(),
		UserID:             active.UserID,
		EmpID:              active.EmpID,
		MonthlySalary:      active.MonthlySalary,
		DailyRate:          active.DailyRate,
		CurrentMonthEarned: decimal.Zero,
		Deduction:          decimal.Zero,
		CycleStart:         today.AddDate(0, 0, 1),
	}
	if err := qtx.Create(ctx, next); err != nil {
		return false, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
