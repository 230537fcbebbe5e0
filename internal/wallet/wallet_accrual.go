package wallet

import (
	"context"
	"errors"
	"time"

	"go-teamhub/internal/attendance"
	"go-teamhub/internal/shared/clock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateDailySalary credits every wallet with the earnings of the day's
// finalized attendance. A wallet already credited today is skipped and a
// user without an active wallet gets one.
func (s *service) UpdateDailySalary(ctx context.Context, now time.Time) (JobReport, error) {
	today := clock.Day(now)
	report := JobReport{Job: JobDailySalary, Date: today.Format(dateLayout)}

	records, err := s.records.RecordsForDate(ctx, today)
	if err != nil {
		return report, err
	}

	for _, rec := range records {
		report.Processed++
		credited, err := s.accrue(ctx, rec, now)
		switch {
		case err != nil:
			report.Failed++
			s.logger.Warn("daily salary accrual failed",
				zap.String("job", JobDailySalary),
				zap.String("user_id", rec.UserID.String()),
				zap.Error(err),
			)
		case credited:
			report.Changed++
		default:
			report.Skipped++
		}
	}

	if report.Changed > 0 {
		s.invalidateSummary(ctx)
	}

	s.logger.Info("daily salary accrual finished",
		zap.String("date", report.Date),
		zap.Int("processed", report.Processed),
		zap.Int("credited", report.Changed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *service) accrue(ctx context.Context, rec attendance.AttendanceRecord, now time.Time) (bool, error) {
	userID := rec.UserID.String()
	today := clock.Day(now)

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindActiveByUserForUpdate(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return false, err
		}
		w = s.newWallet(u, now)
		if err := qtx.Create(ctx, w); err != nil {
			return false, mapRepositoryError(err)
		}
	} else if err != nil {
		return false, err
	}

	if w.LastUpdated != nil && clock.Day(w.LastUpdated.In(now.Location())).Equal(today) {
		return false, nil
	}

	w.CurrentMonthEarned = w.CurrentMonthEarned.Add(AccrualFor(rec.Status, w.DailyRate))
	stamp := now
	w.LastUpdated = &stamp

	if err := qtx.Update(ctx, w); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
