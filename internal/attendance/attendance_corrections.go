package attendance

import (
	"context"
	"errors"
	"time"

	"go-teamhub/internal/shared/clock"
	"go-teamhub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	JobAutoAbsent     = "auto_absent"
	JobAutoLogout     = "auto_logout"
	JobWeekendMarking = "weekend_marking"
	JobSandwichPolicy = "sandwich_policy"
)

// userStep applies one job to one user and reports whether anything changed.
type userStep func(ctx context.Context, u user.User, now time.Time) (bool, error)

// sweep runs step for every user. A failing user is logged and counted
// and does not stop the rest of the batch.
func (s *service) sweep(ctx context.Context, job string, now time.Time, step userStep) (SweepReport, error) {
	report := SweepReport{Job: job, Date: clock.Day(now).Format(dateLayout)}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return report, err
	}

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Processed++
		changed, err := step(ctx, u, now)
		if err != nil {
			report.Failed++
			s.logger.Warn("attendance sweep failed for user",
				zap.String("job", job),
				zap.String("user_id", u.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if changed {
			report.Changed++
		} else {
			report.Skipped++
		}
	}

	s.logger.Info("attendance sweep finished",
		zap.String("job", job),
		zap.String("date", report.Date),
		zap.Int("processed", report.Processed),
		zap.Int("changed", report.Changed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// AutoAbsent marks every user without a record today as ABSENT. It is a
// no-op on weekends and before 13:05.
func (s *service) AutoAbsent(ctx context.Context, now time.Time) (SweepReport, error) {
	if clock.IsWeekend(now) || now.Before(clock.At(now, autoAbsentHour, autoAbsentMinute)) {
		return SweepReport{Job: JobAutoAbsent, Date: clock.Day(now).Format(dateLayout)}, nil
	}
	return s.sweep(ctx, JobAutoAbsent, now, func(ctx context.Context, u user.User, now time.Time) (bool, error) {
		return s.insertIfAbsent(ctx, u, clock.Day(now), StatusAbsent, remarkAutoAbsent)
	})
}

// AutoLogout closes sessions still open at the end of a weekday.
func (s *service) AutoLogout(ctx context.Context, now time.Time) (SweepReport, error) {
	if clock.IsWeekend(now) || now.Before(clock.At(now, autoLogoutHour, autoLogoutMinute)) {
		return SweepReport{Job: JobAutoLogout, Date: clock.Day(now).Format(dateLayout)}, nil
	}
	return s.sweep(ctx, JobAutoLogout, now, s.autoLogoutUser)
}

// MarkWeekend records WEEKEND for users without a record on a Saturday or Sunday.
func (s *service) MarkWeekend(ctx context.Context, now time.Time) (SweepReport, error) {
	if !clock.IsWeekend(now) {
		return SweepReport{Job: JobWeekendMarking, Date: clock.Day(now).Format(dateLayout)}, nil
	}
	return s.sweep(ctx, JobWeekendMarking, now, func(ctx context.Context, u user.User, now time.Time) (bool, error) {
		return s.insertIfAbsent(ctx, u, clock.Day(now), StatusWeekend, remarkWeekend)
	})
}

func (s *service) insertIfAbsent(ctx context.Context, u user.User, day time.Time, status, remarks string) (bool, error) {
	unlock := s.locks.Lock(lockKey(u.ID.String(), day))
	defer unlock()

	return s.repo.CreateIfAbsent(ctx, &AttendanceRecord{
		ID:      uuid.New(),
		UserID:  u.ID,
		EmpID:   u.EmpID,
		Date:    day,
		Status:  status,
		Remarks: remarks,
	})
}

func (s *service) autoLogoutUser(ctx context.Context, u user.User, now time.Time) (bool, error) {
	day := clock.Day(now)
	userID := u.ID.String()

	unlock := s.locks.Lock(lockKey(userID, day))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByUserAndDateForUpdate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if row.LoginTime == nil || row.LogoutTime != nil {
		return false, nil
	}

	logoutAt, result := ClassifyAutoLogout(row.LoginTime.In(now.Location()))
	row.LogoutTime = &logoutAt
	row.Status = result.Status
	row.Remarks = result.Remarks

	if err := qtx.Update(ctx, row); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
