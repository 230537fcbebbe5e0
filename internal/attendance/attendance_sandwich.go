package attendance

import (
	"context"
	"errors"
	"time"

	"go-teamhub/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplySandwichPolicy turns the weekend around the most recent Friday into
// ABSENT for every user absent on that Friday or the following Monday.
func (s *service) ApplySandwichPolicy(ctx context.Context, now time.Time) (SweepReport, error) {
	return s.sweep(ctx, JobSandwichPolicy, now, s.sandwichUser)
}

func (s *service) sandwichUser(ctx context.Context, u user.User, now time.Time) (bool, error) {
	friday, saturday, sunday, monday := SandwichDays(now)
	userID := u.ID.String()

	fridayAbsent, err := s.isAbsent(ctx, userID, friday)
	if err != nil {
		return false, err
	}
	mondayAbsent, err := s.isAbsent(ctx, userID, monday)
	if err != nil {
		return false, err
	}
	if !fridayAbsent && !mondayAbsent {
		return false, nil
	}

	unlockSat := s.locks.Lock(lockKey(userID, saturday))
	defer unlockSat()
	unlockSun := s.locks.Lock(lockKey(userID, sunday))
	defer unlockSun()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for _, day := range []time.Time{saturday, sunday} {
		err := qtx.Upsert(ctx, &AttendanceRecord{
			ID:      uuid.New(),
			UserID:  u.ID,
			EmpID:   u.EmpID,
			Date:    day,
			Status:  StatusAbsent,
			Remarks: remarkSandwich,
		})
		if err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) isAbsent(ctx context.Context, userID string, day time.Time) (bool, error) {
	row, err := s.repo.FindByUserAndDate(ctx, userID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return row.Status == StatusAbsent, nil
}
