package scheduler

import (
	"context"
	"time"

	"go-teamhub/internal/attendance"
	"go-teamhub/internal/wallet"
)

type AttendanceJobs interface {
	AutoAbsent(ctx context.Context, now time.Time) (attendance.SweepReport, error)
	AutoLogout(ctx context.Context, now time.Time) (attendance.SweepReport, error)
	MarkWeekend(ctx context.Context, now time.Time) (attendance.SweepReport, error)
	ApplySandwichPolicy(ctx context.Context, now time.Time) (attendance.SweepReport, error)
}

type PayrollJobs interface {
	UpdateDailySalary(ctx context.Context, now time.Time) (wallet.JobReport, error)
	CheckAndCreateNewCycle(ctx context.Context, now time.Time) (wallet.JobReport, error)
}

// Task adapts a typed job method to a RunFunc.
func Task[T any](fn func(ctx context.Context, now time.Time) (T, error)) RunFunc {
	return func(ctx context.Context, now time.Time) (any, error) {
		return fn(ctx, now)
	}
}

// RegisterDefaults registers the attendance corrections and the payroll
// jobs at their fixed times of day.
func RegisterDefaults(r *Registry, att AttendanceJobs, pay PayrollJobs) error {
	jobs := []Job{
		{Name: wallet.JobCycleRollover, Hour: 0, Minute: 0, Days: Daily, Run: Task(pay.CheckAndCreateNewCycle)},
		{Name: attendance.JobWeekendMarking, Hour: 0, Minute: 1, Days: Daily, Run: Task(att.MarkWeekend)},
		{Name: attendance.JobSandwichPolicy, Hour: 0, Minute: 10, Days: Daily, Run: Task(att.ApplySandwichPolicy)},
		{Name: attendance.JobAutoAbsent, Hour: 13, Minute: 5, Days: Weekdays, Run: Task(att.AutoAbsent)},
		{Name: attendance.JobAutoLogout, Hour: 18, Minute: 35, Days: Weekdays, Run: Task(att.AutoLogout)},
		{Name: wallet.JobDailySalary, Hour: 18, Minute: 45, Days: Weekdays, Run: Task(pay.UpdateDailySalary)},
	}
	for _, job := range jobs {
		if err := r.Register(job); err != nil {
			return err
		}
	}
	return nil
}
