package wallet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-teamhub/internal/attendance"
	"go-teamhub/internal/shared/clock"
	"go-teamhub/internal/shared/keylock"
	"go-teamhub/internal/user"
	usererrors "go-teamhub/internal/user/errors"
	walleterrors "go-teamhub/internal/wallet/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	SummaryCacheKey = "wallets:summary"
	summaryCacheTTL = 5 * time.Minute

	daysPerMonth = 30
)

type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

type AttendanceSource interface {
	RecordsForDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error)
}

//go:generate mockgen -source=wallet_service.go -destination=mock/wallet_service_mock.go -package=mock
type Service interface {
	MonthSalary(ctx context.Context, userID string) (decimal.Decimal, error)
	DailyRate(ctx context.Context, userID string) (decimal.Decimal, error)
	DeductionAmount(ctx context.Context, userID string) (decimal.Decimal, error)
	Details(ctx context.Context, userID string) (WalletResponse, error)
	TotalSalary(ctx context.Context) (decimal.Decimal, error)
	TotalDeduction(ctx context.Context) (decimal.Decimal, error)
	NetPayable(ctx context.Context) (decimal.Decimal, error)
	ListAll(ctx context.Context) ([]WalletViewResponse, error)
	AddDeduction(ctx context.Context, empID string, amount decimal.Decimal) (DeductionResult, error)
	OpenInitialWallet(ctx context.Context, userID string) error

	UpdateDailySalary(ctx context.Context, now time.Time) (JobReport, error)
	CheckAndCreateNewCycle(ctx context.Context, now time.Time) (JobReport, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	users       UserDirectory
	records     AttendanceSource
	clock       clock.Clock
	rdb         *redis.Client
	sf          *singleflight.Group
	locks       *keylock.KeyedMutex
	rolloverDay int
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users UserDirectory,
	records AttendanceSource,
	clk clock.Clock,
	rdb *redis.Client,
	rolloverDay int,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("wallet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("wallet.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		users:       users,
		records:     records,
		clock:       clk,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		locks:       keylock.New(),
		rolloverDay: rolloverDay,
		logger:      l,
	}
}

func (s *service) activeWallet(ctx context.Context, userID string) (*Wallet, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, walleterrors.ErrInvalidUserID
	}
	w, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return w, nil
}

func (s *service) MonthSalary(ctx context.Context, userID string) (decimal.Decimal, error) {
	w, err := s.activeWallet(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return w.MonthlySalary, nil
}

func (s *service) DailyRate(ctx context.Context, userID string) (decimal.Decimal, error) {
	w, err := s.activeWallet(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return w.DailyRate, nil
}

func (s *service) DeductionAmount(ctx context.Context, userID string) (decimal.Decimal, error) {
	w, err := s.activeWallet(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return w.Deduction, nil
}

func (s *service) Details(ctx context.Context, userID string) (WalletResponse, error) {
	w, err := s.activeWallet(ctx, userID)
	if err != nil {
		return WalletResponse{}, err
	}
	return mapToResponse(*w), nil
}

func (s *service) TotalSalary(ctx context.Context) (decimal.Decimal, error) {
	t, err := s.summary(ctx)
	return t.MonthlySalary, err
}

func (s *service) TotalDeduction(ctx context.Context) (decimal.Decimal, error) {
	t, err := s.summary(ctx)
	return t.Deduction, err
}

// NetPayable is the amount earned in the active cycles. Deductions are
// reported separately and not subtracted.
func (s *service) NetPayable(ctx context.Context) (decimal.Decimal, error) {
	t, err := s.summary(ctx)
	return t.Earned, err
}

func (s *service) summary(ctx context.Context) (Totals, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, SummaryCacheKey).Result()
		if err == nil {
			var t Totals
			if err := json.Unmarshal([]byte(cached), &t); err == nil {
				return t, nil
			}
		}
	}

	v, err, _ := s.sf.Do(SummaryCacheKey, func() (interface{}, error) {
		t, err := s.repo.ActiveTotals(ctx)
		if err != nil {
			return Totals{}, err
		}
		if s.rdb != nil {
			if data, err := json.Marshal(t); err == nil {
				s.rdb.Set(ctx, SummaryCacheKey, data, summaryCacheTTL)
			}
		}
		return t, nil
	})
	if err != nil {
		return Totals{}, err
	}
	return v.(Totals), nil
}

func (s *service) invalidateSummary(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, SummaryCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate wallet summary cache", zap.Error(err))
	}
}

func (s *service) ListAll(ctx context.Context) ([]WalletViewResponse, error) {
	rows, err := s.repo.ListActiveViews(ctx)
	if err != nil {
		return nil, err
	}
	return mapToViewResponse(rows), nil
}

// AddDeduction increases the deduction of the active wallet of empID.
// Deductions never decrease.
func (s *service) AddDeduction(ctx context.Context, empID string, amount decimal.Decimal) (DeductionResult, error) {
	if !amount.IsPositive() {
		return DeductionResult{}, walleterrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeductionResult{}, err
	}
	defer tx.Rollback()

	found, err := s.repo.WithTx(tx).AddDeduction(ctx, empID, amount)
	if err != nil {
		return DeductionResult{}, err
	}
	if !found {
		return DeductionResult{
			EmpID:   empID,
			Message: "Salary details not found for Employee ID: " + empID,
		}, nil
	}

	if err := tx.Commit(); err != nil {
		return DeductionResult{}, err
	}
	s.invalidateSummary(ctx)

	s.logger.Info("deduction added", zap.String("emp_id", empID), zap.String("amount", amount.String()))
	return DeductionResult{
		Applied: true,
		EmpID:   empID,
		Message: "Deduction added successfully for Employee ID: " + empID,
	}, nil
}

// OpenInitialWallet opens the first payroll cycle of a newly onboarded user.
func (s *service) OpenInitialWallet(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return walleterrors.ErrInvalidUserID
	}
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, usererrors.ErrUserNotFound) {
		return walleterrors.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindActiveByUserForUpdate(ctx, userID)
	if err == nil {
		return walleterrors.ErrActiveWalletExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	w := s.newWallet(u, s.clock.Now())
	if err := qtx.Create(ctx, w); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.invalidateSummary(ctx)

	s.logger.Info("initial wallet opened",
		zap.String("user_id", userID),
		zap.String("cycle_start", w.CycleStart.Format(dateLayout)),
	)
	return nil
}

func (s *service) newWallet(u *user.User, now time.Time) *Wallet {
	return &Wallet{
		ID:                 uuid.New(),
		UserID:             u.ID,
		EmpID:              u.EmpID,
		MonthlySalary:      u.BaseSalary,
		DailyRate:          DailyRateFor(u.BaseSalary),
		CurrentMonthEarned: decimal.Zero,
		Deduction:          decimal.Zero,
		CycleStart:         CycleStartFor(now, s.rolloverDay),
	}
}

func DailyRateFor(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Div(decimal.NewFromInt(daysPerMonth))
}

// CycleStartFor returns the start of the cycle a wallet opened at now
// belongs to: the day after the rollover day, in this month once the
// rollover day is reached and in the previous month before it.
func CycleStartFor(now time.Time, rolloverDay int) time.Time {
	y, m, d := now.Date()
	if d < rolloverDay {
		m--
	}
	return time.Date(y, m, rolloverDay+1, 0, 0, 0, 0, time.UTC)
}

// AccrualFor is the amount a day with the given attendance status earns.
func AccrualFor(status string, dailyRate decimal.Decimal) decimal.Decimal {
	switch status {
	case attendance.StatusPresent, attendance.StatusLeave:
		return dailyRate
	case attendance.StatusHalfDay:
		return dailyRate.Div(decimal.NewFromInt(2))
	default:
		return decimal.Zero
	}
}
