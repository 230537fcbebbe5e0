package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-teamhub/internal/attendance/errors"
	"go-teamhub/internal/shared/clock"
	"go-teamhub/internal/shared/keylock"
	"go-teamhub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgLoginSuccessful       = "Login Successful"
	msgLoginOnLeave          = "You are on approved leave today — Login not allowed"
	msgLoginWeekend          = "Weekend — Login not allowed"
	msgLoginTooEarly         = "Login not allowed before 9:00 AM"
	msgAlreadyLoggedIn       = "Already logged in today"
	msgLoginAfterLogout      = "You have already logged out today — cannot login again"
	msgLogoutWeekend         = "Weekend — Logout not needed"
	msgLogoutOnLeave         = "You are on approved leave today — Logout not needed"
	msgNotLoggedIn           = "You did not login today"
	msgAlreadyLoggedOut      = "You have already logged out today"
	msgLogoutUpdatedTemplate = "Logout Updated: "
)

type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindAll(ctx context.Context) ([]user.User, error)
}

type LeaveChecker interface {
	HasApprovedLeave(ctx context.Context, userID string, date time.Time) (bool, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, userID string) (Outcome, error)
	Logout(ctx context.Context, userID string) (Outcome, error)
	GetToday(ctx context.Context, userID string) (*AttendanceResponse, error)
	History(ctx context.Context, userID string) ([]AttendanceResponse, error)
	CountPresent(ctx context.Context, userID string) (int64, error)
	CountAbsent(ctx context.Context, userID string) (int64, error)
	CountHalfDay(ctx context.Context, userID string) (int64, error)
	CountLate(ctx context.Context, userID string) (int64, error)
	CountPresentToday(ctx context.Context) (DayCountResponse, error)
	ListAll(ctx context.Context, search, date string) ([]AttendanceResponse, error)
	RecordsForDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error)

	AutoAbsent(ctx context.Context, now time.Time) (SweepReport, error)
	AutoLogout(ctx context.Context, now time.Time) (SweepReport, error)
	MarkWeekend(ctx context.Context, now time.Time) (SweepReport, error)
	ApplySandwichPolicy(ctx context.Context, now time.Time) (SweepReport, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  UserDirectory
	leaves LeaveChecker
	clock  clock.Clock
	locks  *keylock.KeyedMutex
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users UserDirectory, leaves LeaveChecker, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		leaves: leaves,
		clock:  clk,
		locks:  keylock.New(),
		logger: l,
	}
}

func lockKey(userID string, day time.Time) string {
	return userID + "|" + day.Format(dateLayout)
}

func (s *service) Login(ctx context.Context, userID string) (Outcome, error) {
	u, err := s.lookupUser(ctx, userID)
	if err != nil {
		return Outcome{}, err
	}

	now := s.clock.Now()
	day := clock.Day(now)

	onLeave, err := s.leaves.HasApprovedLeave(ctx, userID, day)
	if err != nil {
		return Outcome{}, err
	}
	if onLeave {
		return rejected(CodeOnLeave, msgLoginOnLeave), nil
	}
	if clock.IsWeekend(now) {
		return rejected(CodeWeekend, msgLoginWeekend), nil
	}
	if BeforeLoginWindow(now) {
		return rejected(CodeBeforeLoginWindow, msgLoginTooEarly), nil
	}

	unlock := s.locks.Lock(lockKey(userID, day))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Outcome{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByUserAndDate(ctx, userID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Outcome{}, err
	}
	if existing != nil {
		if existing.LogoutTime == nil {
			return rejected(CodeAlreadyLoggedIn, msgAlreadyLoggedIn), nil
		}
		return rejected(CodeAlreadyLoggedOut, msgLoginAfterLogout), nil
	}

	row := &AttendanceRecord{
		ID:        uuid.New(),
		UserID:    u.ID,
		EmpID:     u.EmpID,
		Date:      day,
		LoginTime: &now,
		Status:    StatusPresent,
		Remarks:   remarkLoginRecorded,
	}
	if err := qtx.Create(ctx, row); err != nil {
		if isDuplicateAttendance(err) {
			return rejected(CodeAlreadyLoggedIn, msgAlreadyLoggedIn), nil
		}
		return Outcome{}, err
	}
	if err := tx.Commit(); err != nil {
		return Outcome{}, err
	}

	s.logger.Info("login recorded",
		zap.String("user_id", userID),
		zap.String("date", day.Format(dateLayout)),
	)
	resp := mapToResponse(*row, u.FullName, now.Location())
	return Outcome{Accepted: true, Code: CodeLoginRecorded, Message: msgLoginSuccessful, Record: &resp}, nil
}

func (s *service) Logout(ctx context.Context, userID string) (Outcome, error) {
	u, err := s.lookupUser(ctx, userID)
	if err != nil {
		return Outcome{}, err
	}

	now := s.clock.Now()
	day := clock.Day(now)

	if clock.IsWeekend(now) {
		return rejected(CodeWeekend, msgLogoutWeekend), nil
	}
	onLeave, err := s.leaves.HasApprovedLeave(ctx, userID, day)
	if err != nil {
		return Outcome{}, err
	}
	if onLeave {
		return rejected(CodeOnLeave, msgLogoutOnLeave), nil
	}

	unlock := s.locks.Lock(lockKey(userID, day))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Outcome{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByUserAndDateForUpdate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rejected(CodeNotLoggedIn, msgNotLoggedIn), nil
		}
		return Outcome{}, err
	}
	// Records created by the absence sweep carry no login time.
	if row.LoginTime == nil {
		return rejected(CodeNotLoggedIn, msgNotLoggedIn), nil
	}
	if row.LogoutTime != nil {
		return rejected(CodeAlreadyLoggedOut, msgAlreadyLoggedOut), nil
	}

	result := ClassifyLogout(row.LoginTime.In(now.Location()), now)
	row.LogoutTime = &now
	row.Status = result.Status
	row.Remarks = result.Remarks

	if err := qtx.Update(ctx, row); err != nil {
		return Outcome{}, err
	}
	if err := tx.Commit(); err != nil {
		return Outcome{}, err
	}

	s.logger.Info("logout recorded",
		zap.String("user_id", userID),
		zap.String("status", result.Status),
		zap.Int("hours", result.Hours),
	)
	resp := mapToResponse(*row, u.FullName, now.Location())
	return Outcome{
		Accepted: true,
		Code:     CodeLogoutRecorded,
		Message:  msgLogoutUpdatedTemplate + result.Status,
		Record:   &resp,
	}, nil
}

func (s *service) GetToday(ctx context.Context, userID string) (*AttendanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, attendanceerrors.ErrInvalidUserID
	}
	now := s.clock.Now()
	row, err := s.repo.FindByUserAndDate(ctx, userID, clock.Day(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapToResponse(*row, "", now.Location())
	return &resp, nil
}

func (s *service) History(ctx context.Context, userID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, attendanceerrors.ErrInvalidUserID
	}
	rows, err := s.repo.FindHistoryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc := s.clock.Now().Location()
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r, "", loc)
	}
	return res, nil
}

func (s *service) CountPresent(ctx context.Context, userID string) (int64, error) {
	return s.countByStatus(ctx, userID, StatusPresent)
}

func (s *service) CountAbsent(ctx context.Context, userID string) (int64, error) {
	return s.countByStatus(ctx, userID, StatusAbsent)
}

func (s *service) CountHalfDay(ctx context.Context, userID string) (int64, error) {
	return s.countByStatus(ctx, userID, StatusHalfDay)
}

func (s *service) countByStatus(ctx context.Context, userID, status string) (int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return 0, attendanceerrors.ErrInvalidUserID
	}
	return s.repo.CountByStatus(ctx, userID, status)
}

// CountLate counts the days the user logged in after 09:05.
func (s *service) CountLate(ctx context.Context, userID string) (int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return 0, attendanceerrors.ErrInvalidUserID
	}
	rows, err := s.repo.FindHistoryByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	loc := s.clock.Now().Location()
	var late int64
	for _, r := range rows {
		if r.LoginTime != nil && IsLateLogin(r.LoginTime.In(loc)) {
			late++
		}
	}
	return late, nil
}

func (s *service) ListAll(ctx context.Context, search, date string) ([]AttendanceResponse, error) {
	filter := ListFilter{Search: strings.TrimSpace(search)}
	if date = strings.TrimSpace(date); date != "" {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		filter.Date = &d
	}

	rows, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	loc := s.clock.Now().Location()
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r.AttendanceRecord, r.FullName, loc)
	}
	return res, nil
}

// CountPresentToday counts users who logged in today, whatever their final
// status.
func (s *service) CountPresentToday(ctx context.Context) (DayCountResponse, error) {
	day := clock.Day(s.clock.Now())
	rows, err := s.repo.FindByDate(ctx, day)
	if err != nil {
		return DayCountResponse{}, err
	}
	res := DayCountResponse{Date: day.Format(dateLayout)}
	for _, r := range rows {
		if r.LoginTime != nil {
			res.Count++
		}
	}
	return res, nil
}

func (s *service) RecordsForDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error) {
	return s.repo.FindByDate(ctx, clock.Day(date))
}

func (s *service) lookupUser(ctx context.Context, userID string) (*user.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, attendanceerrors.ErrInvalidUserID
	}
	return s.users.FindByID(ctx, userID)
}
