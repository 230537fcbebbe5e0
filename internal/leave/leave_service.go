package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-teamhub/internal/events"
	leaveerrors "go-teamhub/internal/leave/errors"
	"go-teamhub/internal/messaging/kafka"
	"go-teamhub/internal/shared/clock"
	"go-teamhub/internal/shared/contextutil"
	"go-teamhub/internal/user"
	usererrors "go-teamhub/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "leave_request"

type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actorID string, req ApplyLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context) ([]LeaveResponse, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id string) (LeaveResponse, error)
	HasApprovedLeave(ctx context.Context, userID string, date time.Time) (bool, error)
	CountOnLeaveToday(ctx context.Context) (DayCountResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  UserDirectory
	outbox kafka.OutboxRepository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users UserDirectory,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, users: users, outbox: outbox, clock: clk, logger: l}
}

func (s *service) Apply(ctx context.Context, actorID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("actor_id", actorID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	applicant, err := s.users.FindByID(ctx, actorID)
	if errors.Is(err, usererrors.ErrUserNotFound) {
		return LeaveResponse{}, leaveerrors.ErrUserNotFound
	}
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, actorID, startDate, endDate)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("apply leave overlap detected",
			zap.String("user_id", actorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:        uuid.New(),
		UserID:    applicant.ID,
		EmpID:     applicant.EmpID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    StatusPending,
		CreatedAt: s.clock.Now(),
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", actorID),
	)

	return mapToResponse(*l, applicant.FullName), nil
}

func (s *service) List(ctx context.Context) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, leaveerrors.ErrInvalidUserID
	}
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusRejected)
}

// decide moves a pending leave to the target status and queues the
// leave_decided event in the same transaction.
func (s *service) decide(ctx context.Context, actorID, id, targetStatus string) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	approver, err := s.findUser(ctx, actorID, leaveerrors.ErrApproverNotFound)
	if err != nil {
		return LeaveResponse{}, err
	}
	employee, err := s.findUser(ctx, l.UserID.String(), leaveerrors.ErrUserNotFound)
	if err != nil {
		return LeaveResponse{}, err
	}

	if l.Status != StatusPending {
		s.logger.Warn("decide leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := s.clock.Now()
	l.Status = targetStatus
	l.ApprovalDate = &now
	l.ApprovedBy = &approver.ID
	l.EmpID = employee.EmpID

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	requestID := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent(
		requestID,
		aggregateType,
		l.ID.String(),
		events.LeaveDecidedType,
		events.LeaveDecidedTopic,
		events.LeaveDecidedEvent{
			EventType:     events.LeaveDecidedType,
			RequestID:     requestID,
			LeaveID:       l.ID.String(),
			UserID:        employee.ID.String(),
			EmployeeName:  employee.FullName,
			EmployeeEmail: employee.Email,
			Decision:      targetStatus,
			StartDate:     l.StartDate.Format(dateLayout),
			EndDate:       l.EndDate.Format(dateLayout),
			DecidedBy:     approver.FullName,
			OccurredAt:    now,
		},
	)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("decide leave outbox persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
		zap.String("outbox_id", event.ID),
	)

	return mapToResponse(*l, employee.FullName), nil
}

func (s *service) findUser(ctx context.Context, id string, notFound error) (*user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, notFound
	}
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, usererrors.ErrUserNotFound) {
		return nil, notFound
	}
	return u, err
}

func (s *service) HasApprovedLeave(ctx context.Context, userID string, date time.Time) (bool, error) {
	return s.repo.HasApprovedLeaveOn(ctx, userID, clock.Day(date))
}

// CountOnLeaveToday counts distinct users with an approved leave covering
// today.
func (s *service) CountOnLeaveToday(ctx context.Context) (DayCountResponse, error) {
	day := clock.Day(s.clock.Now())
	n, err := s.repo.CountUsersOnApprovedLeave(ctx, day)
	if err != nil {
		return DayCountResponse{}, err
	}
	return DayCountResponse{Date: day.Format(dateLayout), Count: n}, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
