package leave

import (
	"context"
	"database/sql"
	"time"

	"go-teamhub/internal/shared/txdb"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveView, error)
	FindByUser(ctx context.Context, userID string) ([]LeaveView, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	HasApprovedLeaveOn(ctx context.Context, userID string, date time.Time) (bool, error)
	CountUsersOnApprovedLeave(ctx context.Context, date time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txdb.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) views(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("leave_requests AS l").
		Select("l.*, u.full_name").
		Joins("LEFT JOIN users u ON u.id = l.user_id")
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveView, error) {
	var rows []LeaveView
	err := r.views(ctx).
		Order("l.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]LeaveView, error) {
	var rows []LeaveView
	err := r.views(ctx).
		Where("l.user_id = ?", userID).
		Order("l.start_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Save(l).Error
}

// HasOverlappingPeriod reports whether the user has a pending or approved
// leave intersecting [startDate, endDate].
func (r *repository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate.Format(dateLayout), endDate.Format(dateLayout)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasApprovedLeaveOn(ctx context.Context, userID string, date time.Time) (bool, error) {
	var count int64
	day := date.Format(dateLayout)
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountUsersOnApprovedLeave(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	day := date.Format(dateLayout)
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Distinct("user_id").
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count, err
}
