package attendance

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-teamhub/internal/shared/txdb"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

type ListFilter struct {
	Search string
	Date   *time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *AttendanceRecord) error
	CreateIfAbsent(ctx context.Context, a *AttendanceRecord) (bool, error)
	Upsert(ctx context.Context, a *AttendanceRecord) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error)
	FindByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error)
	FindByDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error)
	FindHistoryByUser(ctx context.Context, userID string) ([]AttendanceRecord, error)
	CountByStatus(ctx context.Context, userID, status string) (int64, error)
	Search(ctx context.Context, filter ListFilter) ([]AttendanceView, error)
	Update(ctx context.Context, a *AttendanceRecord) error
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

func (r *repository) Create(ctx context.Context, a *AttendanceRecord) error {
	return r.conn(ctx).Create(a).Error
}

// CreateIfAbsent inserts a and reports false when a record for the same
// user and date already exists.
func (r *repository) CreateIfAbsent(ctx context.Context, a *AttendanceRecord) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   userDateColumns(),
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Upsert inserts a or overwrites status and remarks of the existing record
// for the same user and date.
func (r *repository) Upsert(ctx context.Context, a *AttendanceRecord) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   userDateColumns(),
			DoUpdates: clause.AssignmentColumns([]string{"status", "remarks", "updated_at"}),
		}).
		Create(a).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error) {
	var a AttendanceRecord
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error) {
	var a AttendanceRecord
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.conn(ctx).
		Where("attendance_date = ?", date.Format(dateLayout)).
		Order("emp_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindHistoryByUser(ctx context.Context, userID string) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByStatus(ctx context.Context, userID, status string) (int64, error) {
	var total int64
	err := r.conn(ctx).
		Model(&AttendanceRecord{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&total).Error
	return total, err
}

func (r *repository) Search(ctx context.Context, filter ListFilter) ([]AttendanceView, error) {
	q := r.conn(ctx).
		Table("attendance_records AS a").
		Select("a.*, u.full_name").
		Joins("LEFT JOIN users u ON u.id = a.user_id")

	if filter.Date != nil {
		q = q.Where("a.attendance_date = ?", filter.Date.Format(dateLayout))
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(a.emp_id) LIKE ? OR LOWER(u.full_name) LIKE ? OR LOWER(a.status) LIKE ?", like, like, like)
	}

	var rows []AttendanceView
	err := q.Order("a.attendance_date DESC, a.emp_id ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *AttendanceRecord) error {
	return r.conn(ctx).Save(a).Error
}

func userDateColumns() []clause.Column {
	return []clause.Column{{Name: "user_id"}, {Name: "attendance_date"}}
}
