package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type LeaveRequest struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_leave_requests_user_dates"`
	EmpID     string    `gorm:"column:emp_id;type:varchar(50);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leave_requests_user_dates"`
	Reason    string    `gorm:"column:reason;type:text"`

	Status       string     `gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	ApprovedBy   *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovalDate *time.Time `gorm:"column:approval_date;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveView is a leave request joined with the applicant's name.
type LeaveView struct {
	LeaveRequest `gorm:"embedded"`
	FullName     string `gorm:"column:full_name"`
}
