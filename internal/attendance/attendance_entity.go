package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusHalfDay = "HALF_DAY"
	StatusWeekend = "WEEKEND"
	StatusLeave   = "LEAVE"
)

const uniqueUserDateConstraint = "uq_attendance_user_date"

type AttendanceRecord struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_attendance_user_date,priority:1"`
	EmpID      string     `gorm:"column:emp_id;type:varchar(50);not null;index"`
	Date       time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_user_date,priority:2;index"`
	LoginTime  *time.Time `gorm:"column:login_time;type:timestamptz"`
	LogoutTime *time.Time `gorm:"column:logout_time;type:timestamptz"`
	Status     string     `gorm:"column:status;type:varchar(20);not null"`
	Remarks    string     `gorm:"column:remarks;type:text"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// AttendanceView is a record joined with the owner's display name.
type AttendanceView struct {
	AttendanceRecord `gorm:"embedded"`
	FullName         string `gorm:"column:full_name"`
}
