package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
)

// User is owned by the employee directory; this service only reads it.
type User struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpID      string          `gorm:"column:emp_id;type:varchar(50);not null;uniqueIndex"`
	FullName   string          `gorm:"column:full_name;type:varchar(255);not null"`
	Email      string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	Role       string          `gorm:"column:role;type:varchar(50);not null;default:EMPLOYEE"`
	BaseSalary decimal.Decimal `gorm:"column:base_salary;type:numeric(20,4);not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
