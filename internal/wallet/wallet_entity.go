package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const activeWalletConstraint = "uq_wallets_active_user"

// Wallet is one payroll cycle of a user. The cycle is active while
// CycleEnd is nil; a user has at most one active wallet.
type Wallet struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID             uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_wallets_active_user,where:cycle_end IS NULL"`
	EmpID              string          `gorm:"column:emp_id;type:varchar(50);not null;index"`
	MonthlySalary      decimal.Decimal `gorm:"column:monthly_salary;type:numeric(20,4);not null;default:0"`
	DailyRate          decimal.Decimal `gorm:"column:daily_rate;type:numeric(20,4);not null;default:0"`
	CurrentMonthEarned decimal.Decimal `gorm:"column:current_month_earned;type:numeric(20,4);not null;default:0"`
	Deduction          decimal.Decimal `gorm:"column:deduction;type:numeric(20,4);not null;default:0"`
	CycleStart         time.Time       `gorm:"column:cycle_start;type:date;not null"`
	CycleEnd           *time.Time      `gorm:"column:cycle_end;type:date"`
	LastUpdated        *time.Time      `gorm:"column:last_updated;type:timestamptz"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

func (w Wallet) IsActive() bool {
	return w.CycleEnd == nil
}

// WalletView is an active wallet joined with its owner.
type WalletView struct {
	Wallet   `gorm:"embedded"`
	FullName string `gorm:"column:full_name"`
	Role     string `gorm:"column:role"`
}

// Totals aggregates the active wallets.
type Totals struct {
	MonthlySalary decimal.Decimal `gorm:"column:monthly_salary"`
	Earned        decimal.Decimal `gorm:"column:earned"`
	Deduction     decimal.Decimal `gorm:"column:deduction"`
}
