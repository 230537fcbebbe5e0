package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

const (
	JobDailySalary   = "daily_salary"
	JobCycleRollover = "cycle_rollover"
)

type DeductionRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// DeductionResult reports whether a deduction was booked. A missing wallet
// is a rejection with Applied=false, not an error.
type DeductionResult struct {
	Applied bool   `json:"applied"`
	EmpID   string `json:"emp_id"`
	Message string `json:"message"`
}

type AmountResponse struct {
	UserID string          `json:"user_id,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

type WalletResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	EmpID              string          `json:"emp_id"`
	MonthlySalary      decimal.Decimal `json:"monthly_salary"`
	DailyRate          decimal.Decimal `json:"daily_rate"`
	CurrentMonthEarned decimal.Decimal `json:"current_month_earned"`
	Deduction          decimal.Decimal `json:"deduction"`
	CycleStart         string          `json:"cycle_start"`
	CycleEnd           *string         `json:"cycle_end"`
	LastUpdated        *time.Time      `json:"last_updated"`
}

// WalletViewResponse is one row of the payroll overview. The user's role is
// reported as the department.
type WalletViewResponse struct {
	UserID             string          `json:"user_id"`
	EmpID              string          `json:"emp_id"`
	FullName           string          `json:"full_name"`
	Department         string          `json:"department"`
	MonthlySalary      decimal.Decimal `json:"monthly_salary"`
	DailyRate          decimal.Decimal `json:"daily_rate"`
	CurrentMonthEarned decimal.Decimal `json:"current_month_earned"`
	Deduction          decimal.Decimal `json:"deduction"`
}

type JobReport struct {
	Job       string `json:"job"`
	Date      string `json:"date"`
	Processed int    `json:"processed"`
	Changed   int    `json:"changed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

func mapToResponse(w Wallet) WalletResponse {
	resp := WalletResponse{
		ID:                 w.ID.String(),
		UserID:             w.UserID.String(),
		EmpID:              w.EmpID,
		MonthlySalary:      w.MonthlySalary,
		DailyRate:          w.DailyRate,
		CurrentMonthEarned: w.CurrentMonthEarned,
		Deduction:          w.Deduction,
		CycleStart:         w.CycleStart.Format(dateLayout),
		LastUpdated:        w.LastUpdated,
	}
	if w.CycleEnd != nil {
		end := w.CycleEnd.Format(dateLayout)
		resp.CycleEnd = &end
	}
	return resp
}

func mapToViewResponse(rows []WalletView) []WalletViewResponse {
	res := make([]WalletViewResponse, len(rows))
	for i, v := range rows {
		res[i] = WalletViewResponse{
			UserID:             v.UserID.String(),
			EmpID:              v.EmpID,
			FullName:           v.FullName,
			Department:         v.Role,
			MonthlySalary:      v.MonthlySalary,
			DailyRate:          v.DailyRate,
			CurrentMonthEarned: v.CurrentMonthEarned,
			Deduction:          v.Deduction,
		}
	}
	return res
}
