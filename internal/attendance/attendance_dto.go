package attendance

import "time"

const (
	CodeLoginRecorded     = "LOGIN_RECORDED"
	CodeLogoutRecorded    = "LOGOUT_RECORDED"
	CodeOnLeave           = "ON_LEAVE"
	CodeWeekend           = "WEEKEND"
	CodeBeforeLoginWindow = "BEFORE_LOGIN_WINDOW"
	CodeAlreadyLoggedIn   = "ALREADY_LOGGED_IN"
	CodeAlreadyLoggedOut  = "ALREADY_LOGGED_OUT"
	CodeNotLoggedIn       = "NOT_LOGGED_IN"
)

// Outcome is the result of a login or logout attempt. Rejections are
// reported with Accepted=false and never as errors.
type Outcome struct {
	Accepted bool                `json:"accepted"`
	Code     string              `json:"code"`
	Message  string              `json:"message"`
	Record   *AttendanceResponse `json:"record,omitempty"`
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	EmpID      string  `json:"emp_id"`
	FullName   string  `json:"full_name,omitempty"`
	Date       string  `json:"date"`
	LoginTime  *string `json:"login_time,omitempty"`
	LogoutTime *string `json:"logout_time,omitempty"`
	Status     string  `json:"status"`
	Remarks    string  `json:"remarks"`
}

type CountResponse struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DayCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// SweepReport summarizes one run of a correction job.
type SweepReport struct {
	Job       string `json:"job"`
	Date      string `json:"date"`
	Processed int    `json:"processed"`
	Changed   int    `json:"changed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

func rejected(code, message string) Outcome {
	return Outcome{Code: code, Message: message}
}

func mapToResponse(a AttendanceRecord, fullName string, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID.String(),
		UserID:     a.UserID.String(),
		EmpID:      a.EmpID,
		FullName:   fullName,
		Date:       a.Date.Format(dateLayout),
		LoginTime:  formatTime(a.LoginTime, loc),
		LogoutTime: formatTime(a.LogoutTime, loc),
		Status:     a.Status,
		Remarks:    a.Remarks,
	}
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}
