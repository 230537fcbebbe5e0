package leave

import "time"

type ApplyLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	EmpID        string  `json:"emp_id"`
	FullName     string  `json:"full_name,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovalDate *string `json:"approval_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type DayCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

func mapToResponse(l LeaveRequest, fullName string) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		EmpID:     l.EmpID,
		FullName:  fullName,
		StartDate: l.StartDate.Format(dateLayout),
		EndDate:   l.EndDate.Format(dateLayout),
		Reason:    l.Reason,
		Status:    l.Status,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovalDate != nil {
		v := l.ApprovalDate.Format(time.RFC3339)
		resp.ApprovalDate = &v
	}
	return resp
}

func mapToListResponse(rows []LeaveView) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, v := range rows {
		resp[i] = mapToResponse(v.LeaveRequest, v.FullName)
	}
	return resp
}
