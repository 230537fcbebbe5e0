package notification

import (
	"errors"
	"fmt"
	"strings"

	"go-teamhub/internal/events"
)

const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

var ErrUnknownDecision = errors.New("unknown leave decision")

// LeaveDecisionEmail renders the message sent to an employee when HR
// approves or rejects their leave request.
func LeaveDecisionEmail(event events.LeaveDecidedEvent) (Message, error) {
	var subject, extra string
	switch event.Decision {
	case DecisionApproved:
		subject = "Leave Request Approved"
	case DecisionRejected:
		subject = "Leave Request Rejected"
		extra = "For more clarification, please contact HR.\n\n"
	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownDecision, event.Decision)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", event.EmployeeName)
	fmt.Fprintf(&b, "Your leave request from %s to %s has been %s by %s.\n\n",
		event.StartDate, event.EndDate, event.Decision, event.DecidedBy)
	b.WriteString(extra)
	b.WriteString("Best Regards,\nTeamHub HR")

	return Message{To: event.EmployeeEmail, Subject: subject, Body: b.String()}, nil
}
