package notification

import (
	"context"
	"testing"

	"go-teamhub/internal/events"
	"go-teamhub/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLeaveDecisionEmail(t *testing.T) {
	event := events.LeaveDecidedEvent{
		EmployeeName:  "Asha Rao",
		EmployeeEmail: "asha@teamhub.in",
		StartDate:     "2026-03-10",
		EndDate:       "2026-03-12",
		DecidedBy:     "Meera HR",
	}

	t.Run("approved", func(t *testing.T) {
		event.Decision = DecisionApproved
		msg, err := LeaveDecisionEmail(event)
		require.NoError(t, err)
		assert.Equal(t, "asha@teamhub.in", msg.To)
		assert.Equal(t, "Leave Request Approved", msg.Subject)
		assert.Equal(t, "Hello Asha Rao,\n\n"+
			"Your leave request from 2026-03-10 to 2026-03-12 has been approved by Meera HR.\n\n"+
			"Best Regards,\nTeamHub HR", msg.Body)
	})

	t.Run("rejected", func(t *testing.T) {
		event.Decision = DecisionRejected
		msg, err := LeaveDecisionEmail(event)
		require.NoError(t, err)
		assert.Equal(t, "Leave Request Rejected", msg.Subject)
		assert.Contains(t, msg.Body, "has been rejected by Meera HR.\n\nFor more clarification, please contact HR.\n\n")
	})

	t.Run("unknown", func(t *testing.T) {
		event.Decision = "pending"
		_, err := LeaveDecisionEmail(event)
		assert.ErrorIs(t, err, ErrUnknownDecision)
	})
}

func TestNewMailer_NoopWithoutHost(t *testing.T) {
	m := NewMailer(config.Config{}, zap.NewNop())
	_, ok := m.(*noopMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), Message{To: "a@b.c"}))

	_, ok = NewMailer(config.Config{SMTPHost: "smtp.local"}).(*smtpMailer)
	assert.True(t, ok)
}

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("hr@teamhub.in", Message{To: "a@b.c", Subject: "Hi", Body: "body"}))
	assert.Contains(t, raw, "From: hr@teamhub.in\r\n")
	assert.Contains(t, raw, "Subject: Hi\r\n")
	assert.Contains(t, raw, "\r\n\r\nbody")
}
