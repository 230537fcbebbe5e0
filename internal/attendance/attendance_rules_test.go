package attendance_test

import (
	"testing"
	"time"

	"go-teamhub/internal/attendance"

	"github.com/stretchr/testify/assert"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, ist)
}

func TestClassifyLogout(t *testing.T) {
	tests := []struct {
		name       string
		login      time.Time
		logout     time.Time
		wantStatus string
		wantRemark string
	}{
		{
			name:       "full day time condition",
			login:      at(4, 9, 0),
			logout:     at(4, 18, 0),
			wantStatus: attendance.StatusPresent,
			wantRemark: "Full Day Present — Time Condition Met",
		},
		{
			name:       "login at grace boundary still full day",
			login:      at(4, 9, 5),
			logout:     at(4, 18, 0),
			wantStatus: attendance.StatusPresent,
			wantRemark: "Full Day Present — Time Condition Met",
		},
		{
			name:       "short day is absent",
			login:      at(4, 9, 0),
			logout:     at(4, 13, 0),
			wantStatus: attendance.StatusAbsent,
			wantRemark: "Logout — Worked: 4 Hrs | ABSENT",
		},
		{
			name:       "late login with long hours is half day",
			login:      at(4, 9, 10),
			logout:     at(4, 18, 30),
			wantStatus: attendance.StatusHalfDay,
			wantRemark: "Logout — Late Login | HALF DAY",
		},
		{
			name:       "on time but early logout is half day",
			login:      at(4, 9, 0),
			logout:     at(4, 17, 30),
			wantStatus: attendance.StatusHalfDay,
			wantRemark: "Logout — Worked: 8 Hrs | HALF_DAY",
		},
		{
			name:       "late and short is absent",
			login:      at(4, 11, 0),
			logout:     at(4, 15, 59),
			wantStatus: attendance.StatusAbsent,
			wantRemark: "Logout — Worked: 4 Hrs | ABSENT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := attendance.ClassifyLogout(tt.login, tt.logout)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantRemark, got.Remarks)
		})
	}
}

func TestClassifyAutoLogout(t *testing.T) {
	logoutAt, got := attendance.ClassifyAutoLogout(at(4, 14, 0))
	assert.Equal(t, at(4, 18, 30), logoutAt)
	assert.Equal(t, attendance.StatusAbsent, got.Status)
	assert.Equal(t, "Auto Absent — Less than 5 Hours", got.Remarks)

	logoutAt, got = attendance.ClassifyAutoLogout(at(4, 9, 30))
	assert.Equal(t, at(4, 18, 30), logoutAt)
	assert.Equal(t, attendance.StatusHalfDay, got.Status)
	assert.Equal(t, "Auto Logout — Half Day (Forgot Logout)", got.Remarks)
	assert.Equal(t, 9, got.Hours)
}

func TestLoginWindowAndLateness(t *testing.T) {
	assert.True(t, attendance.BeforeLoginWindow(at(4, 8, 59)))
	assert.False(t, attendance.BeforeLoginWindow(at(4, 9, 0)))

	assert.False(t, attendance.IsLateLogin(at(4, 9, 5)))
	assert.True(t, attendance.IsLateLogin(at(4, 9, 5).Add(time.Second)))
}

func TestWorkedHours_Truncates(t *testing.T) {
	assert.Equal(t, 4, attendance.WorkedHours(at(4, 9, 0), at(4, 13, 59)))
	assert.Equal(t, 0, attendance.WorkedHours(at(4, 9, 0), at(4, 9, 0)))
}

func TestSandwichDays(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		today time.Time
		fri   time.Time
	}{
		{"tuesday looks back to last friday", at(10, 0, 10), day(6)},
		{"monday", at(9, 0, 10), day(6)},
		{"friday is its own anchor", at(6, 0, 10), day(6)},
		{"thursday crosses into previous month", at(5, 0, 10), time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fri, sat, sun, mon := attendance.SandwichDays(tt.today)
			assert.Equal(t, tt.fri, fri)
			assert.Equal(t, tt.fri.AddDate(0, 0, 1), sat)
			assert.Equal(t, tt.fri.AddDate(0, 0, 2), sun)
			assert.Equal(t, tt.fri.AddDate(0, 0, 3), mon)
		})
	}
}
