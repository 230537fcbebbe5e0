package attendance

import (
	"fmt"
	"time"

	"go-teamhub/internal/shared/clock"
)

const (
	loginOpensHour    = 9
	lateAfterHour     = 9
	lateAfterMinute   = 5
	fullDayLogoutHour = 18
	autoLogoutHour    = 18
	autoLogoutMinute  = 30
	autoAbsentHour    = 13
	autoAbsentMinute  = 5
	minimumHours      = 5
	fullDayHours      = 9
)

const (
	remarkLoginRecorded   = "Login Recorded"
	remarkFullDay         = "Full Day Present — Time Condition Met"
	remarkLateHalfDay     = "Logout — Late Login | HALF DAY"
	remarkAutoAbsent      = "Auto Absent — No Login Before 1 PM"
	remarkAutoAbsentShort = "Auto Absent — Less than 5 Hours"
	remarkAutoHalfDay     = "Auto Logout — Half Day (Forgot Logout)"
	remarkWeekend         = "Auto Weekend Marked"
	remarkSandwich        = "Sandwich Applied"
)

type Classification struct {
	Status  string
	Remarks string
	Hours   int
}

// WorkedHours is the whole number of hours between login and logout,
// truncated toward zero.
func WorkedHours(login, logout time.Time) int {
	return int(logout.Sub(login).Hours())
}

func IsLateLogin(login time.Time) bool {
	return login.After(clock.At(login, lateAfterHour, lateAfterMinute))
}

func BeforeLoginWindow(now time.Time) bool {
	return now.Before(clock.At(now, loginOpensHour, 0))
}

// ClassifyLogout derives the day's status from a manual login/logout pair.
// The full-day time condition wins over the hour count.
func ClassifyLogout(login, logout time.Time) Classification {
	hours := WorkedHours(login, logout)

	if !IsLateLogin(login) && !logout.Before(clock.At(logout, fullDayLogoutHour, 0)) {
		return Classification{Status: StatusPresent, Remarks: remarkFullDay, Hours: hours}
	}
	if hours < minimumHours {
		return Classification{
			Status:  StatusAbsent,
			Remarks: fmt.Sprintf("Logout — Worked: %d Hrs | ABSENT", hours),
			Hours:   hours,
		}
	}
	if IsLateLogin(login) {
		return Classification{Status: StatusHalfDay, Remarks: remarkLateHalfDay, Hours: hours}
	}

	status := StatusHalfDay
	if hours >= fullDayHours {
		status = StatusPresent
	}
	return Classification{
		Status:  status,
		Remarks: fmt.Sprintf("Logout — Worked: %d Hrs | %s", hours, status),
		Hours:   hours,
	}
}

// ClassifyAutoLogout closes a forgotten session at 18:30 on the login day.
func ClassifyAutoLogout(login time.Time) (time.Time, Classification) {
	logoutAt := clock.At(login, autoLogoutHour, autoLogoutMinute)
	hours := WorkedHours(login, logoutAt)
	if hours < minimumHours {
		return logoutAt, Classification{Status: StatusAbsent, Remarks: remarkAutoAbsentShort, Hours: hours}
	}
	return logoutAt, Classification{Status: StatusHalfDay, Remarks: remarkAutoHalfDay, Hours: hours}
}

// SandwichDays returns the Friday on or before today and the Saturday,
// Sunday and Monday that follow it.
func SandwichDays(today time.Time) (friday, saturday, sunday, monday time.Time) {
	offset := (int(today.Weekday()) - int(time.Friday) + 7) % 7
	friday = clock.Day(today).AddDate(0, 0, -offset)
	return friday, friday.AddDate(0, 0, 1), friday.AddDate(0, 0, 2), friday.AddDate(0, 0, 3)
}
