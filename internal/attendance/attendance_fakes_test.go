package attendance

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go-teamhub/internal/user"
	usererrors "go-teamhub/internal/user/errors"

	"gorm.io/gorm"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, ist)
}

// memRepo is an in-memory Repository keyed by user id and date.
type memRepo struct {
	mu      sync.Mutex
	rows    map[string]AttendanceRecord
	failFor map[string]error

	createFn func(ctx context.Context, a *AttendanceRecord) error
	searchFn func(ctx context.Context, filter ListFilter) ([]AttendanceView, error)
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]AttendanceRecord{}, failFor: map[string]error{}}
}

func (m *memRepo) key(userID string, date time.Time) string {
	return lockKey(userID, date)
}

func (m *memRepo) put(a AttendanceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[m.key(a.UserID.String(), a.Date)] = a
}

func (m *memRepo) get(userID string, date time.Time) (AttendanceRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[m.key(userID, date)]
	return a, ok
}

func (m *memRepo) WithTx(tx *sql.Tx) Repository { return m }

func (m *memRepo) Create(ctx context.Context, a *AttendanceRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	m.put(*a)
	return nil
}

func (m *memRepo) CreateIfAbsent(ctx context.Context, a *AttendanceRecord) (bool, error) {
	if err := m.failFor[a.UserID.String()]; err != nil {
		return false, err
	}
	if _, ok := m.get(a.UserID.String(), a.Date); ok {
		return false, nil
	}
	m.put(*a)
	return true, nil
}

func (m *memRepo) Upsert(ctx context.Context, a *AttendanceRecord) error {
	if existing, ok := m.get(a.UserID.String(), a.Date); ok {
		existing.Status = a.Status
		existing.Remarks = a.Remarks
		m.put(existing)
		return nil
	}
	m.put(*a)
	return nil
}

func (m *memRepo) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error) {
	if err := m.failFor[userID]; err != nil {
		return nil, err
	}
	a, ok := m.get(userID, date)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (m *memRepo) FindByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error) {
	return m.FindByUserAndDate(ctx, userID, date)
}

func (m *memRepo) FindByDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []AttendanceRecord
	for _, a := range m.rows {
		if a.Date.Equal(date) {
			rows = append(rows, a)
		}
	}
	return rows, nil
}

func (m *memRepo) FindHistoryByUser(ctx context.Context, userID string) ([]AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []AttendanceRecord
	for _, a := range m.rows {
		if a.UserID.String() == userID {
			rows = append(rows, a)
		}
	}
	return rows, nil
}

func (m *memRepo) CountByStatus(ctx context.Context, userID, status string) (int64, error) {
	rows, _ := m.FindHistoryByUser(ctx, userID)
	var n int64
	for _, a := range rows {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) Search(ctx context.Context, filter ListFilter) ([]AttendanceView, error) {
	return m.searchFn(ctx, filter)
}

func (m *memRepo) Update(ctx context.Context, a *AttendanceRecord) error {
	m.put(*a)
	return nil
}

type fakeUsers struct {
	users []user.User
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (*user.User, error) {
	for i := range f.users {
		if f.users[i].ID.String() == id {
			return &f.users[i], nil
		}
	}
	return nil, usererrors.ErrUserNotFound
}

func (f *fakeUsers) FindAll(ctx context.Context) ([]user.User, error) {
	return f.users, nil
}

type fakeLeaves struct {
	onLeave map[string]bool
}

func (f *fakeLeaves) HasApprovedLeave(ctx context.Context, userID string, date time.Time) (bool, error) {
	return f.onLeave[userID], nil
}
