package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-teamhub/internal/attendance"
	attendanceerrors "go-teamhub/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	attendance.Service
	loginFn   func(ctx context.Context, userID string) (attendance.Outcome, error)
	countFn   func(ctx context.Context, userID string) (int64, error)
	listAllFn func(ctx context.Context, search, date string) ([]attendance.AttendanceResponse, error)
	todayFn   func(ctx context.Context) (attendance.DayCountResponse, error)
}

func (f *fakeService) CountPresentToday(ctx context.Context) (attendance.DayCountResponse, error) {
	return f.todayFn(ctx)
}

func (f *fakeService) Login(ctx context.Context, userID string) (attendance.Outcome, error) {
	return f.loginFn(ctx, userID)
}
func (f *fakeService) CountLate(ctx context.Context, userID string) (int64, error) {
	return f.countFn(ctx, userID)
}
func (f *fakeService) ListAll(ctx context.Context, search, date string) ([]attendance.AttendanceResponse, error) {
	return f.listAllFn(ctx, search, date)
}

func newContext(method, target string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Params = params
	return c, w
}

func TestHandler_Login_RejectionIsOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	h := attendance.NewHandler(&fakeService{
		loginFn: func(ctx context.Context, id string) (attendance.Outcome, error) {
			assert.Equal(t, userID, id)
			return attendance.Outcome{Code: attendance.CodeWeekend, Message: "Weekend — Login not allowed"}, nil
		},
	}, nil)

	c, w := newContext(http.MethodPost, "/attendance/login/"+userID, gin.Params{{Key: "userId", Value: userID}})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accepted":false`)
	assert.Contains(t, w.Body.String(), "Weekend — Login not allowed")
}

func TestHandler_Login_FaultIsError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeService{
		loginFn: func(ctx context.Context, id string) (attendance.Outcome, error) {
			return attendance.Outcome{}, attendanceerrors.ErrInvalidUserID
		},
	}, nil)

	c, w := newContext(http.MethodPost, "/attendance/login/x", gin.Params{{Key: "userId", Value: "x"}})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid user id")
}

func TestHandler_LateDays(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	h := attendance.NewHandler(&fakeService{
		countFn: func(ctx context.Context, id string) (int64, error) { return 3, nil },
	}, nil)

	c, w := newContext(http.MethodGet, "/attendance/late/"+userID, gin.Params{{Key: "userId", Value: userID}})
	h.LateDays(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)
}

func TestHandler_PresentToday(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeService{
		todayFn: func(ctx context.Context) (attendance.DayCountResponse, error) {
			return attendance.DayCountResponse{Date: "2026-03-04", Count: 7}, nil
		},
	}, nil)

	c, w := newContext(http.MethodGet, "/attendance/present-today", nil)
	h.PresentToday(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2026-03-04"`)
	assert.Contains(t, w.Body.String(), `"count":7`)
}

func TestHandler_ListAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeService{
		listAllFn: func(ctx context.Context, search, date string) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "emp", search)
			assert.Equal(t, "2026-03-04", date)
			return []attendance.AttendanceResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
		},
	}, nil)

	c, w := newContext(http.MethodGet, "/attendance/all?search=emp&date=2026-03-04", nil)
	h.ListAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"meta"`)

	c2, w2 := newContext(http.MethodGet, "/attendance/all?search=emp&date=2026-03-04&page=2&page_size=2", nil)
	h.ListAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), `"meta"`)
	assert.Contains(t, w2.Body.String(), `"id":"3"`)
	assert.NotContains(t, w2.Body.String(), `"id":"1"`)
}
