package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-teamhub/internal/domain"
	"go-teamhub/internal/middleware"
	"go-teamhub/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func withIdentity(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("user_id_validated", userID)
		c.Next()
	}
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.MapClaims{"user_id": "u-1", "role": "hr", "exp": time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing token",
			setup:      func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "token not found",
		},
		{
			name: "bearer token",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, valid))
			},
			wantStatus: http.StatusOK,
			wantBody:   "u-1|HR",
		},
		{
			name: "cookie token",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, valid)})
			},
			wantStatus: http.StatusOK,
			wantBody:   "u-1|HR",
		},
		{
			name: "expired",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
					"user_id": "u-1", "role": "hr", "exp": time.Now().Add(-time.Hour).Unix(),
				}))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "token expired",
		},
		{
			name: "wrong secret",
			setup: func(r *http.Request) {
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, valid).SignedString([]byte("other"))
				r.Header.Set("Authorization", "Bearer "+token)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid token",
		},
		{
			name: "missing role claim",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": "u-1"}))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "required claim missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
				c.String(http.StatusOK, c.GetString("user_id")+"|"+c.GetString("role"))
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestExtractUserID(t *testing.T) {
	r := gin.New()
	r.GET("/me", withIdentity("u-7", "EMPLOYEE"), middleware.ExtractUserID(), func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetUserID(c.Request.Context()))
	})
	r.GET("/anon", middleware.ExtractUserID(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, "u-7", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anon", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/ping", middleware.RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-1", w.Body.String())
	assert.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
}

type fakeRBAC struct {
	allowed map[string]bool
	err     error
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.allowed[req.Role+":"+req.Resource+":"+req.Action], nil
}

func TestRBACAuthorize(t *testing.T) {
	svc := &fakeRBAC{allowed: map[string]bool{"HR:salary:deduct": true}}

	run := func(role string) int {
		r := gin.New()
		r.PUT("/deduction", withIdentity("u-1", role),
			middleware.RBACAuthorize(svc, "salary", "deduct"),
			func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/deduction", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, run("HR"))
	assert.Equal(t, http.StatusForbidden, run("EMPLOYEE"))
	assert.Equal(t, http.StatusUnauthorized, run(""))
}

func TestRBACAuthorize_EnforceError(t *testing.T) {
	svc := &fakeRBAC{err: errors.New("enforcer broken")}
	r := gin.New()
	r.GET("/x", withIdentity("u-1", "HR"), middleware.RBACAuthorize(svc, "salary", "read_all"),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRBACAuthorizeOwner(t *testing.T) {
	svc := &fakeRBAC{allowed: map[string]bool{
		"EMPLOYEE:attendance:self": true,
		"HR:attendance:read_all":   true,
	}}

	tests := []struct {
		name       string
		caller     string
		role       string
		target     string
		wantStatus int
	}{
		{"own record", "u-1", "EMPLOYEE", "u-1", http.StatusOK},
		{"someone else", "u-1", "EMPLOYEE", "u-2", http.StatusForbidden},
		{"hr reads anyone", "u-9", "HR", "u-2", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/history/:userId", withIdentity(tt.caller, tt.role),
				middleware.RBACAuthorizeOwner(svc, "attendance", "self", "read_all", "userId"),
				func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history/"+tt.target, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func idempotentRouter(rdb *redis.Client, calls *int) *gin.Engine {
	r := gin.New()
	r.PUT("/salary/deduction/:empid", withIdentity("u-1", "HR"), middleware.Idempotency(rdb), func(c *gin.Context) {
		*calls++
		defer middleware.ReleaseIdempotencyLock(c, rdb)
		payload := gin.H{"applied": true}
		middleware.CacheIdempotentResponse(c, rdb, payload)
		c.JSON(http.StatusOK, payload)
	})
	return r
}

func TestIdempotency(t *testing.T) {
	const (
		cacheKey = "idemp:/salary/deduction/:empid:u-1:key-1"
		lockKey  = cacheKey + ":lock"
	)

	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/salary/deduction/EMP001", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		return req
	}

	t.Run("first request runs and caches", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(`{"applied":true}`), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		calls := 0
		w := httptest.NewRecorder()
		idempotentRouter(rdb, &calls).ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay returns cached response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"applied":true}`)

		calls := 0
		w := httptest.NewRecorder()
		idempotentRouter(rdb, &calls).ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, calls)
		assert.Contains(t, w.Body.String(), `"applied":true`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		calls := 0
		w := httptest.NewRecorder()
		idempotentRouter(rdb, &calls).ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("no key passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		calls := 0
		w := httptest.NewRecorder()
		idempotentRouter(rdb, &calls).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/salary/deduction/EMP001", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil redis passes through", func(t *testing.T) {
		calls := 0
		w := httptest.NewRecorder()
		idempotentRouter(nil, &calls).ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, calls)
	})
}

func TestRateLimitByUser(t *testing.T) {
	r := gin.New()
	r.PUT("/x", withIdentity("u-1", "HR"), middleware.RateLimitByUser(rate.Limit(0.001), 2),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestKeyedRateLimiter_SeparateBuckets(t *testing.T) {
	l := middleware.NewKeyedRateLimiter(rate.Limit(0.001), 1)
	assert.True(t, l.GetLimiter("a").Allow())
	assert.False(t, l.GetLimiter("a").Allow())
	assert.True(t, l.GetLimiter("b").Allow())
}
