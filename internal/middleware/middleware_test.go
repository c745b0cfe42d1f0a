package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-0123456789"

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Ok    bool `json:"ok"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	return body.Error.Code
}

func TestAuthMiddleware(t *testing.T) {
	tm := token.NewManager(testSecret, time.Hour)
	r := newRouter()
	r.GET("/me", AuthMiddleware(tm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("role")})
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, w))
	})

	t.Run("bearer token", func(t *testing.T) {
		signed, _, err := tm.Generate(3, "hr.jane", domain.RoleHR)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"3","role":"hr"}`, w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		signed, _, err := tm.Generate(1, "admin", domain.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signed})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	tm := token.NewManager(testSecret, time.Hour)
	r := newRouter()
	r.GET("/status", OptionalAuth(tm), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRBACAuthorize(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		}
	}

	tests := []struct {
		name   string
		role   string
		rbac   *fakeRBAC
		status int
	}{
		{"allowed", domain.RoleHR, &fakeRBAC{allowed: true}, http.StatusNoContent},
		{"denied", domain.RoleViewer, &fakeRBAC{allowed: false}, http.StatusForbidden},
		{"no role", "", &fakeRBAC{allowed: true}, http.StatusUnauthorized},
		{"enforcer error", domain.RoleHR, &fakeRBAC{err: errors.New("boom")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter()
			r.POST("/leaves", withRole(tt.role), RBACAuthorize(tt.rbac, "leave", "write"), func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

			assert.Equal(t, tt.status, w.Code)
			if tt.role != "" {
				assert.Equal(t, domain.EnforceRequest{Role: tt.role, Resource: "leave", Action: "write"}, tt.rbac.got)
			}
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	r := newRouter()
	r.POST("/login", RateLimitByIP(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeErrorCode(t, second))
}

func TestRequestID(t *testing.T) {
	r := newRouter()
	r.GET("/ping", RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Body.String())
		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Len(t, w.Body.String(), 36)
	})
}

func TestIdempotency(t *testing.T) {
	const ttl = time.Hour
	cacheKey := IdempotencyKey("/leaves", "", "abc")

	newIdempotentRouter := func(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
		db, mock := redismock.NewClientMock()
		calls := 0
		r := newRouter()
		r.POST("/leaves", Idempotency(db, ttl), func(c *gin.Context) {
			calls++
			c.String(http.StatusCreated, "created")
		})
		return r, mock, &calls
	}

	t.Run("first request is stored", func(t *testing.T) {
		r, mock, calls := newIdempotentRouter(t)
		payload, _ := json.Marshal(idempotentResponse{
			Status:      http.StatusCreated,
			ContentType: "text/plain; charset=utf-8",
			Body:        "created",
		})
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, payload, ttl).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(IdempotencyHeader, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat request is replayed", func(t *testing.T) {
		r, mock, calls := newIdempotentRouter(t)
		payload, _ := json.Marshal(idempotentResponse{
			Status:      http.StatusCreated,
			ContentType: "text/plain; charset=utf-8",
			Body:        "created",
		})
		mock.ExpectGet(cacheKey).SetVal(string(payload))

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(IdempotencyHeader, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "created", w.Body.String())
		assert.Equal(t, "true", w.Header().Get(ReplayedHeader))
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent request conflicts", func(t *testing.T) {
		r, mock, calls := newIdempotentRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(IdempotencyHeader, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, *calls)
	})

	t.Run("no key passes through", func(t *testing.T) {
		r, mock, calls := newIdempotentRouter(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
