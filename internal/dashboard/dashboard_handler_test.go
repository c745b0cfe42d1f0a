package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/dashboard"
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	StatsFn func(ctx context.Context) (dashboard.StatsResponse, error)
}

func (f *fakeService) Stats(ctx context.Context) (dashboard.StatsResponse, error) {
	return f.StatsFn(ctx)
}

func serveStats(svc dashboard.Service) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dashboard/stats", dashboard.NewHandler(svc).Stats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))
	return w
}

func TestHandler_Stats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		w := serveStats(&fakeService{StatsFn: func(context.Context) (dashboard.StatsResponse, error) {
			return dashboard.StatsResponse{Year: 2024, TotalEmployees: 2, Departments: []dashboard.DepartmentStats{}}, nil
		}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"data":{"year":2024,"total_employees":2,"leaves_this_year":0,"days_this_year":0,"departments":[]}}`, w.Body.String())
	})

	t.Run("storage error", func(t *testing.T) {
		w := serveStats(&fakeService{StatsFn: func(context.Context) (dashboard.StatsResponse, error) {
			return dashboard.StatsResponse{}, apperror.Storage(errors.New("db down"))
		}})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}
