package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn  func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id uint) (employee.EmployeeDetailResponse, error)
	UpdateFn  func(ctx context.Context, id uint, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id uint) (employee.DeleteEmployeeResponse, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id uint) (employee.EmployeeDetailResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id uint, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id uint) (employee.DeleteEmployeeResponse, error) {
	return f.DeleteFn(ctx, id)
}
func (f *fakeEmployeeService) ExistingIdentities(ctx context.Context) ([]employee.Identity, error) {
	return nil, nil
}
func (f *fakeEmployeeService) CreateBatch(ctx context.Context, batch []employee.NewEmployee) ([]uint, error) {
	return nil, nil
}

func setupRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := employee.NewHandler(svc)
	r := gin.New()
	r.GET("/employees", h.GetAll)
	r.GET("/employees/export.csv", h.ExportCSV)
	r.POST("/employees", h.Create)
	r.GET("/employees/:id", h.GetByID)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
	return r
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.Name)
				require.NotNil(t, req.TotalLeaves)
				assert.Equal(t, 25, *req.TotalLeaves)
				return employee.EmployeeResponse{ID: 1, Name: req.Name, TotalLeaves: 25, AvailableLeaves: 25}, nil
			},
		}

		w, env := do(t, setupRouter(svc), http.MethodPost, "/employees", `{"name":"John Doe","total_leaves":25}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Ok)
	})

	t.Run("missing total leaves", func(t *testing.T) {
		w, env := do(t, setupRouter(&fakeEmployeeService{}), http.MethodPost, "/employees", `{"name":"John"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("negative total leaves", func(t *testing.T) {
		w, _ := do(t, setupRouter(&fakeEmployeeService{}), http.MethodPost, "/employees", `{"name":"John","total_leaves":-2}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("total leaves beyond int32", func(t *testing.T) {
		w, env := do(t, setupRouter(&fakeEmployeeService{}), http.MethodPost, "/employees", `{"name":"John","total_leaves":3000000000}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("non numeric total leaves", func(t *testing.T) {
		w, _ := do(t, setupRouter(&fakeEmployeeService{}), http.MethodPost, "/employees", `{"name":"John","total_leaves":"ten"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: 1, Name: "Alice", Department: "IT"},
				{ID: 2, Name: "Bob", Department: "HR"},
				{ID: 3, Name: "Carol", Department: "IT"},
			}, nil
		},
	}
	r := setupRouter(svc)

	t.Run("filter", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/employees?q=it", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var items []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 2)
		assert.Nil(t, env.Meta)
	})

	t.Run("paged", func(t *testing.T) {
		_, env := do(t, r, http.MethodGet, "/employees?page=2&page_size=2", "")

		var items []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &items))
		require.Len(t, items, 1)
		assert.Equal(t, "Carol", items[0].Name)
		assert.EqualValues(t, 3, env.Meta["total"])
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		w, env := do(t, setupRouter(&fakeEmployeeService{}), http.MethodGet, "/employees/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, employeeerrors.ErrInvalidEmployeeID.Message, env.Error.Message)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(_ context.Context, id uint) (employee.EmployeeDetailResponse, error) {
				assert.Equal(t, uint(42), id)
				return employee.EmployeeDetailResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		w, env := do(t, setupRouter(svc), http.MethodGet, "/employees/42", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	svc := &fakeEmployeeService{
		UpdateFn: func(_ context.Context, id uint, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrTotalBelowUsed.WithMessage("Total leaves cannot be lower than leaves already used (5)")
		},
	}

	w, env := do(t, setupRouter(svc), http.MethodPut, "/employees/1", `{"name":"John","total_leaves":3}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Total leaves cannot be lower than leaves already used (5)", env.Error.Message)
}

func TestEmployeeHandler_UpdateRejectsHugeTotal(t *testing.T) {
	w, env := do(t, setupRouter(&fakeEmployeeService{}), http.MethodPut, "/employees/1", `{"name":"John","total_leaves":2147483648}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
}

func TestEmployeeHandler_ExportCSV(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(context.Context) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{
					{ID: 1, Name: "Alice", Department: "IT", TotalLeaves: 25, AvailableLeaves: 20, UsedLeaves: 5},
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/employees/export.csv", nil)
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="employees_export.csv"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t,
			"\ufeffName,Department,Total Leaves,Available Leaves,Used Leaves\nAlice,IT,25,20,5\n",
			w.Body.String())
	})

	t.Run("service failure", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(context.Context) ([]employee.EmployeeResponse, error) {
				return nil, apperror.ErrInternal
			},
		}

		w, env := do(t, setupRouter(svc), http.MethodGet, "/employees/export.csv", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, env.Ok)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	svc := &fakeEmployeeService{
		DeleteFn: func(_ context.Context, id uint) (employee.DeleteEmployeeResponse, error) {
			return employee.DeleteEmployeeResponse{ID: id, LeavesRemoved: 2}, nil
		},
	}

	w, env := do(t, setupRouter(svc), http.MethodDelete, "/employees/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"leaves_removed":2}`, string(env.Data))
}
