package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-leave/internal/dashboard"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	employeeMock "go-leave/internal/employee/mock"
	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	kafkaMock "go-leave/internal/messaging/kafka/mock"
	"go-leave/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	redismock redismock.ClientMock
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewServiceWithOutbox(db, repo, outboxRepo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func intPtr(v int) *int { return &v }

func (d *serviceDeps) expectOutbox(eventType string) {
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
		if e.EventType != eventType {
			return errors.New("unexpected event type " + e.EventType)
		}
		return nil
	})
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, "John Doe", e.Name)
			assert.Equal(t, employee.DefaultDepartment, e.Department)
			assert.Equal(t, 25, e.TotalLeaves)
			assert.Equal(t, 25, e.AvailableLeaves)
			e.ID = 1
			return nil
		})
		deps.expectOutbox(events.EmployeeCreated)
		deps.redismock.ExpectDel(dashboard.StatsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:        "  John Doe ",
			Department:  "   ",
			TotalLeaves: intPtr(25),
		})

		require.NoError(t, err)
		assert.Equal(t, uint(1), resp.ID)
		assert.Equal(t, 25, resp.AvailableLeaves)
		assert.Equal(t, 0, resp.UsedLeaves)
		assert.Equal(t, 0, resp.LeaveCount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			req  employee.CreateEmployeeRequest
			want error
		}{
			{"blank name", employee.CreateEmployeeRequest{Name: "   ", TotalLeaves: intPtr(5)}, employeeerrors.ErrNameRequired},
			{"missing total", employee.CreateEmployeeRequest{Name: "Jane"}, employeeerrors.ErrTotalLeavesRequired},
			{"negative total", employee.CreateEmployeeRequest{Name: "Jane", TotalLeaves: intPtr(-1)}, employeeerrors.ErrNegativeLeaves},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				deps := setupServiceTest(t)

				_, err := deps.service.Create(ctx, tt.req)

				assert.ErrorIs(t, err, tt.want)
				assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
			})
		}
	})

	t.Run("storage failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("disk full"))

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Jane", TotalLeaves: intPtr(5)})

		assert.True(t, apperror.HasCode(err, apperror.CodeInternalError))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, uint(99)).Return(&employee.Employee{}, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 99)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("with leaves", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).
			Return(&employee.Employee{ID: 1, Name: "John", TotalLeaves: 25, AvailableLeaves: 22}, nil)
		deps.repo.EXPECT().FindLeaves(ctx, uint(1)).
			Return([]employee.LeaveRecord{{ID: 3, EmployeeID: 1, Days: 3, Reason: "Trip", Status: "approved"}}, nil)

		resp, err := deps.service.GetByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, 3, resp.UsedLeaves)
		assert.Equal(t, 1, resp.LeaveCount)
		require.Len(t, resp.Leaves, 1)
		assert.Equal(t, uint(3), resp.Leaves[0].ID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves used days", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).
			Return(&employee.Employee{ID: 1, Name: "John", Department: "IT", TotalLeaves: 25, AvailableLeaves: 22}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, 30, e.TotalLeaves)
			assert.Equal(t, 27, e.AvailableLeaves)
			return nil
		})
		deps.expectOutbox(events.EmployeeUpdated)
		deps.redismock.ExpectDel(dashboard.StatsCacheKey).SetVal(1)

		resp, err := deps.service.Update(ctx, 1, employee.UpdateEmployeeRequest{Name: "John", Department: "IT", TotalLeaves: intPtr(30)})

		require.NoError(t, err)
		assert.Equal(t, 27, resp.AvailableLeaves)
		assert.Equal(t, 3, resp.UsedLeaves)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("total below used is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).
			Return(&employee.Employee{ID: 1, Name: "John", TotalLeaves: 25, AvailableLeaves: 20}, nil)

		_, err := deps.service.Update(ctx, 1, employee.UpdateEmployeeRequest{Name: "John", TotalLeaves: intPtr(4)})

		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
		assert.Equal(t, "Total leaves cannot be lower than leaves already used (5)", apperror.ToHTTP(err).Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(7)).Return(&employee.Employee{}, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 7, employee.UpdateEmployeeRequest{Name: "X", TotalLeaves: intPtr(1)})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades leaves", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(&employee.Employee{ID: 1, Name: "John"}, nil)
		deps.repo.EXPECT().DeleteLeaves(ctx, uint(1)).Return(int64(2), nil)
		deps.repo.EXPECT().Delete(ctx, uint(1)).Return(int64(1), nil)
		deps.expectOutbox(events.EmployeeDeleted)
		deps.redismock.ExpectDel(dashboard.StatsCacheKey).SetVal(1)

		resp, err := deps.service.Delete(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, employee.DeleteEmployeeResponse{ID: 1, LeavesRemoved: 2}, resp)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(5)).Return(&employee.Employee{}, gorm.ErrRecordNotFound)

		_, err := deps.service.Delete(ctx, 5)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_CreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("records opening usage", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CreateBatch(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rows []employee.Employee) error {
			require.Len(t, rows, 2)
			assert.Equal(t, 5, rows[0].OpeningUsed)
			assert.Equal(t, 0, rows[1].OpeningUsed)
			assert.Equal(t, employee.DefaultDepartment, rows[1].Department)
			rows[0].ID, rows[1].ID = 10, 11
			return nil
		})
		deps.expectOutbox(events.EmployeeImported)
		deps.redismock.ExpectDel(dashboard.StatsCacheKey).SetVal(1)

		ids, err := deps.service.CreateBatch(ctx, []employee.NewEmployee{
			{Name: "Ann", Department: "IT", TotalLeaves: 25, AvailableLeaves: 20},
			{Name: "Bob", TotalLeaves: 10, AvailableLeaves: 10},
		})

		require.NoError(t, err)
		assert.Equal(t, []uint{10, 11}, ids)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		deps := setupServiceTest(t)

		ids, err := deps.service.CreateBatch(ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CreateBatch(ctx, gomock.Any()).Return(errors.New("too many connections"))

		_, err := deps.service.CreateBatch(ctx, []employee.NewEmployee{{Name: "Ann", TotalLeaves: 1, AvailableLeaves: 1}})

		assert.True(t, apperror.HasCode(err, apperror.CodeInternalError))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
