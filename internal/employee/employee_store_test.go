package employee_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLiteService(t *testing.T) (employee.Service, *gorm.DB) {
	t.Helper()
	gdb := database.OpenTestSQLite(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	return employee.NewService(sqlDB, employee.NewRepository(gdb), nil), gdb
}

func insertLeave(t *testing.T, gdb *gorm.DB, employeeID uint, days int, created time.Time) {
	t.Helper()
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, gdb.Create(&employee.LeaveRecord{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days-1),
		Days:       days,
		Reason:     "Vacation",
		Status:     "approved",
		CreatedAt:  created,
	}).Error)
	require.NoError(t, gdb.Exec(
		"UPDATE employees SET available_leaves = available_leaves - ? WHERE id = ?", days, employeeID,
	).Error)
}

func TestEmployeeStore_SQLite(t *testing.T) {
	ctx := context.Background()
	svc, gdb := newSQLiteService(t)

	zoe, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Zoe", Department: "Ops", TotalLeaves: intPtr(10)})
	require.NoError(t, err)
	john, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "John Doe", TotalLeaves: intPtr(25)})
	require.NoError(t, err)
	assert.Equal(t, employee.DefaultDepartment, john.Department)

	now := time.Now().UTC()
	insertLeave(t, gdb, john.ID, 3, now.Add(-time.Hour))
	insertLeave(t, gdb, john.ID, 2, now)

	t.Run("list ordered by name with counts", func(t *testing.T) {
		all, err := svc.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "John Doe", all[0].Name)
		assert.Equal(t, 2, all[0].LeaveCount)
		assert.Equal(t, 5, all[0].UsedLeaves)
		assert.Equal(t, 20, all[0].AvailableLeaves)
		assert.Equal(t, zoe.ID, all[1].ID)
		assert.Equal(t, 0, all[1].LeaveCount)
	})

	t.Run("detail lists leaves newest first", func(t *testing.T) {
		detail, err := svc.GetByID(ctx, john.ID)
		require.NoError(t, err)
		require.Len(t, detail.Leaves, 2)
		assert.Equal(t, 2, detail.Leaves[0].Days)
		assert.Equal(t, "2024-01-15", detail.Leaves[0].StartDate)
	})

	t.Run("update keeps consumed days", func(t *testing.T) {
		updated, err := svc.Update(ctx, john.ID, employee.UpdateEmployeeRequest{Name: "John Doe", Department: "IT", TotalLeaves: intPtr(30)})
		require.NoError(t, err)
		assert.Equal(t, 25, updated.AvailableLeaves)

		_, err = svc.Update(ctx, john.ID, employee.UpdateEmployeeRequest{Name: "John Doe", TotalLeaves: intPtr(4)})
		assert.ErrorIs(t, err, employeeerrors.ErrTotalBelowUsed.WithMessage("Total leaves cannot be lower than leaves already used (5)"))
	})

	t.Run("identities", func(t *testing.T) {
		ids, err := svc.ExistingIdentities(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []employee.Identity{
			{Name: "Zoe", Department: "Ops"},
			{Name: "John Doe", Department: "IT"},
		}, ids)
	})

	t.Run("delete cascades", func(t *testing.T) {
		resp, err := svc.Delete(ctx, john.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.LeavesRemoved)

		_, err = svc.GetByID(ctx, john.ID)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)

		var remaining int64
		require.NoError(t, gdb.Model(&employee.LeaveRecord{}).Where("employee_id = ?", john.ID).Count(&remaining).Error)
		assert.Zero(t, remaining)

		_, err = svc.Delete(ctx, john.ID)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeStore_CreateBatchSQLite(t *testing.T) {
	ctx := context.Background()
	svc, gdb := newSQLiteService(t)

	ids, err := svc.CreateBatch(ctx, []employee.NewEmployee{
		{Name: "Ann", Department: "IT", TotalLeaves: 25, AvailableLeaves: 20},
		{Name: "Ben", Department: "HR", TotalLeaves: 30, AvailableLeaves: 30},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	var ann employee.Employee
	require.NoError(t, gdb.First(&ann, ids[0]).Error)
	assert.Equal(t, 5, ann.OpeningUsed)
	assert.Equal(t, 20, ann.AvailableLeaves)

	_, err = svc.CreateBatch(ctx, []employee.NewEmployee{{Name: "Bad", TotalLeaves: 1, AvailableLeaves: 3}})
	assert.Error(t, err)

	var count int64
	require.NoError(t, gdb.Model(&employee.Employee{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
