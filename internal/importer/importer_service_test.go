package importer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-leave/internal/employee"
	"go-leave/internal/importer"
	importererrors "go-leave/internal/importer/errors"
	importerMock "go-leave/internal/importer/mock"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ids(n int) []uint {
	out := make([]uint, n)
	for i := range out {
		out[i] = uint(i + 1)
	}
	return out
}

func TestImporterService_Batches(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	writer := importerMock.NewMockEmployeeWriter(ctrl)
	svc := importer.NewService(writer, importer.Options{BatchSize: 2})

	rows := []importer.Row{
		row("A", "IT", "10", "10"),
		row("B", "IT", "10", "10"),
		row("C", "IT", "10", "20"),
		row("D", "IT", "10", "10"),
		row("E", "IT", "10", "10"),
		row("F", "IT", "10", "10"),
	}

	writer.EXPECT().ExistingIdentities(ctx).Return(nil, nil)
	gomock.InOrder(
		writer.EXPECT().CreateBatch(ctx, gomock.Len(2)).Return(ids(2), nil),
		writer.EXPECT().CreateBatch(ctx, gomock.Len(2)).Return(nil, apperror.Storage(errors.New("constraint failed"))),
		writer.EXPECT().CreateBatch(ctx, gomock.Len(1)).Return(ids(1), nil),
	)

	result, err := svc.Import(ctx, rows)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, []string{
		"Row 4: Available leaves cannot exceed total leaves",
		"Database error (rows 5-6): A storage error occurred: constraint failed",
	}, result.Errors)
	assert.Nil(t, result.Duplicates)
	assert.Equal(t, "Successfully imported 3 employees", result.Message)
}

func TestImporterService_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("empty file", func(t *testing.T) {
		svc := importer.NewService(importerMock.NewMockEmployeeWriter(gomock.NewController(t)), importer.Options{})

		_, err := svc.Import(ctx, nil)

		assert.ErrorIs(t, err, importererrors.ErrNoRows)
	})

	t.Run("too many rows", func(t *testing.T) {
		svc := importer.NewService(importerMock.NewMockEmployeeWriter(gomock.NewController(t)), importer.Options{MaxRows: 1})

		_, err := svc.Import(ctx, []importer.Row{row("A", "IT", "1", "1"), row("B", "IT", "1", "1")})

		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
		assert.Equal(t, "File has 2 rows, the limit is 1", apperror.ToHTTP(err).Message)
	})

	t.Run("identity lookup failure", func(t *testing.T) {
		writer := importerMock.NewMockEmployeeWriter(gomock.NewController(t))
		writer.EXPECT().ExistingIdentities(ctx).Return(nil, apperror.Storage(errors.New("down")))
		svc := importer.NewService(writer, importer.Options{})

		_, err := svc.Import(ctx, []importer.Row{row("A", "IT", "1", "1")})

		assert.True(t, apperror.HasCode(err, apperror.CodeInternalError))
	})
}

func TestImporterService_SQLite(t *testing.T) {
	ctx := context.Background()
	gdb := database.OpenTestSQLite(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	employees := employee.NewService(sqlDB, employee.NewRepository(gdb), nil)
	svc := importer.NewService(employees, importer.Options{BatchSize: 50})

	rows := make([]importer.Row, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, row(fmt.Sprintf("Employee %03d", i), "Ops", "20", "15"))
	}
	rows = append(rows,
		row("Employee 000", "OPS", "20", "20"),
		row("Late", "Ops", "25", "30"),
	)

	result, err := svc.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 120, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, []string{"Employee 000 (OPS)"}, result.Duplicates)

	all, err := employees.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 120)
	assert.Equal(t, 15, all[0].AvailableLeaves)
	assert.Equal(t, 5, all[0].UsedLeaves)

	again, err := svc.Import(ctx, rows[:3])
	require.NoError(t, err)
	assert.Equal(t, 0, again.Imported)
	assert.Equal(t, 3, again.Skipped)
	assert.Len(t, again.Duplicates, 3)
}
