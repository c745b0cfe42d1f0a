package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DepartmentRow is one GROUP BY bucket before derived figures are added.
type DepartmentRow struct {
	Department      string
	EmployeeCount   int64
	TotalLeaves     int64
	AvailableLeaves int64
}

type LeaveTotals struct {
	Count int64
	Days  int64
}

type Repository interface {
	CountEmployees(ctx context.Context) (int64, error)
	LeaveTotals(ctx context.Context, from, to time.Time) (LeaveTotals, error)
	DepartmentRollup(ctx context.Context) ([]DepartmentRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Table("employees").Count(&total).Error
	return total, err
}

// LeaveTotals counts leaves created in [from, to).
func (r *repository) LeaveTotals(ctx context.Context, from, to time.Time) (LeaveTotals, error) {
	var totals LeaveTotals
	err := r.db.WithContext(ctx).
		Table("leaves").
		Select("COUNT(*) AS count, COALESCE(SUM(days), 0) AS days").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&totals).Error
	return totals, err
}

func (r *repository) DepartmentRollup(ctx context.Context) ([]DepartmentRow, error) {
	const bucket = "COALESCE(NULLIF(TRIM(department), ''), '" + NotSpecified + "')"

	var rows []DepartmentRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select(bucket + " AS department, " +
			"COUNT(*) AS employee_count, " +
			"COALESCE(SUM(total_leaves), 0) AS total_leaves, " +
			"COALESCE(SUM(available_leaves), 0) AS available_leaves").
		Group(bucket).
		Order("department ASC").
		Scan(&rows).Error
	return rows, err
}
