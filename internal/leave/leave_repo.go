package leave

import (
	"context"
	"database/sql"

	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindEmployee(ctx context.Context, employeeID uint) (*EmployeeBalance, error)
	Create(ctx context.Context, l *Leave) error
	DebitBalance(ctx context.Context, employeeID uint, days int) (int64, error)
	CreditBalance(ctx context.Context, employeeID uint, days int) error
	FindByID(ctx context.Context, id uint) (*LeaveWithEmployee, error)
	FindAll(ctx context.Context) ([]LeaveWithEmployee, error)
	FindByEmployee(ctx context.Context, employeeID uint) ([]LeaveWithEmployee, error)
	Delete(ctx context.Context, id uint) (int64, error)
	DistinctReasons(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Bind(ctx, r.db, r.tx)
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("leaves").
		Select("leaves.*, employees.name AS employee_name, employees.department AS employee_department").
		Joins("JOIN employees ON employees.id = leaves.employee_id")
}

func (r *repository) FindEmployee(ctx context.Context, employeeID uint) (*EmployeeBalance, error) {
	var e EmployeeBalance
	err := r.conn(ctx).First(&e, "id = ?", employeeID).Error
	return &e, err
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

// DebitBalance subtracts days only while the balance covers them. Zero rows
// affected means the balance was too low (or the employee is gone).
func (r *repository) DebitBalance(ctx context.Context, employeeID uint, days int) (int64, error) {
	res := r.conn(ctx).
		Model(&EmployeeBalance{}).
		Where("id = ? AND available_leaves >= ?", employeeID, days).
		Updates(map[string]any{
			"available_leaves": gorm.Expr("available_leaves - ?", days),
			"updated_at":       database.NowUTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) CreditBalance(ctx context.Context, employeeID uint, days int) error {
	return r.conn(ctx).
		Model(&EmployeeBalance{}).
		Where("id = ?", employeeID).
		Updates(map[string]any{
			"available_leaves": gorm.Expr("available_leaves + ?", days),
			"updated_at":       database.NowUTC(),
		}).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveWithEmployee, error) {
	var row LeaveWithEmployee
	err := r.joined(ctx).Where("leaves.id = ?", id).Take(&row).Error
	return &row, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveWithEmployee, error) {
	var rows []LeaveWithEmployee
	err := r.joined(ctx).
		Order("leaves.created_at DESC").
		Order("leaves.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uint) ([]LeaveWithEmployee, error) {
	var rows []LeaveWithEmployee
	err := r.joined(ctx).
		Where("leaves.employee_id = ?", employeeID).
		Order("leaves.created_at DESC").
		Order("leaves.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.conn(ctx).Delete(&Leave{}, id)
	return res.RowsAffected, res.Error
}

func (r *repository) DistinctReasons(ctx context.Context) ([]string, error) {
	var reasons []string
	err := r.conn(ctx).
		Model(&Leave{}).
		Where("reason IS NOT NULL AND reason <> ''").
		Distinct().
		Order("reason").
		Pluck("reason", &reasons).Error
	return reasons, err
}
