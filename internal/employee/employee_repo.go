package employee

import (
	"context"
	"database/sql"

	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	CreateBatch(ctx context.Context, empls []Employee) error
	FindAll(ctx context.Context) ([]EmployeeSummary, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindLeaves(ctx context.Context, employeeID uint) ([]LeaveRecord, error)
	ListIdentities(ctx context.Context) ([]Identity, error)
	Update(ctx context.Context, empl *Employee) error
	DeleteLeaves(ctx context.Context, employeeID uint) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) CreateBatch(ctx context.Context, empls []Employee) error {
	if len(empls) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&empls).Error
}

func (r *repository) FindAll(ctx context.Context) ([]EmployeeSummary, error) {
	var rows []EmployeeSummary
	err := r.conn(ctx).
		Table("employees").
		Select("employees.*, (SELECT COUNT(*) FROM leaves WHERE leaves.employee_id = employees.id) AS leave_count").
		Order("employees.name ASC").
		Order("employees.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindLeaves(ctx context.Context, employeeID uint) ([]LeaveRecord, error) {
	var leaves []LeaveRecord
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListIdentities(ctx context.Context) ([]Identity, error) {
	var ids []Identity
	err := r.conn(ctx).
		Model(&Employee{}).
		Select("name", "department").
		Scan(&ids).Error
	return ids, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).
		Model(empl).
		Select("name", "department", "total_leaves", "available_leaves", "updated_at").
		Updates(empl).Error
}

func (r *repository) DeleteLeaves(ctx context.Context, employeeID uint) (int64, error) {
	res := r.conn(ctx).Where("employee_id = ?", employeeID).Delete(&LeaveRecord{})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
