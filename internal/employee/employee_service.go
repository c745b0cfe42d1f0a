package employee

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go-leave/internal/dashboard"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeDetailResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) (DeleteEmployeeResponse, error)
	ExistingIdentities(ctx context.Context) ([]Identity, error)
	CreateBatch(ctx context.Context, batch []NewEmployee) ([]uint, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		logger: l,
	}
}

func validateTotal(name string, total *int) (string, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, employeeerrors.ErrNameRequired
	}
	if total == nil {
		return "", 0, employeeerrors.ErrTotalLeavesRequired
	}
	if *total < 0 {
		return "", 0, employeeerrors.ErrNegativeLeaves
	}
	return name, *total, nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
		zap.String("department", req.Department),
	)

	name, total, err := validateTotal(req.Name, req.TotalLeaves)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.Storage(err)
	}
	defer tx.Rollback()

	empl := &Employee{
		Name:            name,
		Department:      normalizeDepartment(req.Department),
		TotalLeaves:     total,
		AvailableLeaves: total,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeCreated, *empl, 0); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.Storage(err)
	}

	s.invalidateStats(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", empl.ID),
	)

	return mapToResponse(EmployeeSummary{Employee: *empl}), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeDetailResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Uint("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.Uint("employee_id", id), zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}

	leaves, err := s.repo.FindLeaves(ctx, id)
	if err != nil {
		s.logger.Error("get employee leaves failed", zap.Uint("employee_id", id), zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}

	return EmployeeDetailResponse{
		EmployeeResponse: mapToResponse(EmployeeSummary{Employee: *empl, LeaveCount: len(leaves)}),
		Leaves:           mapLeaveRecords(leaves),
	}, nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	name, total, err := validateTotal(req.Name, req.TotalLeaves)
	if err != nil {
		s.logger.Warn("update employee validation failed", zap.Uint("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Storage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Uint("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	used := empl.UsedLeaves()
	if total < used {
		s.logger.Warn("update employee total below used",
			zap.Uint("employee_id", id),
			zap.Int("total_leaves", total),
			zap.Int("used_leaves", used),
		)
		return EmployeeResponse{}, employeeerrors.ErrTotalBelowUsed.WithMessage(
			fmt.Sprintf("Total leaves cannot be lower than leaves already used (%d)", used),
		)
	}

	empl.Name = name
	empl.Department = normalizeDepartment(req.Department)
	empl.TotalLeaves = total
	empl.AvailableLeaves = total - used

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Uint("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeUpdated, *empl, 0); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Storage(err)
	}

	s.invalidateStats(ctx)
	s.logger.Info("update employee success", zap.Uint("employee_id", id))

	return mapToResponse(EmployeeSummary{Employee: *empl}), nil
}

func (s *service) Delete(ctx context.Context, id uint) (DeleteEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return DeleteEmployeeResponse{}, apperror.Storage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("delete employee fetch existing failed", zap.Uint("employee_id", id), zap.Error(err))
		return DeleteEmployeeResponse{}, mapRepositoryError(err)
	}

	removed, err := qtx.DeleteLeaves(ctx, id)
	if err != nil {
		s.logger.Error("delete employee leaves failed", zap.Uint("employee_id", id), zap.Error(err))
		return DeleteEmployeeResponse{}, mapRepositoryError(err)
	}

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.Uint("employee_id", id), zap.Error(err))
		return DeleteEmployeeResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return DeleteEmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if err := s.enqueue(ctx, tx, events.EmployeeDeleted, *empl, int(removed)); err != nil {
		return DeleteEmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return DeleteEmployeeResponse{}, apperror.Storage(err)
	}

	s.invalidateStats(ctx)
	s.logger.Info("delete employee success",
		zap.Uint("employee_id", id),
		zap.Int64("leaves_removed", removed),
	)

	return DeleteEmployeeResponse{ID: id, LeavesRemoved: int(removed)}, nil
}

func (s *service) ExistingIdentities(ctx context.Context) ([]Identity, error) {
	ids, err := s.repo.ListIdentities(ctx)
	if err != nil {
		s.logger.Error("list employee identities failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return ids, nil
}

// CreateBatch writes pre-validated rows in one transaction. Rows whose
// available is below total keep the difference as opening consumption.
func (s *service) CreateBatch(ctx context.Context, batch []NewEmployee) ([]uint, error) {
	rid := contextutil.GetRequestID(ctx)
	if len(batch) == 0 {
		return nil, nil
	}

	empls := make([]Employee, len(batch))
	for i, n := range batch {
		empls[i] = Employee{
			Name:            strings.TrimSpace(n.Name),
			Department:      normalizeDepartment(n.Department),
			TotalLeaves:     n.TotalLeaves,
			AvailableLeaves: n.AvailableLeaves,
			OpeningUsed:     n.TotalLeaves - n.AvailableLeaves,
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee batch begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.Storage(err)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateBatch(ctx, empls); err != nil {
		s.logger.Error("create employee batch persist failed",
			zap.String("request_id", rid),
			zap.Int("size", len(empls)),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	ids := make([]uint, len(empls))
	for i, e := range empls {
		ids[i] = e.ID
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", 0, events.EmployeeImported, events.EmployeeLifecycleTopic,
			events.EmployeesImportedEvent{
				EventType:   events.EmployeeImported,
				RequestID:   rid,
				EmployeeIDs: ids,
				OccurredAt:  time.Now().UTC(),
			})
		if err != nil {
			return nil, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee batch outbox persist failed", zap.Error(err))
			return nil, apperror.Storage(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee batch commit failed", zap.Error(err))
		return nil, apperror.Storage(err)
	}

	s.invalidateStats(ctx)
	s.logger.Info("create employee batch success",
		zap.String("request_id", rid),
		zap.Int("size", len(ids)),
	)
	return ids, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, empl Employee, leavesRemoved int) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent(rid, "employee", empl.ID, eventType, events.EmployeeLifecycleTopic,
		events.EmployeeEvent{
			EventType:       eventType,
			RequestID:       rid,
			EmployeeID:      empl.ID,
			Name:            empl.Name,
			Department:      empl.Department,
			TotalLeaves:     empl.TotalLeaves,
			AvailableLeaves: empl.AvailableLeaves,
			LeavesRemoved:   leavesRemoved,
			OccurredAt:      time.Now().UTC(),
		})
	if err != nil {
		s.logger.Error("marshal employee event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("employee outbox persist failed",
			zap.Uint("employee_id", empl.ID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return apperror.Storage(err)
	}
	return nil
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, dashboard.StatsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate dashboard cache",
			zap.Error(err),
			zap.String("key", dashboard.StatsCacheKey),
		)
	}
}

func mapToResponse(row EmployeeSummary) EmployeeResponse {
	return EmployeeResponse{
		ID:              row.ID,
		Name:            row.Name,
		Department:      row.Department,
		TotalLeaves:     row.TotalLeaves,
		AvailableLeaves: row.AvailableLeaves,
		UsedLeaves:      row.UsedLeaves(),
		LeaveCount:      row.LeaveCount,
		CreatedAt:       row.CreatedAt,
	}
}

func mapToListResponse(rows []EmployeeSummary) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}

func mapLeaveRecords(leaves []LeaveRecord) []LeaveRecordResponse {
	res := make([]LeaveRecordResponse, len(leaves))
	for i, l := range leaves {
		res[i] = LeaveRecordResponse{
			ID:         l.ID,
			EmployeeID: l.EmployeeID,
			StartDate:  l.StartDate.Format("2006-01-02"),
			EndDate:    l.EndDate.Format("2006-01-02"),
			Days:       l.Days,
			Reason:     l.Reason,
			Status:     l.Status,
			CreatedAt:  l.CreatedAt,
		}
	}
	return res
}
