package leave

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go-leave/internal/dashboard"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (CreateLeaveResponse, error)
	Delete(ctx context.Context, id uint) (DeleteLeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID uint) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id uint) (LeaveResponse, error)
	Reasons(ctx context.Context) ([]string, error)
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
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		logger: l,
	}
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (CreateLeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return CreateLeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return CreateLeaveResponse{}, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return CreateLeaveResponse{}, leaveerrors.ErrReasonRequired
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = StatusApproved
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CreateLeaveResponse{}, apperror.Storage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Warn("create leave employee lookup failed",
			zap.String("request_id", rid),
			zap.Uint("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return CreateLeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}

	days := InclusiveDays(startDate, endDate)
	if days <= 0 {
		return CreateLeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	insufficient := leaveerrors.ErrInsufficientBalance.WithMessage(fmt.Sprintf(
		"Insufficient leave balance. Available: %d, Requested: %d", empl.AvailableLeaves, days,
	))
	if days > empl.AvailableLeaves {
		s.logger.Warn("create leave insufficient balance",
			zap.String("request_id", rid),
			zap.Uint("employee_id", empl.ID),
			zap.Int("available", empl.AvailableLeaves),
			zap.Int("requested", days),
		)
		return CreateLeaveResponse{}, insufficient
	}

	l := &Leave{
		EmployeeID: empl.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       days,
		Reason:     reason,
		Status:     status,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return CreateLeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}

	affected, err := qtx.DebitBalance(ctx, empl.ID, days)
	if err != nil {
		s.logger.Error("create leave debit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateLeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}
	if affected == 0 {
		s.logger.Warn("create leave debit lost race", zap.Uint("employee_id", empl.ID))
		return CreateLeaveResponse{}, insufficient
	}

	available := empl.AvailableLeaves - days
	if err := s.enqueue(ctx, tx, events.LeaveCreated, *l, available); err != nil {
		return CreateLeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateLeaveResponse{}, apperror.Storage(err)
	}

	s.invalidateStats(ctx)
	s.logger.Info("create leave success", append(contextutil.ExtractMetadata(ctx).Fields(),
		zap.Uint("leave_id", l.ID),
		zap.Uint("employee_id", empl.ID),
		zap.Int("days", days),
	)...)

	return CreateLeaveResponse{
		LeaveResponse: mapToResponse(LeaveWithEmployee{
			Leave:              *l,
			EmployeeName:       empl.Name,
			EmployeeDepartment: empl.Department,
		}),
		AvailableLeaves: available,
	}, nil
}

// Delete removes the record and gives its days back to the owner. The credit
// is not capped at the employee's total.
func (s *service) Delete(ctx context.Context, id uint) (DeleteLeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete leave requested", zap.String("request_id", rid), zap.Uint("leave_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.Error(err))
		return DeleteLeaveResponse{}, apperror.Storage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("delete leave fetch existing failed", zap.Uint("leave_id", id), zap.Error(err))
		return DeleteLeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete leave failed", zap.Uint("leave_id", id), zap.Error(err))
		return DeleteLeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if affected == 0 {
		return DeleteLeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	if err := qtx.CreditBalance(ctx, existing.EmployeeID, existing.Days); err != nil {
		s.logger.Error("delete leave credit failed", zap.Uint("leave_id", id), zap.Error(err))
		return DeleteLeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}

	empl, err := qtx.FindEmployee(ctx, existing.EmployeeID)
	if err != nil {
		s.logger.Error("delete leave reload balance failed", zap.Uint("leave_id", id), zap.Error(err))
		return DeleteLeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}

	if err := s.enqueue(ctx, tx, events.LeaveDeleted, existing.Leave, empl.AvailableLeaves); err != nil {
		return DeleteLeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.Error(err))
		return DeleteLeaveResponse{}, apperror.Storage(err)
	}

	s.invalidateStats(ctx)
	s.logger.Info("delete leave success", append(contextutil.ExtractMetadata(ctx).Fields(),
		zap.Uint("leave_id", id),
		zap.Int("days_restored", existing.Days),
	)...)

	return DeleteLeaveResponse{
		ID:              id,
		EmployeeID:      existing.EmployeeID,
		DaysRestored:    existing.Days,
		AvailableLeaves: empl.AvailableLeaves,
	}, nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	s.logger.Debug("get all leaves requested")

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.Error(err))
		return nil, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID uint) ([]LeaveResponse, error) {
	s.logger.Debug("get employee leaves requested", zap.Uint("employee_id", employeeID))

	if _, err := s.repo.FindEmployee(ctx, employeeID); err != nil {
		s.logger.Warn("get employee leaves lookup failed", zap.Uint("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get employee leaves failed", zap.Uint("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (LeaveResponse, error) {
	s.logger.Debug("get leave by id requested", zap.Uint("leave_id", id))

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get leave by id failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	return mapToResponse(*row), nil
}

// Reasons lists the stored reasons together with DefaultReasons. A failed
// lookup is logged and only the defaults are returned.
func (s *service) Reasons(ctx context.Context) ([]string, error) {
	stored, err := s.repo.DistinctReasons(ctx)
	if err != nil {
		s.logger.Warn("load stored leave reasons failed", zap.Error(err))
		stored = nil
	}
	return MergeReasons(DefaultReasons, stored), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, l Leave, availableAfter int) error {
	if s.outbox == nil {
		return nil
	}

	md := contextutil.ExtractMetadata(ctx)
	rid := md.RequestID
	event, err := kafka.NewOutboxEvent(rid, "leave", l.ID, eventType, events.LeaveLedgerTopic,
		events.LeaveEvent{
			EventType:      eventType,
			RequestID:      rid,
			ActorID:        md.UserID,
			LeaveID:        l.ID,
			EmployeeID:     l.EmployeeID,
			StartDate:      l.StartDate.Format(dateLayout),
			EndDate:        l.EndDate.Format(dateLayout),
			Days:           l.Days,
			AvailableAfter: availableAfter,
			OccurredAt:     time.Now().UTC(),
		})
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.Uint("leave_id", l.ID),
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
		s.logger.Error("failed to invalidate dashboard cache", zap.Error(err))
	}
}
