package importer

import (
	"context"
	"fmt"

	"go-leave/internal/employee"
	importererrors "go-leave/internal/importer/errors"
	"go-leave/internal/shared/contextutil"

	"go.uber.org/zap"
)

const DefaultBatchSize = 50

// EmployeeWriter is the part of the employee store the importer needs.
type EmployeeWriter interface {
	ExistingIdentities(ctx context.Context) ([]employee.Identity, error)
	CreateBatch(ctx context.Context, batch []employee.NewEmployee) ([]uint, error)
}

type Options struct {
	BatchSize int
	// MaxRows rejects larger files outright; zero means unlimited.
	MaxRows int
}

//go:generate mockgen -source=importer_service.go -destination=mock/importer_service_mock.go -package=mock
type Service interface {
	Import(ctx context.Context, rows []Row) (ImportResult, error)
	Template() ([]byte, error)
}

type service struct {
	employees EmployeeWriter
	opts      Options
	logger    *zap.Logger
}

func NewService(employees EmployeeWriter, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("importer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("importer.service")
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}
	return &service{employees: employees, opts: opts, logger: l}
}

// Import validates every row, then writes accepted rows batch by batch. A
// failed batch is reported and counted as skipped; later batches still run.
func (s *service) Import(ctx context.Context, rows []Row) (ImportResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("import requested", zap.String("request_id", rid), zap.Int("rows", len(rows)))

	if len(rows) == 0 {
		return ImportResult{}, importererrors.ErrNoRows
	}
	if s.opts.MaxRows > 0 && len(rows) > s.opts.MaxRows {
		return ImportResult{}, importererrors.ErrTooManyRows.WithMessage(
			fmt.Sprintf("File has %d rows, the limit is %d", len(rows), s.opts.MaxRows),
		)
	}

	existing, err := s.employees.ExistingIdentities(ctx)
	if err != nil {
		s.logger.Error("import load existing identities failed", zap.String("request_id", rid), zap.Error(err))
		return ImportResult{}, err
	}

	v := Validate(rows, existing)
	result := ImportResult{
		Skipped:    v.Skipped(),
		Errors:     v.Errors,
		Duplicates: v.Duplicates,
	}

	for start := 0; start < len(v.Accepted); start += s.opts.BatchSize {
		end := min(start+s.opts.BatchSize, len(v.Accepted))
		batch := v.Accepted[start:end]

		ids, err := s.employees.CreateBatch(ctx, batch)
		if err != nil {
			first, last := v.RowNumbers[start], v.RowNumbers[end-1]
			s.logger.Error("import batch failed",
				zap.String("request_id", rid),
				zap.Int("first_row", first),
				zap.Int("last_row", last),
				zap.Error(err),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("Database error (rows %d-%d): %s", first, last, err.Error()))
			result.Skipped += len(batch)
			continue
		}
		result.Imported += len(ids)
	}

	result.Message = fmt.Sprintf("Successfully imported %d employees", result.Imported)
	s.logger.Info("import finished",
		zap.String("request_id", rid),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("duplicates", len(result.Duplicates)),
	)
	return result, nil
}
