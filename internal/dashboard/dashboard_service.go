package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-leave/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Service {
	return NewServiceWithClock(repo, rdb, ttl, time.Now, logger...)
}

func NewServiceWithClock(repo Repository, rdb *redis.Client, ttl time.Duration, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		sf:     &singleflight.Group{},
		now:    now,
		logger: l,
	}
}

func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, StatsCacheKey).Result()
		switch {
		case err == nil:
			var resp StatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil && resp.Year == s.now().UTC().Year() {
				return resp, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(StatsCacheKey, func() (interface{}, error) {
		resp, err := s.compute(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, StatsCacheKey, data, s.ttl).Err(); err != nil {
					s.logger.Warn("dashboard cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return StatsResponse{}, err
	}

	return v.(StatsResponse), nil
}

func (s *service) compute(ctx context.Context) (StatsResponse, error) {
	year := s.now().UTC().Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	total, err := s.repo.CountEmployees(ctx)
	if err != nil {
		s.logger.Error("count employees failed", zap.Error(err))
		return StatsResponse{}, apperror.Storage(err)
	}

	leaves, err := s.repo.LeaveTotals(ctx, from, to)
	if err != nil {
		s.logger.Error("leave totals failed", zap.Int("year", year), zap.Error(err))
		return StatsResponse{}, apperror.Storage(err)
	}

	rows, err := s.repo.DepartmentRollup(ctx)
	if err != nil {
		s.logger.Error("department rollup failed", zap.Error(err))
		return StatsResponse{}, apperror.Storage(err)
	}

	departments := make([]DepartmentStats, len(rows))
	for i, r := range rows {
		departments[i] = toDepartmentStats(r)
	}

	return StatsResponse{
		Year:           year,
		TotalEmployees: total,
		LeavesThisYear: leaves.Count,
		DaysThisYear:   leaves.Days,
		Departments:    departments,
	}, nil
}

// toDepartmentStats adds used days and the percentage of entitlement used,
// rounded to two places. An empty entitlement reports 0.
func toDepartmentStats(r DepartmentRow) DepartmentStats {
	used := r.TotalLeaves - r.AvailableLeaves
	rate := decimal.Zero
	if r.TotalLeaves > 0 {
		rate = decimal.NewFromInt(used).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(r.TotalLeaves)).
			Round(2)
	}

	department := r.Department
	if department == "" {
		department = NotSpecified
	}

	return DepartmentStats{
		Department:      department,
		EmployeeCount:   r.EmployeeCount,
		TotalLeaves:     r.TotalLeaves,
		AvailableLeaves: r.AvailableLeaves,
		UsedLeaves:      used,
		UtilizationRate: rate,
	}
}
