package app

import (
	"context"
	"fmt"

	"go-leave/internal/employee"
	"go-leave/internal/leave"
)

type sampleLeave struct {
	employee  int // index into sampleEmployees
	startDate string
	endDate   string
	reason    string
}

var sampleEmployees = []struct {
	name       string
	department string
	total      int
}{
	{"John Doe", "IT", 25},
	{"Jane Smith", "HR", 30},
	{"Mike Johnson", "Finance", 25},
	{"Sarah Wilson", "Marketing", 28},
}

var sampleLeaves = []sampleLeave{
	{0, "2024-01-15", "2024-01-17", "Personal"},
	{0, "2024-02-20", "2024-02-21", "Medical"},
	{1, "2024-01-10", "2024-01-14", "Vacation"},
	{1, "2024-03-05", "2024-03-07", "Personal"},
	{3, "2024-02-01", "2024-02-10", "Vacation"},
	{3, "2024-03-15", "2024-03-17", "Medical"},
}

// Seed loads the demo data set into an empty database. Leaves go through the
// leave service so balances are debited like any other request. It reports
// false when employees already exist.
func Seed(ctx context.Context, employees employee.Service, leaves leave.Service) (bool, error) {
	existing, err := employees.GetAll(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	ids := make([]uint, len(sampleEmployees))
	for i, e := range sampleEmployees {
		total := e.total
		created, err := employees.Create(ctx, employee.CreateEmployeeRequest{
			Name:        e.name,
			Department:  e.department,
			TotalLeaves: &total,
		})
		if err != nil {
			return false, fmt.Errorf("seed employee %s: %w", e.name, err)
		}
		ids[i] = created.ID
	}

	for _, l := range sampleLeaves {
		_, err := leaves.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: ids[l.employee],
			StartDate:  l.startDate,
			EndDate:    l.endDate,
			Reason:     l.reason,
		})
		if err != nil {
			return false, fmt.Errorf("seed leave %s..%s: %w", l.startDate, l.endDate, err)
		}
	}

	return true, nil
}
