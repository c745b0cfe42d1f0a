package dashboard

import "github.com/shopspring/decimal"

// StatsCacheKey holds the cached Stats. Every employee or leave write deletes it.
const StatsCacheKey = "dashboard:stats"

const NotSpecified = "Not Specified"

type DepartmentStats struct {
	Department      string          `json:"department"`
	EmployeeCount   int64           `json:"employee_count"`
	TotalLeaves     int64           `json:"total_leaves"`
	AvailableLeaves int64           `json:"available_leaves"`
	UsedLeaves      int64           `json:"used_leaves"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
}

type StatsResponse struct {
	Year           int               `json:"year"`
	TotalEmployees int64             `json:"total_employees"`
	LeavesThisYear int64             `json:"leaves_this_year"`
	DaysThisYear   int64             `json:"days_this_year"`
	Departments    []DepartmentStats `json:"departments"`
}
