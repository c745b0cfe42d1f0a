package leave

import (
	"slices"
	"strings"
	"time"
)

const (
	StatusApproved = "approved"
	dateLayout     = "2006-01-02"
	secondsPerDay  = 24 * 60 * 60
)

type Leave struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Reason     string
	Status     string
	CreatedAt  time.Time
}

func (Leave) TableName() string { return "leaves" }

// LeaveWithEmployee is a leave row joined with its owner's name and department.
type LeaveWithEmployee struct {
	Leave
	EmployeeName       string
	EmployeeDepartment string
}

// EmployeeBalance is the slice of the employees table the ledger reads and debits.
type EmployeeBalance struct {
	ID              uint `gorm:"primaryKey"`
	Name            string
	Department      string
	TotalLeaves     int
	AvailableLeaves int
	UpdatedAt       time.Time
}

func (EmployeeBalance) TableName() string { return "employees" }

// InclusiveDays counts calendar days from start to end, both included.
// Same-day leave is one day. A range ending before it starts yields <= 0.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1
}

// DefaultReasons are offered even before any leave uses them.
var DefaultReasons = []string{
	"Personal", "Medical", "Vacation", "Emergency", "Family",
	"Sick Leave", "Maternity", "Paternity", "Study Leave", "Other",
}

// MergeReasons returns the sorted union of both lists, trimmed and without
// blanks or exact duplicates.
func MergeReasons(defaults, stored []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(stored))
	out := make([]string, 0, len(defaults)+len(stored))
	for _, list := range [][]string{defaults, stored} {
		for _, r := range list {
			r = strings.TrimSpace(r)
			if r == "" {
				continue
			}
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return out
}
