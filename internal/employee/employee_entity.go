package employee

import (
	"strings"
	"time"
)

const DefaultDepartment = "Not Specified"

type Employee struct {
	ID              uint `gorm:"primaryKey"`
	Name            string
	Department      string
	TotalLeaves     int
	AvailableLeaves int
	// OpeningUsed is consumption recorded before the employee entered the
	// ledger, e.g. an imported row whose available is below its total.
	OpeningUsed int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Employee) TableName() string { return "employees" }

func (e Employee) UsedLeaves() int {
	return e.TotalLeaves - e.AvailableLeaves
}

// EmployeeSummary is an employee row plus its number of leave records.
type EmployeeSummary struct {
	Employee
	LeaveCount int
}

// LeaveRecord is the read-only view of an employee's leave history.
type LeaveRecord struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Reason     string
	Status     string
	CreatedAt  time.Time
}

func (LeaveRecord) TableName() string { return "leaves" }

// Identity is the (name, department) pair duplicate detection works on.
type Identity struct {
	Name       string
	Department string
}

// Key folds case and surrounding space so identities compare the way the
// importer expects.
func (i Identity) Key() string {
	return strings.ToLower(strings.TrimSpace(i.Name)) + "\x00" + strings.ToLower(strings.TrimSpace(i.Department))
}

func normalizeDepartment(d string) string {
	d = strings.TrimSpace(d)
	if d == "" {
		return DefaultDepartment
	}
	return d
}
