package employee

import "time"

type CreateEmployeeRequest struct {
	Name        string `json:"name" binding:"required"`
	Department  string `json:"department"`
	TotalLeaves *int   `json:"total_leaves" binding:"required,min=0,max=2147483647"`
}

type UpdateEmployeeRequest struct {
	Name        string `json:"name" binding:"required"`
	Department  string `json:"department"`
	TotalLeaves *int   `json:"total_leaves" binding:"required,min=0,max=2147483647"`
}

// NewEmployee is one pre-validated row written by the bulk import.
type NewEmployee struct {
	Name            string
	Department      string
	TotalLeaves     int
	AvailableLeaves int
}

type EmployeeResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Department      string    `json:"department"`
	TotalLeaves     int       `json:"total_leaves"`
	AvailableLeaves int       `json:"available_leaves"`
	UsedLeaves      int       `json:"used_leaves"`
	LeaveCount      int       `json:"leave_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type LeaveRecordResponse struct {
	ID         uint      `json:"id"`
	EmployeeID uint      `json:"employee_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Days       int       `json:"days"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type EmployeeDetailResponse struct {
	EmployeeResponse
	Leaves []LeaveRecordResponse `json:"leaves"`
}

type DeleteEmployeeResponse struct {
	ID            uint `json:"id"`
	LeavesRemoved int  `json:"leaves_removed"`
}
