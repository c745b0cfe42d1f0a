package leave

import "time"

type CreateLeaveRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
	Status     string `json:"status"`
}

type LeaveResponse struct {
	ID                 uint      `json:"id"`
	EmployeeID         uint      `json:"employee_id"`
	EmployeeName       string    `json:"employee_name"`
	EmployeeDepartment string    `json:"employee_department"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	Days               int       `json:"days"`
	Reason             string    `json:"reason"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

type CreateLeaveResponse struct {
	LeaveResponse
	AvailableLeaves int `json:"available_leaves"`
}

type DeleteLeaveResponse struct {
	ID              uint `json:"id"`
	EmployeeID      uint `json:"employee_id"`
	DaysRestored    int  `json:"days_restored"`
	AvailableLeaves int  `json:"available_leaves"`
}

func mapToResponse(l LeaveWithEmployee) LeaveResponse {
	return LeaveResponse{
		ID:                 l.ID,
		EmployeeID:         l.EmployeeID,
		EmployeeName:       l.EmployeeName,
		EmployeeDepartment: l.EmployeeDepartment,
		StartDate:          l.StartDate.Format(dateLayout),
		EndDate:            l.EndDate.Format(dateLayout),
		Days:               l.Days,
		Reason:             l.Reason,
		Status:             l.Status,
		CreatedAt:          l.CreatedAt,
	}
}

func mapToListResponse(rows []LeaveWithEmployee) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out
}

type ReasonsResponse struct {
	Reasons []string `json:"reasons"`
}
