package dto

import "github.com/noah-isme/desk-portal-api/internal/models"

// AssignDeskRequest carries the admin assignment form payload. The form
// works with desk numbers and employee codes; the service resolves them
// to ids before calling the desk API.
type AssignDeskRequest struct {
	DeskNumber     string `json:"desk_number" validate:"required"`
	EmployeeCode   string `json:"employee_code" validate:"required"`
	AssignmentType string `json:"assignment_type" validate:"required,oneof=PERMANENT TEMPORARY"`
	Date           string `json:"date,omitempty" validate:"omitempty,portal_date"`
	Notes          string `json:"notes,omitempty"`
}

// UpdateDeskStatusRequest flips a desk between operational states.
type UpdateDeskStatusRequest struct {
	Status                 string `json:"status" validate:"required,oneof=AVAILABLE ASSIGNED MAINTENANCE INACTIVE"`
	Reason                 string `json:"reason,omitempty"`
	Notes                  string `json:"notes,omitempty"`
	ExpectedResolutionDate string `json:"expected_resolution_date,omitempty" validate:"omitempty,portal_date"`
}

// CreateDeskRequest registers a new desk in the inventory.
type CreateDeskRequest struct {
	DeskNumber   string `json:"desk_number" validate:"required"`
	FloorID      string `json:"floor_id" validate:"required"`
	DepartmentID string `json:"department_id,omitempty"`
	Location     string `json:"location,omitempty"`
}

// DeskBoardResponse is the reconciled desk grid for a dashboard.
type DeskBoardResponse struct {
	Desks []models.DeskView     `json:"desks"`
	Stats models.InventoryStats `json:"stats"`
}

// DeskDetailResponse combines a desk's view row with its change history
// and upcoming schedule for the detail drawer.
type DeskDetailResponse struct {
	Desk     models.DeskView             `json:"desk"`
	History  []models.StatusHistoryEntry `json:"history"`
	Schedule []models.ScheduleEntry      `json:"schedule"`
}

// EmployeeHistoryResponse is an employee's own assignment timeline.
type EmployeeHistoryResponse struct {
	Current *models.HistoryEntry  `json:"current"`
	Entries []models.HistoryEntry `json:"entries"`
}
