package dto

import "github.com/noah-isme/desk-portal-api/internal/models"

// CreateFloorRequest registers a floor in the admin configuration. An
// optional department can be created alongside it.
type CreateFloorRequest struct {
	Name           string `json:"name" validate:"required"`
	Number         int    `json:"number" validate:"required,min=1"`
	DepartmentName string `json:"department_name,omitempty"`
}

// CreateDepartmentRequest places a department on an existing floor.
type CreateDepartmentRequest struct {
	Name    string `json:"name" validate:"required"`
	FloorID string `json:"floor_id" validate:"required"`
}

// AutoAssignmentUpdateRequest toggles automatic desk allocation.
type AutoAssignmentUpdateRequest struct {
	Enabled bool `json:"enabled"`
}

// AutoAssignmentResponse reports the current toggle state.
type AutoAssignmentResponse struct {
	Enabled bool `json:"enabled"`
}

// FloorListResponse lists configured floors with their departments.
type FloorListResponse struct {
	Floors []models.Floor `json:"floors"`
}

// DepartmentListResponse lists departments across all floors.
type DepartmentListResponse struct {
	Departments []models.Department `json:"departments"`
}

// EmployeeListResponse lists employee profiles for assignment pickers.
type EmployeeListResponse struct {
	Employees []models.Employee `json:"employees"`
}
