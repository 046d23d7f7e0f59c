package dto

import "github.com/noah-isme/desk-portal-api/internal/models"

// CreateDeskRequestRequest carries the employee booking form payload.
type CreateDeskRequestRequest struct {
	FromDate string `json:"from_date" validate:"required,portal_date"`
	ToDate   string `json:"to_date" validate:"required,portal_date"`
	Shift    string `json:"shift" validate:"required,portal_shift"`
	Note     string `json:"note,omitempty"`
}

// DeskRequestListResponse lists desk requests with their lifecycle state.
type DeskRequestListResponse struct {
	Requests []models.DeskRequest `json:"requests"`
}
