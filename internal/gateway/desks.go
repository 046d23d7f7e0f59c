package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

// DeskFilter narrows a desk listing.
type DeskFilter struct {
	Status string
	Floor  int
}

// ListDesks fetches one page of the desk inventory.
func (c *Client) ListDesks(ctx context.Context, token string, filter DeskFilter, pageNum int) ([]models.Desk, models.Pagination, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Floor > 0 {
		query.Set("floor", strconv.Itoa(filter.Floor))
	}
	query.Set("page", strconv.Itoa(pageNum))
	query.Set("size", strconv.Itoa(c.pageSize))

	var out page[models.Desk]
	if err := c.do(ctx, http.MethodGet, "/desks/", token, query, nil, &out); err != nil {
		return nil, models.Pagination{}, err
	}
	return out.Data, models.Pagination{Page: out.Page, PageSize: out.Size, TotalCount: out.Total}, nil
}

// ListAllDesks walks every page of the desk inventory.
func (c *Client) ListAllDesks(ctx context.Context, token string, filter DeskFilter) ([]models.Desk, error) {
	var desks []models.Desk
	for pageNum := 1; ; pageNum++ {
		batch, pagination, err := c.ListDesks(ctx, token, filter, pageNum)
		if err != nil {
			return nil, err
		}
		desks = append(desks, batch...)
		if len(batch) == 0 || len(desks) >= pagination.TotalCount {
			break
		}
	}
	return desks, nil
}

// FindDeskByNumber locates a desk through the floor encoded in its
// number (first digit of a 3-digit number, thousands of a 4-digit one).
func (c *Client) FindDeskByNumber(ctx context.Context, token string, deskNumber models.DeskNumber) (*models.Desk, error) {
	floor, err := deskNumber.Floor()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	desks, err := c.ListAllDesks(ctx, token, DeskFilter{Floor: floor})
	if err != nil {
		return nil, err
	}
	for i := range desks {
		if desks[i].DeskNumber == deskNumber {
			return &desks[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "desk not found")
}

type assignDeskPayload struct {
	DeskID         string `json:"desk_id"`
	EmployeeID     string `json:"employee_id"`
	AssignmentType string `json:"assignment_type"`
	Notes          string `json:"notes,omitempty"`
	Date           string `json:"date,omitempty"`
}

// AssignResult is the upstream confirmation of an assignment.
type AssignResult struct {
	Message    string            `json:"message"`
	DeskNumber models.DeskNumber `json:"desk_number"`
	EmployeeID string            `json:"employee_id"`
	AssignedBy string            `json:"assigned_by"`
}

// AssignDesk assigns a desk to an employee by their upstream ids.
func (c *Client) AssignDesk(ctx context.Context, token, deskID, employeeID, assignmentType, notes, date string) (*AssignResult, error) {
	payload := assignDeskPayload{
		DeskID:         deskID,
		EmployeeID:     employeeID,
		AssignmentType: assignmentType,
		Notes:          notes,
		Date:           date,
	}
	var out AssignResult
	if err := c.do(ctx, http.MethodPost, "/desks/assign-desk", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type updateDeskStatusPayload struct {
	CurrentStatus          string `json:"current_status"`
	Reason                 string `json:"reason,omitempty"`
	Notes                  string `json:"notes,omitempty"`
	ExpectedResolutionDate string `json:"expected_resolution_date,omitempty"`
}

// StatusUpdateResult is the upstream confirmation of a status change.
type StatusUpdateResult struct {
	Message    string            `json:"message"`
	DeskNumber models.DeskNumber `json:"desk_number"`
	Floor      int               `json:"floor"`
	NewStatus  models.DeskStatus `json:"new_status"`
}

// UpdateDeskStatus changes a desk's operational status by desk number.
func (c *Client) UpdateDeskStatus(ctx context.Context, token string, deskNumber models.DeskNumber, status, reason, notes, expectedResolution string) (*StatusUpdateResult, error) {
	payload := updateDeskStatusPayload{
		CurrentStatus:          status,
		Reason:                 reason,
		Notes:                  notes,
		ExpectedResolutionDate: expectedResolution,
	}
	var out StatusUpdateResult
	if err := c.do(ctx, http.MethodPut, "/desks/by-number/"+string(deskNumber), token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeskHistory fetches the status change log for a desk.
func (c *Client) DeskHistory(ctx context.Context, token string, deskNumber models.DeskNumber) ([]models.StatusHistoryEntry, error) {
	var out []models.StatusHistoryEntry
	if err := c.do(ctx, http.MethodGet, "/desks/by-number/"+string(deskNumber)+"/history", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createDeskPayload struct {
	DeskNumber   string `json:"desk_number"`
	FloorID      string `json:"floor_id"`
	DepartmentID string `json:"department_id,omitempty"`
	Location     string `json:"location,omitempty"`
}

// CreateDesk registers a new desk in the upstream inventory.
func (c *Client) CreateDesk(ctx context.Context, token, deskNumber, floorID, departmentID, location string) (*models.Desk, error) {
	payload := createDeskPayload{
		DeskNumber:   deskNumber,
		FloorID:      floorID,
		DepartmentID: departmentID,
		Location:     location,
	}
	var out models.Desk
	if err := c.do(ctx, http.MethodPost, "/admin-config/desks", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
