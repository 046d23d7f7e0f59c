package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/desk-portal-api/internal/models"
)

// ListEmployees fetches all employee profiles.
func (c *Client) ListEmployees(ctx context.Context, token string) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.do(ctx, http.MethodGet, "/employees/", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignmentFilter narrows an assignment listing.
type AssignmentFilter struct {
	EmployeeCode string
	DeskNumber   models.DeskNumber
	AssignedBy   string
	FromDate     string
	ToDate       string
}

func (f AssignmentFilter) query(pageNum, size int) url.Values {
	query := url.Values{}
	if f.EmployeeCode != "" {
		query.Set("employee_code", f.EmployeeCode)
	}
	if f.DeskNumber != "" {
		query.Set("desk_number", string(f.DeskNumber))
	}
	if f.AssignedBy != "" {
		query.Set("assigned_by", f.AssignedBy)
	}
	if f.FromDate != "" {
		query.Set("from_date", f.FromDate)
	}
	if f.ToDate != "" {
		query.Set("to_date", f.ToDate)
	}
	query.Set("page", strconv.Itoa(pageNum))
	query.Set("size", strconv.Itoa(size))
	return query
}

// ListAssignments fetches one page of the assignment ledger.
func (c *Client) ListAssignments(ctx context.Context, token string, filter AssignmentFilter, pageNum int) ([]models.Assignment, models.Pagination, error) {
	var out page[models.Assignment]
	if err := c.do(ctx, http.MethodGet, "/assignments/", token, filter.query(pageNum, c.pageSize), nil, &out); err != nil {
		return nil, models.Pagination{}, err
	}
	return out.Data, models.Pagination{Page: out.Page, PageSize: out.Size, TotalCount: out.Total}, nil
}

// ListAllAssignments walks every page of the assignment ledger. Upstream
// order is preserved, which matters for tie-breaking equal dates.
func (c *Client) ListAllAssignments(ctx context.Context, token string, filter AssignmentFilter) ([]models.Assignment, error) {
	var assignments []models.Assignment
	for pageNum := 1; ; pageNum++ {
		batch, pagination, err := c.ListAssignments(ctx, token, filter, pageNum)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, batch...)
		if len(batch) == 0 || len(assignments) >= pagination.TotalCount {
			break
		}
	}
	return assignments, nil
}

// ListFloors fetches the floor configuration with nested departments.
func (c *Client) ListFloors(ctx context.Context, token string) ([]models.Floor, error) {
	var out []models.Floor
	if err := c.do(ctx, http.MethodGet, "/admin-config/floors", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDepartments fetches all departments across floors.
func (c *Client) ListDepartments(ctx context.Context, token string) ([]models.Department, error) {
	var out []models.Department
	if err := c.do(ctx, http.MethodGet, "/admin-config/departments", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createFloorPayload struct {
	Name           string `json:"name"`
	Number         int    `json:"number"`
	DepartmentName string `json:"department_name,omitempty"`
}

// CreateFloor registers a floor, optionally with an initial department.
func (c *Client) CreateFloor(ctx context.Context, token, name string, number int, departmentName string) (*models.Floor, error) {
	payload := createFloorPayload{Name: name, Number: number, DepartmentName: departmentName}
	var out models.Floor
	if err := c.do(ctx, http.MethodPost, "/admin-config/floors", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type createDepartmentPayload struct {
	Name    string `json:"name"`
	FloorID string `json:"floor_id"`
}

// CreateDepartment places a department on an existing floor.
func (c *Client) CreateDepartment(ctx context.Context, token, name, floorID string) (*models.Department, error) {
	payload := createDepartmentPayload{Name: name, FloorID: floorID}
	var out models.Department
	if err := c.do(ctx, http.MethodPost, "/admin-config/departments", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type autoAssignment struct {
	Enabled bool `json:"enabled"`
}

// GetAutoAssignment reads the auto-assignment toggle.
func (c *Client) GetAutoAssignment(ctx context.Context, token string) (bool, error) {
	var out autoAssignment
	if err := c.do(ctx, http.MethodGet, "/settings/auto-assignment", token, nil, nil, &out); err != nil {
		return false, err
	}
	return out.Enabled, nil
}

// SetAutoAssignment flips the auto-assignment toggle.
func (c *Client) SetAutoAssignment(ctx context.Context, token string, enabled bool) error {
	return c.do(ctx, http.MethodPut, "/settings/auto-assignment", token, nil, autoAssignment{Enabled: enabled}, nil)
}
