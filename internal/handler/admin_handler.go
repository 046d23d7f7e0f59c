package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/desk-portal-api/internal/dto"
	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
	"github.com/noah-isme/desk-portal-api/pkg/response"
)

type adminService interface {
	Employees(ctx context.Context, sess *models.Session) (*dto.EmployeeListResponse, error)
	Floors(ctx context.Context, sess *models.Session) (*dto.FloorListResponse, error)
	Departments(ctx context.Context, sess *models.Session) (*dto.DepartmentListResponse, error)
	CreateFloor(ctx context.Context, sess *models.Session, req dto.CreateFloorRequest) (*models.Floor, error)
	CreateDepartment(ctx context.Context, sess *models.Session, req dto.CreateDepartmentRequest) (*models.Department, error)
	CreateDesk(ctx context.Context, sess *models.Session, req dto.CreateDeskRequest) (*models.Desk, error)
	Requests(ctx context.Context, sess *models.Session, status string) (*dto.DeskRequestListResponse, error)
	AutoAssignment(ctx context.Context, sess *models.Session) (*dto.AutoAssignmentResponse, error)
	SetAutoAssignment(ctx context.Context, sess *models.Session, req dto.AutoAssignmentUpdateRequest) (*dto.AutoAssignmentResponse, error)
}

// AdminHandler serves the office configuration surface of the admin
// dashboard.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(svc adminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// Employees godoc
// @Summary List employees
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/employees [get]
func (h *AdminHandler) Employees(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.Employees(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Floors godoc
// @Summary List floors with departments
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/floors [get]
func (h *AdminHandler) Floors(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.Floors(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Departments godoc
// @Summary List departments
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/departments [get]
func (h *AdminHandler) Departments(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.Departments(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// CreateFloor godoc
// @Summary Register a floor
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.CreateFloorRequest true "Floor payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/floors [post]
func (h *AdminHandler) CreateFloor(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.CreateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid floor payload"))
		return
	}

	res, err := h.service.CreateFloor(c.Request.Context(), sess, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// CreateDepartment godoc
// @Summary Add a department to a floor
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.CreateDepartmentRequest true "Department payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/departments [post]
func (h *AdminHandler) CreateDepartment(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid department payload"))
		return
	}

	res, err := h.service.CreateDepartment(c.Request.Context(), sess, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// CreateDesk godoc
// @Summary Register a desk
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.CreateDeskRequest true "Desk payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/desks [post]
func (h *AdminHandler) CreateDesk(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.CreateDeskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid desk payload"))
		return
	}

	res, err := h.service.CreateDesk(c.Request.Context(), sess, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Requests godoc
// @Summary List desk requests
// @Description All desk requests across employees, optionally filtered by status
// @Tags Admin
// @Produce json
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/desk-requests [get]
func (h *AdminHandler) Requests(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.Requests(c.Request.Context(), sess, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// AutoAssignment godoc
// @Summary Read the auto-assignment toggle
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/settings/auto-assignment [get]
func (h *AdminHandler) AutoAssignment(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.AutoAssignment(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// SetAutoAssignment godoc
// @Summary Update the auto-assignment toggle
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.AutoAssignmentUpdateRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/settings/auto-assignment [put]
func (h *AdminHandler) SetAutoAssignment(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.AutoAssignmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}

	res, err := h.service.SetAutoAssignment(c.Request.Context(), sess, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
