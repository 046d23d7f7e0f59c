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

type employeeService interface {
	History(ctx context.Context, sess *models.Session) (*dto.EmployeeHistoryResponse, error)
	Requests(ctx context.Context, sess *models.Session) (*dto.DeskRequestListResponse, error)
	CreateRequest(ctx context.Context, sess *models.Session, req dto.CreateDeskRequestRequest) (*models.DeskRequest, error)
}

// EmployeeHandler serves the employee dashboard.
type EmployeeHandler struct {
	service employeeService
}

// NewEmployeeHandler creates a new handler.
func NewEmployeeHandler(svc employeeService) *EmployeeHandler {
	return &EmployeeHandler{service: svc}
}

// History godoc
// @Summary My desk timeline
// @Description The signed-in employee's assignments, current desk first
// @Tags Employee
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /me/desk-history [get]
func (h *EmployeeHandler) History(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.History(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Requests godoc
// @Summary My desk requests
// @Tags Employee
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /me/desk-requests [get]
func (h *EmployeeHandler) Requests(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.Requests(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// CreateRequest godoc
// @Summary Submit a desk request
// @Tags Employee
// @Accept json
// @Produce json
// @Param payload body dto.CreateDeskRequestRequest true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /me/desk-requests [post]
func (h *EmployeeHandler) CreateRequest(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.CreateDeskRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return
	}

	res, err := h.service.CreateRequest(c.Request.Context(), sess, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}
