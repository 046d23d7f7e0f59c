package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/desk-portal-api/internal/dto"
	"github.com/noah-isme/desk-portal-api/internal/gateway"
	"github.com/noah-isme/desk-portal-api/internal/middleware"
	"github.com/noah-isme/desk-portal-api/internal/models"
	"github.com/noah-isme/desk-portal-api/internal/service"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
	"github.com/noah-isme/desk-portal-api/pkg/response"
)

type deskService interface {
	Board(ctx context.Context, sess *models.Session) (*dto.DeskBoardResponse, error)
	DeskDetail(ctx context.Context, sess *models.Session, deskNumber models.DeskNumber) (*dto.DeskDetailResponse, error)
	AssignDesk(ctx context.Context, sess *models.Session, req dto.AssignDeskRequest) (*gateway.AssignResult, error)
	UpdateDeskStatus(ctx context.Context, sess *models.Session, deskNumber models.DeskNumber, req dto.UpdateDeskStatusRequest) (*gateway.StatusUpdateResult, error)
}

type boardExporter interface {
	BoardExport(ctx context.Context, sess *models.Session, format string) (*service.ExportFile, error)
}

// DeskHandler serves the desk board and mutations for the admin and
// IT Support dashboards.
type DeskHandler struct {
	service  deskService
	exporter boardExporter
}

// NewDeskHandler creates a new handler. The exporter is optional.
func NewDeskHandler(svc deskService, exporter boardExporter) *DeskHandler {
	return &DeskHandler{service: svc, exporter: exporter}
}

func requireSession(c *gin.Context) (*models.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return sess, true
}

// Board godoc
// @Summary Reconciled desk board
// @Description Desk grid with derived status, occupant, and stats. Status and floor filters narrow the grid; stats always cover the whole inventory.
// @Tags Desks
// @Produce json
// @Param status query string false "Display status filter"
// @Param floor query int false "Floor filter"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Security BearerAuth
// @Router /desks/board [get]
func (h *DeskHandler) Board(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.Board(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	res.Desks = filterViews(res.Desks, c.Query("status"), c.Query("floor"))
	response.JSON(c, http.StatusOK, res, nil)
}

func filterViews(views []models.DeskView, status, floor string) []models.DeskView {
	if status == "" && floor == "" {
		return views
	}
	floorNum, _ := strconv.Atoi(floor)
	filtered := make([]models.DeskView, 0, len(views))
	for _, v := range views {
		if status != "" && !strings.EqualFold(v.Status, status) {
			continue
		}
		if floor != "" && v.Floor != floorNum {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

// Detail godoc
// @Summary Desk detail
// @Description One desk with status history and upcoming schedule
// @Tags Desks
// @Produce json
// @Param number path string true "Desk number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /desks/{number} [get]
func (h *DeskHandler) Detail(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.service.DeskDetail(c.Request.Context(), sess, models.DeskNumber(c.Param("number")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Assign godoc
// @Summary Assign a desk
// @Tags Desks
// @Accept json
// @Produce json
// @Param payload body dto.AssignDeskRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /desks/assign [post]
func (h *DeskHandler) Assign(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.AssignDeskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	res, err := h.service.AssignDesk(c.Request.Context(), sess, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// UpdateStatus godoc
// @Summary Update desk status
// @Tags Desks
// @Accept json
// @Produce json
// @Param number path string true "Desk number"
// @Param payload body dto.UpdateDeskStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /desks/{number}/status [put]
func (h *DeskHandler) UpdateStatus(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.UpdateDeskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	res, err := h.service.UpdateDeskStatus(c.Request.Context(), sess, models.DeskNumber(c.Param("number")), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Export godoc
// @Summary Download the desk board
// @Description Render the reconciled inventory as CSV or PDF
// @Tags Desks
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /desks/export [get]
func (h *DeskHandler) Export(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}

	format := c.DefaultQuery("format", service.FormatCSV)
	file, err := h.exporter.BoardExport(c.Request.Context(), sess, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
