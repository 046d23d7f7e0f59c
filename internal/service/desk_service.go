package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/dto"
	"github.com/noah-isme/desk-portal-api/internal/gateway"
	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

type deskGateway interface {
	ListAllDesks(ctx context.Context, token string, filter gateway.DeskFilter) ([]models.Desk, error)
	ListAllAssignments(ctx context.Context, token string, filter gateway.AssignmentFilter) ([]models.Assignment, error)
	FindDeskByNumber(ctx context.Context, token string, deskNumber models.DeskNumber) (*models.Desk, error)
	AssignDesk(ctx context.Context, token, deskID, employeeID, assignmentType, notes, date string) (*gateway.AssignResult, error)
	UpdateDeskStatus(ctx context.Context, token string, deskNumber models.DeskNumber, status, reason, notes, expectedResolution string) (*gateway.StatusUpdateResult, error)
	DeskHistory(ctx context.Context, token string, deskNumber models.DeskNumber) ([]models.StatusHistoryEntry, error)
	ListEmployees(ctx context.Context, token string) ([]models.Employee, error)
}

type boardMetrics interface {
	SetDeskStats(stats models.InventoryStats)
	RecordSnapshot(hit bool)
}

// DeskService serves the reconciled desk board and runs the admin and
// IT Support desk mutations. Reads go through the snapshot cache when
// it is warm; every successful mutation invalidates it, so the next
// read reflects the change.
type DeskService struct {
	gw         deskGateway
	reconciler *Reconciler
	refresher  *Refresher
	metrics    boardMetrics
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewDeskService constructs the service. The refresher and metrics
// collaborators are optional.
func NewDeskService(gw deskGateway, reconciler *Reconciler, refresher *Refresher, metrics boardMetrics, validate *validator.Validate, logger *zap.Logger) *DeskService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeskService{
		gw:         gw,
		reconciler: reconciler,
		refresher:  refresher,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
	}
}

func (s *DeskService) snapshot(ctx context.Context, sess *models.Session) (Snapshot, error) {
	if s.refresher != nil {
		if snap, ok := s.refresher.Snapshot(sess.ID); ok {
			if s.metrics != nil {
				s.metrics.RecordSnapshot(true)
			}
			return snap, nil
		}
	}
	if s.metrics != nil {
		s.metrics.RecordSnapshot(false)
	}

	desks, err := s.gw.ListAllDesks(ctx, sess.Token, gateway.DeskFilter{})
	if err != nil {
		return Snapshot{}, err
	}
	assignments, err := s.gw.ListAllAssignments(ctx, sess.Token, gateway.AssignmentFilter{})
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Desks: desks, Assignments: assignments}
	if s.refresher != nil {
		s.refresher.Store(sess.ID, sess.Token, snap)
	}
	return snap, nil
}

func (s *DeskService) invalidate() {
	if s.refresher != nil {
		s.refresher.Invalidate()
	}
}

// Board returns the reconciled desk grid with headline stats.
func (s *DeskService) Board(ctx context.Context, sess *models.Session) (*dto.DeskBoardResponse, error) {
	snap, err := s.snapshot(ctx, sess)
	if err != nil {
		return nil, err
	}

	views, stats := s.reconciler.Board(snap.Desks, snap.Assignments)
	if s.metrics != nil {
		s.metrics.SetDeskStats(stats)
	}
	return &dto.DeskBoardResponse{Desks: views, Stats: stats}, nil
}

// DeskDetail returns one desk's reconciled row, its status history, and
// the schedule of bookings still ahead of it.
func (s *DeskService) DeskDetail(ctx context.Context, sess *models.Session, deskNumber models.DeskNumber) (*dto.DeskDetailResponse, error) {
	desk, err := s.gw.FindDeskByNumber(ctx, sess.Token, deskNumber)
	if err != nil {
		return nil, err
	}

	assignments, err := s.gw.ListAllAssignments(ctx, sess.Token, gateway.AssignmentFilter{DeskNumber: deskNumber})
	if err != nil {
		return nil, err
	}

	history, err := s.gw.DeskHistory(ctx, sess.Token, deskNumber)
	if err != nil {
		return nil, err
	}

	return &dto.DeskDetailResponse{
		Desk:     s.reconciler.DeskView(*desk, assignments),
		History:  history,
		Schedule: s.reconciler.UpcomingSchedule(deskNumber, assignments),
	}, nil
}

// AssignDesk assigns a desk to an employee. The form works with desk
// numbers and employee codes, so both are resolved to upstream ids
// first. Desks parked in MAINTENANCE or INACTIVE are rejected before
// the upstream call to give the form a precise error.
func (s *DeskService) AssignDesk(ctx context.Context, sess *models.Session, req dto.AssignDeskRequest) (*gateway.AssignResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	desk, err := s.gw.FindDeskByNumber(ctx, sess.Token, models.DeskNumber(req.DeskNumber))
	if err != nil {
		return nil, err
	}
	if desk.CurrentStatus == models.DeskMaintenance || desk.CurrentStatus == models.DeskInactive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "desk is in "+string(desk.CurrentStatus)+" status and cannot be assigned")
	}

	employee, err := s.findEmployeeByCode(ctx, sess.Token, req.EmployeeCode)
	if err != nil {
		return nil, err
	}

	result, err := s.gw.AssignDesk(ctx, sess.Token, desk.ID, employee.ID, req.AssignmentType, req.Notes, req.Date)
	if err != nil {
		return nil, err
	}

	s.logger.Info("desk assigned",
		zap.String("desk_number", string(desk.DeskNumber)),
		zap.String("employee_code", employee.EmployeeCode),
		zap.String("assigned_by", sess.UserID),
	)
	s.invalidate()
	return result, nil
}

// UpdateDeskStatus moves a desk between operational states.
func (s *DeskService) UpdateDeskStatus(ctx context.Context, sess *models.Session, deskNumber models.DeskNumber, req dto.UpdateDeskStatusRequest) (*gateway.StatusUpdateResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	result, err := s.gw.UpdateDeskStatus(ctx, sess.Token, deskNumber, req.Status, req.Reason, req.Notes, req.ExpectedResolutionDate)
	if err != nil {
		return nil, err
	}

	s.logger.Info("desk status updated",
		zap.String("desk_number", string(deskNumber)),
		zap.String("new_status", string(result.NewStatus)),
		zap.String("changed_by", sess.UserID),
	)
	s.invalidate()
	return result, nil
}

func (s *DeskService) findEmployeeByCode(ctx context.Context, token, code string) (*models.Employee, error) {
	employees, err := s.gw.ListEmployees(ctx, token)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].EmployeeCode == code {
			return &employees[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
}
