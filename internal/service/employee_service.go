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

type employeeGateway interface {
	ListEmployees(ctx context.Context, token string) ([]models.Employee, error)
	ListAllAssignments(ctx context.Context, token string, filter gateway.AssignmentFilter) ([]models.Assignment, error)
	MyDeskRequests(ctx context.Context, token string) ([]models.DeskRequest, error)
	CreateDeskRequest(ctx context.Context, token, shift, fromDate, toDate, note string) (*models.DeskRequest, error)
}

// EmployeeService serves the employee dashboard: the signed-in user's
// desk timeline and their desk-request workflow.
type EmployeeService struct {
	gw         employeeGateway
	reconciler *Reconciler
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(gw employeeGateway, reconciler *Reconciler, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{gw: gw, reconciler: reconciler, validator: validate, logger: logger}
}

// profile looks up the employee record backing the signed-in account.
func (s *EmployeeService) profile(ctx context.Context, sess *models.Session) (*models.Employee, error) {
	employees, err := s.gw.ListEmployees(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].UserID == sess.UserID {
			return &employees[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "no employee profile linked to this account")
}

// History returns the signed-in employee's assignment timeline, newest
// first, with the currently held desk pulled out separately. The
// successor cross-reference needs the full ledger, so the unfiltered
// assignment collection is fetched.
func (s *EmployeeService) History(ctx context.Context, sess *models.Session) (*dto.EmployeeHistoryResponse, error) {
	employee, err := s.profile(ctx, sess)
	if err != nil {
		return nil, err
	}

	assignments, err := s.gw.ListAllAssignments(ctx, sess.Token, gateway.AssignmentFilter{})
	if err != nil {
		return nil, err
	}

	entries := s.reconciler.EmployeeHistory(employee.EmployeeCode, assignments)

	resp := &dto.EmployeeHistoryResponse{Entries: entries}
	for i := range entries {
		if !entries[i].Released && !entries[i].IsFuture {
			resp.Current = &entries[i]
			break
		}
	}
	return resp, nil
}

// Requests lists the signed-in employee's own desk requests.
func (s *EmployeeService) Requests(ctx context.Context, sess *models.Session) (*dto.DeskRequestListResponse, error) {
	requests, err := s.gw.MyDeskRequests(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return &dto.DeskRequestListResponse{Requests: requests}, nil
}

// CreateRequest submits a desk request. The window is checked against
// the employee's open requests first so an overlapping submission fails
// with a form error instead of a surprise rejection later.
func (s *EmployeeService) CreateRequest(ctx context.Context, sess *models.Session, req dto.CreateDeskRequestRequest) (*models.DeskRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	from := models.ParseDate(req.FromDate)
	to := models.ParseDate(req.ToDate)
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "from_date must not be after to_date")
	}

	existing, err := s.gw.MyDeskRequests(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	for _, open := range existing {
		if open.Open() && open.Overlaps(from, to) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "an open desk request already covers part of this window")
		}
	}

	created, err := s.gw.CreateDeskRequest(ctx, sess.Token, req.Shift, req.FromDate, req.ToDate, req.Note)
	if err != nil {
		return nil, err
	}

	s.logger.Info("desk request submitted",
		zap.String("user_id", sess.UserID),
		zap.String("from", req.FromDate),
		zap.String("to", req.ToDate),
		zap.String("shift", req.Shift),
	)
	return created, nil
}
