package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/dto"
	"github.com/noah-isme/desk-portal-api/internal/models"
)

type adminGateway interface {
	ListEmployees(ctx context.Context, token string) ([]models.Employee, error)
	ListFloors(ctx context.Context, token string) ([]models.Floor, error)
	ListDepartments(ctx context.Context, token string) ([]models.Department, error)
	CreateFloor(ctx context.Context, token, name string, number int, departmentName string) (*models.Floor, error)
	CreateDepartment(ctx context.Context, token, name, floorID string) (*models.Department, error)
	CreateDesk(ctx context.Context, token, deskNumber, floorID, departmentID, location string) (*models.Desk, error)
	ListDeskRequests(ctx context.Context, token, status string) ([]models.DeskRequest, error)
	GetAutoAssignment(ctx context.Context, token string) (bool, error)
	SetAutoAssignment(ctx context.Context, token string, enabled bool) error
}

// AdminService covers the admin configuration surface: floors and
// departments, desk registration, the request queue, and the
// auto-assignment toggle.
type AdminService struct {
	gw        adminGateway
	refresher *Refresher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs the service. The refresher is optional.
func NewAdminService(gw adminGateway, refresher *Refresher, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{gw: gw, refresher: refresher, validator: validate, logger: logger}
}

func (s *AdminService) invalidate() {
	if s.refresher != nil {
		s.refresher.Invalidate()
	}
}

// Employees lists all employee profiles for the assignment pickers.
func (s *AdminService) Employees(ctx context.Context, sess *models.Session) (*dto.EmployeeListResponse, error) {
	employees, err := s.gw.ListEmployees(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return &dto.EmployeeListResponse{Employees: employees}, nil
}

// Floors lists the floor configuration with nested departments.
func (s *AdminService) Floors(ctx context.Context, sess *models.Session) (*dto.FloorListResponse, error) {
	floors, err := s.gw.ListFloors(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return &dto.FloorListResponse{Floors: floors}, nil
}

// Departments lists all departments for the desk registration picker.
func (s *AdminService) Departments(ctx context.Context, sess *models.Session) (*dto.DepartmentListResponse, error) {
	departments, err := s.gw.ListDepartments(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return &dto.DepartmentListResponse{Departments: departments}, nil
}

// CreateFloor registers a floor, optionally with an initial department.
func (s *AdminService) CreateFloor(ctx context.Context, sess *models.Session, req dto.CreateFloorRequest) (*models.Floor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	floor, err := s.gw.CreateFloor(ctx, sess.Token, req.Name, req.Number, req.DepartmentName)
	if err != nil {
		return nil, err
	}
	s.logger.Info("floor created", zap.Int("number", req.Number), zap.String("by", sess.UserID))
	return floor, nil
}

// CreateDepartment places a department on an existing floor.
func (s *AdminService) CreateDepartment(ctx context.Context, sess *models.Session, req dto.CreateDepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	department, err := s.gw.CreateDepartment(ctx, sess.Token, req.Name, req.FloorID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("department created", zap.String("name", req.Name), zap.String("by", sess.UserID))
	return department, nil
}

// CreateDesk registers a new desk in the inventory.
func (s *AdminService) CreateDesk(ctx context.Context, sess *models.Session, req dto.CreateDeskRequest) (*models.Desk, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	desk, err := s.gw.CreateDesk(ctx, sess.Token, req.DeskNumber, req.FloorID, req.DepartmentID, req.Location)
	if err != nil {
		return nil, err
	}
	s.logger.Info("desk created", zap.String("desk_number", req.DeskNumber), zap.String("by", sess.UserID))
	s.invalidate()
	return desk, nil
}

// Requests lists every desk request, optionally filtered by status.
func (s *AdminService) Requests(ctx context.Context, sess *models.Session, status string) (*dto.DeskRequestListResponse, error) {
	requests, err := s.gw.ListDeskRequests(ctx, sess.Token, status)
	if err != nil {
		return nil, err
	}
	return &dto.DeskRequestListResponse{Requests: requests}, nil
}

// AutoAssignment reads the auto-assignment toggle.
func (s *AdminService) AutoAssignment(ctx context.Context, sess *models.Session) (*dto.AutoAssignmentResponse, error) {
	enabled, err := s.gw.GetAutoAssignment(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return &dto.AutoAssignmentResponse{Enabled: enabled}, nil
}

// SetAutoAssignment flips the auto-assignment toggle.
func (s *AdminService) SetAutoAssignment(ctx context.Context, sess *models.Session, req dto.AutoAssignmentUpdateRequest) (*dto.AutoAssignmentResponse, error) {
	if err := s.gw.SetAutoAssignment(ctx, sess.Token, req.Enabled); err != nil {
		return nil, err
	}
	s.logger.Info("auto-assignment toggled", zap.Bool("enabled", req.Enabled), zap.String("by", sess.UserID))
	return &dto.AutoAssignmentResponse{Enabled: req.Enabled}, nil
}
