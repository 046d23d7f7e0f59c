package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/dto"
	"github.com/noah-isme/desk-portal-api/internal/gateway"
	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

type employeeGatewayStub struct {
	employees   []models.Employee
	assignments []models.Assignment
	requests    []models.DeskRequest
	created     []models.DeskRequest
}

func (s *employeeGatewayStub) ListEmployees(ctx context.Context, token string) ([]models.Employee, error) {
	return s.employees, nil
}

func (s *employeeGatewayStub) ListAllAssignments(ctx context.Context, token string, filter gateway.AssignmentFilter) ([]models.Assignment, error) {
	return s.assignments, nil
}

func (s *employeeGatewayStub) MyDeskRequests(ctx context.Context, token string) ([]models.DeskRequest, error) {
	return s.requests, nil
}

func (s *employeeGatewayStub) CreateDeskRequest(ctx context.Context, token, shift, fromDate, toDate, note string) (*models.DeskRequest, error) {
	created := models.DeskRequest{
		ID:       "req-1",
		Status:   models.RequestPending,
		Shift:    models.Shift(shift),
		FromDate: models.ParseDate(fromDate),
		ToDate:   models.ParseDate(toDate),
		Note:     note,
	}
	s.created = append(s.created, created)
	return &created, nil
}

func employeeSession() *models.Session {
	return &models.Session{ID: "sess-e", Token: "tok", UserID: "u-emp", Role: models.RoleEmployee}
}

func newEmployeeService(gw *employeeGatewayStub) *EmployeeService {
	return NewEmployeeService(gw, NewReconciler(zap.NewNop()), nil, zap.NewNop())
}

func TestHistoryResolvesProfileAndTimeline(t *testing.T) {
	gw := &employeeGatewayStub{
		employees: []models.Employee{
			{ID: "emp-9", EmployeeCode: "E9", Name: "Eko", UserID: "u-emp"},
			{ID: "emp-8", EmployeeCode: "E8", Name: "Other", UserID: "u-other"},
		},
		assignments: []models.Assignment{
			{DeskNumber: "205", EmployeeCode: "E9", AssignedDate: models.ParseDate("2026-01-01"), ReleasedDate: models.ParseDate("2026-01-10")},
			{DeskNumber: "205", EmployeeCode: "E5", EmployeeName: "Successor Sam", AssignedDate: models.ParseDate("2026-01-12")},
			{DeskNumber: "301", EmployeeCode: "E9", AssignedDate: models.ParseDate("2026-01-20")},
		},
	}
	svc := newEmployeeService(gw)

	resp, err := svc.History(context.Background(), employeeSession())
	require.NoError(t, err)

	require.Len(t, resp.Entries, 2)
	assert.Equal(t, models.DeskNumber("301"), resp.Entries[0].DeskNumber)
	assert.Equal(t, "Successor Sam", resp.Entries[1].ReassignedTo)
	require.NotNil(t, resp.Current)
	assert.Equal(t, models.DeskNumber("301"), resp.Current.DeskNumber)
}

func TestHistoryWithoutProfileFails(t *testing.T) {
	gw := &employeeGatewayStub{employees: []models.Employee{{ID: "emp-1", UserID: "someone-else"}}}
	svc := newEmployeeService(gw)

	_, err := svc.History(context.Background(), employeeSession())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCreateRequestSubmitsWindow(t *testing.T) {
	gw := &employeeGatewayStub{}
	svc := newEmployeeService(gw)

	created, err := svc.CreateRequest(context.Background(), employeeSession(), dto.CreateDeskRequestRequest{
		FromDate: "2026-09-01",
		ToDate:   "2026-09-05",
		Shift:    "MORNING",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, created.Status)
	require.Len(t, gw.created, 1)
}

func TestCreateRequestRejectsInvertedWindow(t *testing.T) {
	svc := newEmployeeService(&employeeGatewayStub{})

	_, err := svc.CreateRequest(context.Background(), employeeSession(), dto.CreateDeskRequestRequest{
		FromDate: "2026-09-05",
		ToDate:   "2026-09-01",
		Shift:    "MORNING",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateRequestRejectsOverlapWithOpenRequest(t *testing.T) {
	gw := &employeeGatewayStub{
		requests: []models.DeskRequest{
			{
				ID:       "old",
				Status:   models.RequestPending,
				FromDate: models.ParseDate("2026-09-03"),
				ToDate:   models.ParseDate("2026-09-10"),
			},
		},
	}
	svc := newEmployeeService(gw)

	_, err := svc.CreateRequest(context.Background(), employeeSession(), dto.CreateDeskRequestRequest{
		FromDate: "2026-09-01",
		ToDate:   "2026-09-05",
		Shift:    "NIGHT",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, gw.created)
}

func TestCreateRequestIgnoresRejectedRequests(t *testing.T) {
	gw := &employeeGatewayStub{
		requests: []models.DeskRequest{
			{
				ID:       "old",
				Status:   models.RequestRejected,
				FromDate: models.ParseDate("2026-09-03"),
				ToDate:   models.ParseDate("2026-09-10"),
			},
		},
	}
	svc := newEmployeeService(gw)

	_, err := svc.CreateRequest(context.Background(), employeeSession(), dto.CreateDeskRequestRequest{
		FromDate: "2026-09-01",
		ToDate:   "2026-09-05",
		Shift:    "MORNING",
	})
	assert.NoError(t, err)
}

func TestCreateRequestRejectsBadShift(t *testing.T) {
	svc := newEmployeeService(&employeeGatewayStub{})

	_, err := svc.CreateRequest(context.Background(), employeeSession(), dto.CreateDeskRequestRequest{
		FromDate: "2026-09-01",
		ToDate:   "2026-09-05",
		Shift:    "AFTERNOON",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
