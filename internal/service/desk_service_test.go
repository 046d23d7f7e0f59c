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
	"github.com/noah-isme/desk-portal-api/pkg/config"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

type deskGatewayStub struct {
	desks       []models.Desk
	assignments []models.Assignment
	employees   []models.Employee
	history     []models.StatusHistoryEntry

	listDeskCalls int
	assignCalls   []string
	updateCalls   []string
}

func (s *deskGatewayStub) ListAllDesks(ctx context.Context, token string, filter gateway.DeskFilter) ([]models.Desk, error) {
	s.listDeskCalls++
	if filter.Floor == 0 {
		return s.desks, nil
	}
	var out []models.Desk
	for _, d := range s.desks {
		if d.Floor == filter.Floor {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *deskGatewayStub) ListAllAssignments(ctx context.Context, token string, filter gateway.AssignmentFilter) ([]models.Assignment, error) {
	if filter.DeskNumber == "" {
		return s.assignments, nil
	}
	var out []models.Assignment
	for _, a := range s.assignments {
		if a.DeskNumber == filter.DeskNumber {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *deskGatewayStub) FindDeskByNumber(ctx context.Context, token string, deskNumber models.DeskNumber) (*models.Desk, error) {
	for i := range s.desks {
		if s.desks[i].DeskNumber == deskNumber {
			return &s.desks[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "desk not found")
}

func (s *deskGatewayStub) AssignDesk(ctx context.Context, token, deskID, employeeID, assignmentType, notes, date string) (*gateway.AssignResult, error) {
	s.assignCalls = append(s.assignCalls, deskID+":"+employeeID)
	return &gateway.AssignResult{Message: "Desk assigned successfully"}, nil
}

func (s *deskGatewayStub) UpdateDeskStatus(ctx context.Context, token string, deskNumber models.DeskNumber, status, reason, notes, expectedResolution string) (*gateway.StatusUpdateResult, error) {
	s.updateCalls = append(s.updateCalls, string(deskNumber)+":"+status)
	return &gateway.StatusUpdateResult{DeskNumber: deskNumber, NewStatus: models.DeskStatus(status)}, nil
}

func (s *deskGatewayStub) DeskHistory(ctx context.Context, token string, deskNumber models.DeskNumber) ([]models.StatusHistoryEntry, error) {
	return s.history, nil
}

func (s *deskGatewayStub) ListEmployees(ctx context.Context, token string) ([]models.Employee, error) {
	return s.employees, nil
}

func adminSession() *models.Session {
	return &models.Session{ID: "sess-1", Token: "tok", UserID: "u-1", Role: models.RoleAdmin}
}

func newDeskService(gw *deskGatewayStub, refresher *Refresher) *DeskService {
	return NewDeskService(gw, NewReconciler(zap.NewNop()), refresher, nil, nil, zap.NewNop())
}

func TestBoardReconcilesInventory(t *testing.T) {
	gw := &deskGatewayStub{
		desks: []models.Desk{
			{ID: "d1", DeskNumber: "301", Floor: 3, CurrentStatus: models.DeskAvailable},
			{ID: "d2", DeskNumber: "302", Floor: 3, CurrentStatus: models.DeskAssigned},
		},
		assignments: []models.Assignment{
			{DeskNumber: "302", EmployeeCode: "E1", EmployeeName: "Ana", AssignedDate: models.ParseDate("2026-01-10")},
		},
	}
	svc := newDeskService(gw, nil)

	resp, err := svc.Board(context.Background(), adminSession())
	require.NoError(t, err)

	require.Len(t, resp.Desks, 2)
	assert.Equal(t, models.ViewAvailable, resp.Desks[0].Status)
	assert.Equal(t, "Ana", resp.Desks[1].Occupant)
	assert.Equal(t, 1, resp.Stats.Assigned)
	assert.Equal(t, 1, resp.Stats.Available)
}

func TestBoardUsesWarmSnapshot(t *testing.T) {
	gw := &deskGatewayStub{
		desks: []models.Desk{{ID: "d1", DeskNumber: "301", CurrentStatus: models.DeskAvailable}},
	}
	refresher := NewRefresher(gw, config.RefreshConfig{}, zap.NewNop())
	svc := newDeskService(gw, refresher)
	sess := adminSession()

	_, err := svc.Board(context.Background(), sess)
	require.NoError(t, err)
	first := gw.listDeskCalls

	_, err = svc.Board(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, first, gw.listDeskCalls, "second read should come from the snapshot")
}

func TestMutationsInvalidateSnapshot(t *testing.T) {
	gw := &deskGatewayStub{
		desks:     []models.Desk{{ID: "d1", DeskNumber: "301", Floor: 3, CurrentStatus: models.DeskAvailable}},
		employees: []models.Employee{{ID: "emp-1", EmployeeCode: "E1", UserID: "u-9"}},
	}
	refresher := NewRefresher(gw, config.RefreshConfig{}, zap.NewNop())
	svc := newDeskService(gw, refresher)
	sess := adminSession()

	_, err := svc.Board(context.Background(), sess)
	require.NoError(t, err)
	calls := gw.listDeskCalls

	_, err = svc.AssignDesk(context.Background(), sess, dto.AssignDeskRequest{
		DeskNumber:     "301",
		EmployeeCode:   "E1",
		AssignmentType: "PERMANENT",
	})
	require.NoError(t, err)

	_, err = svc.Board(context.Background(), sess)
	require.NoError(t, err)
	assert.Greater(t, gw.listDeskCalls, calls, "board read after a mutation must re-fetch")
}

func TestAssignDeskResolvesIdsFromNumbersAndCodes(t *testing.T) {
	gw := &deskGatewayStub{
		desks:     []models.Desk{{ID: "desk-id-9", DeskNumber: "301", Floor: 3, CurrentStatus: models.DeskAvailable}},
		employees: []models.Employee{{ID: "emp-id-7", EmployeeCode: "E7", UserID: "u-7"}},
	}
	svc := newDeskService(gw, nil)

	_, err := svc.AssignDesk(context.Background(), adminSession(), dto.AssignDeskRequest{
		DeskNumber:     "301",
		EmployeeCode:   "E7",
		AssignmentType: "TEMPORARY",
		Date:           "2026-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"desk-id-9:emp-id-7"}, gw.assignCalls)
}

func TestAssignDeskRejectsMaintenanceDesk(t *testing.T) {
	gw := &deskGatewayStub{
		desks:     []models.Desk{{ID: "d1", DeskNumber: "301", Floor: 3, CurrentStatus: models.DeskMaintenance}},
		employees: []models.Employee{{ID: "emp-1", EmployeeCode: "E1"}},
	}
	svc := newDeskService(gw, nil)

	_, err := svc.AssignDesk(context.Background(), adminSession(), dto.AssignDeskRequest{
		DeskNumber:     "301",
		EmployeeCode:   "E1",
		AssignmentType: "PERMANENT",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, gw.assignCalls)
}

func TestAssignDeskRejectsUnknownEmployee(t *testing.T) {
	gw := &deskGatewayStub{
		desks: []models.Desk{{ID: "d1", DeskNumber: "301", Floor: 3, CurrentStatus: models.DeskAvailable}},
	}
	svc := newDeskService(gw, nil)

	_, err := svc.AssignDesk(context.Background(), adminSession(), dto.AssignDeskRequest{
		DeskNumber:     "301",
		EmployeeCode:   "NOPE",
		AssignmentType: "PERMANENT",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignDeskValidatesPayload(t *testing.T) {
	svc := newDeskService(&deskGatewayStub{}, nil)

	_, err := svc.AssignDesk(context.Background(), adminSession(), dto.AssignDeskRequest{
		DeskNumber:     "301",
		EmployeeCode:   "E1",
		AssignmentType: "FOREVER",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateDeskStatusForwardsPayload(t *testing.T) {
	gw := &deskGatewayStub{}
	svc := newDeskService(gw, nil)

	result, err := svc.UpdateDeskStatus(context.Background(), adminSession(), "301", dto.UpdateDeskStatusRequest{
		Status: "MAINTENANCE",
		Reason: "broken monitor arm",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DeskStatus("MAINTENANCE"), result.NewStatus)
	assert.Equal(t, []string{"301:MAINTENANCE"}, gw.updateCalls)
}

func TestUpdateDeskStatusRejectsUnknownStatus(t *testing.T) {
	svc := newDeskService(&deskGatewayStub{}, nil)

	_, err := svc.UpdateDeskStatus(context.Background(), adminSession(), "301", dto.UpdateDeskStatusRequest{Status: "BROKEN"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDeskDetailCombinesViewHistoryAndSchedule(t *testing.T) {
	gw := &deskGatewayStub{
		desks: []models.Desk{{ID: "d1", DeskNumber: "301", Floor: 3, CurrentStatus: models.DeskAssigned}},
		assignments: []models.Assignment{
			{DeskNumber: "301", EmployeeCode: "E1", EmployeeName: "Ana", AssignedDate: models.ParseDate("2026-01-10")},
		},
		history: []models.StatusHistoryEntry{{Status: "ASSIGNED", User: "Admin"}},
	}
	svc := newDeskService(gw, nil)

	resp, err := svc.DeskDetail(context.Background(), adminSession(), "301")
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.Desk.Occupant)
	require.Len(t, resp.History, 1)
	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, models.ScheduleActive, resp.Schedule[0].State)
}
