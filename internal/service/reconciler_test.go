package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/models"
)

func fixedReconciler(today string) *Reconciler {
	r := NewReconciler(zap.NewNop())
	parsed, _ := time.Parse("2006-01-02", today)
	r.now = func() time.Time { return parsed }
	return r
}

func assignment(desk, code, name, assigned, released string) models.Assignment {
	return models.Assignment{
		DeskNumber:   models.DeskNumber(desk),
		EmployeeCode: code,
		EmployeeName: name,
		AssignedDate: models.ParseDate(assigned),
		ReleasedDate: models.ParseDate(released),
	}
}

func TestDeskViewAvailableWithoutAssignments(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{DeskNumber: "301", Floor: 3, CurrentStatus: models.DeskAvailable}

	view := r.DeskView(desk, nil)

	assert.Equal(t, models.ViewAvailable, view.Status)
	assert.Equal(t, models.ViewNone, view.Occupant)
}

func TestDeskViewLatestActiveAssignmentWins(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{DeskNumber: "205", CurrentStatus: models.DeskAssigned}
	assignments := []models.Assignment{
		assignment("205", "E1", "Early Bird", "2026-01-10", ""),
		assignment("205", "E2", "Late Comer", "2026-01-15", ""),
	}

	view := r.DeskView(desk, assignments)

	assert.Equal(t, models.ViewAssigned, view.Status)
	assert.Equal(t, "Late Comer", view.Occupant)
	assert.Equal(t, "E2", view.EmployeeCode)
	assert.Equal(t, "2026-01-15", view.LastChanged)
}

func TestDeskViewTieBreaksByLedgerOrder(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{DeskNumber: "205", CurrentStatus: models.DeskAssigned}
	assignments := []models.Assignment{
		assignment("205", "E1", "First Row", "2026-01-10", ""),
		assignment("205", "E2", "Second Row", "2026-01-10", ""),
	}

	view := r.DeskView(desk, assignments)

	assert.Equal(t, "E1", view.EmployeeCode)
}

func TestDeskViewMaintenanceOverridesAssignments(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	for _, status := range []models.DeskStatus{models.DeskMaintenance, models.DeskInactive} {
		desk := models.Desk{DeskNumber: "205", CurrentStatus: status}
		assignments := []models.Assignment{
			assignment("205", "E1", "Occupant", "2026-01-10", ""),
		}

		view := r.DeskView(desk, assignments)

		want := models.ViewMaintenance
		if status == models.DeskInactive {
			want = models.ViewInactive
		}
		assert.Equal(t, want, view.Status)
		assert.Equal(t, models.ViewNone, view.Occupant)
	}
}

func TestDeskViewIgnoresReleasedAssignments(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{DeskNumber: "205", CurrentStatus: models.DeskAssigned}
	assignments := []models.Assignment{
		assignment("205", "E1", "Gone", "2026-01-10", "2026-01-20"),
	}

	view := r.DeskView(desk, assignments)

	assert.Equal(t, models.ViewAvailable, view.Status)
	assert.Equal(t, models.ViewNone, view.Occupant)
}

func TestDeskViewIgnoresOtherDesks(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{DeskNumber: "301", CurrentStatus: models.DeskAvailable}
	assignments := []models.Assignment{
		assignment("205", "E1", "Elsewhere", "2026-01-10", ""),
	}

	view := r.DeskView(desk, assignments)

	assert.Equal(t, models.ViewAvailable, view.Status)
}

func TestDeskViewKnownDateBeatsUnknown(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{DeskNumber: "205", CurrentStatus: models.DeskAssigned}
	assignments := []models.Assignment{
		assignment("205", "E1", "No Date", "", ""),
		assignment("205", "E2", "Dated", "2026-01-10", ""),
	}

	view := r.DeskView(desk, assignments)

	assert.Equal(t, "E2", view.EmployeeCode)
}

func TestDeskViewAnnotatesShift(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{DeskNumber: "205", CurrentStatus: models.DeskAssigned}
	a := assignment("205", "E1", "Night Owl", "2026-01-10", "")
	a.Shift = models.ShiftNight

	view := r.DeskView(desk, []models.Assignment{a})

	assert.Equal(t, "Night Owl (NIGHT)", view.Occupant)
	assert.Equal(t, models.ShiftNight, view.Shift)
}

func TestDeskViewFallsBackToDeskUpdatedAt(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{
		DeskNumber:    "301",
		CurrentStatus: models.DeskAvailable,
		UpdatedAt:     models.ParseDate("2026-01-05"),
	}

	view := r.DeskView(desk, nil)

	assert.Equal(t, "2026-01-05", view.LastChanged)
}

func TestBoardCountsStatuses(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desks := []models.Desk{
		{DeskNumber: "301", CurrentStatus: models.DeskAvailable},
		{DeskNumber: "302", CurrentStatus: models.DeskAssigned},
		{DeskNumber: "303", CurrentStatus: models.DeskMaintenance},
		{DeskNumber: "304", CurrentStatus: models.DeskInactive},
	}
	assignments := []models.Assignment{
		assignment("302", "E1", "Occupant", "2026-01-10", ""),
	}

	views, stats := r.Board(desks, assignments)

	require.Len(t, views, 4)
	assert.Equal(t, models.InventoryStats{Total: 4, Assigned: 1, Available: 1, Maintenance: 1, Inactive: 1}, stats)
}

func TestEmployeeHistoryOrdersNewestFirst(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	assignments := []models.Assignment{
		assignment("205", "E1", "Me", "2026-01-01", "2026-01-10"),
		assignment("301", "E1", "Me", "2026-01-20", ""),
		assignment("400", "E2", "Someone Else", "2026-01-05", ""),
	}

	entries := r.EmployeeHistory("E1", assignments)

	require.Len(t, entries, 2)
	assert.Equal(t, models.DeskNumber("301"), entries[0].DeskNumber)
	assert.Equal(t, models.DeskNumber("205"), entries[1].DeskNumber)
	assert.False(t, entries[0].Released)
	assert.True(t, entries[1].Released)
}

func TestEmployeeHistoryIsIdempotent(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	assignments := []models.Assignment{
		assignment("205", "E1", "Me", "2026-01-01", "2026-01-10"),
		assignment("301", "E1", "Me", "2026-01-20", ""),
	}

	first := r.EmployeeHistory("E1", assignments)
	second := r.EmployeeHistory("E1", assignments)

	assert.Equal(t, first, second)
}

func TestEmployeeHistoryFindsSuccessor(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	assignments := []models.Assignment{
		assignment("205", "X", "Xavier", "2026-01-01", "2026-01-10"),
		assignment("205", "Y", "Yolanda", "2026-01-12", ""),
	}

	entries := r.EmployeeHistory("X", assignments)

	require.Len(t, entries, 1)
	assert.Equal(t, "Yolanda", entries[0].ReassignedTo)
}

func TestEmployeeHistorySuccessorPicksEarliestTakeover(t *testing.T) {
	r := fixedReconciler("2026-03-01")
	assignments := []models.Assignment{
		assignment("205", "X", "Xavier", "2026-01-01", "2026-01-10"),
		assignment("205", "Z", "Zack", "2026-02-01", ""),
		assignment("205", "Y", "Yolanda", "2026-01-12", "2026-01-30"),
	}

	entries := r.EmployeeHistory("X", assignments)

	require.Len(t, entries, 1)
	assert.Equal(t, "Yolanda", entries[0].ReassignedTo)
}

func TestEmployeeHistorySuccessorIgnoresEarlierAndSelf(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	assignments := []models.Assignment{
		assignment("205", "X", "Xavier", "2026-01-01", "2026-01-10"),
		assignment("205", "W", "Was Before", "2025-12-01", "2025-12-31"),
		assignment("205", "X", "Xavier", "2026-01-15", ""),
	}

	entries := r.EmployeeHistory("X", assignments)

	require.Len(t, entries, 2)
	released := entries[1]
	require.True(t, released.Released)
	assert.Empty(t, released.ReassignedTo)
}

func TestEmployeeHistoryFlagsFutureBookings(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	future := assignment("301", "E1", "Me", "2026-03-01", "")
	past := assignment("205", "E1", "Me", "2026-01-01", "")

	entries := r.EmployeeHistory("E1", []models.Assignment{future, past})

	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsFuture)
	assert.False(t, entries[1].IsFuture)
}

func TestEmployeeHistoryPrefersStartDateForFutureFlag(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	a := assignment("301", "E1", "Me", "2026-01-01", "")
	a.StartDate = models.ParseDate("2026-02-15")

	entries := r.EmployeeHistory("E1", []models.Assignment{a})

	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsFuture)
}

func TestEmployeeHistorySinksUnknownDatesLast(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	assignments := []models.Assignment{
		assignment("100", "E1", "Me", "", ""),
		assignment("205", "E1", "Me", "2026-01-01", ""),
		assignment("301", "E1", "Me", "2026-01-20", ""),
	}

	entries := r.EmployeeHistory("E1", assignments)

	require.Len(t, entries, 3)
	assert.Equal(t, models.DeskNumber("301"), entries[0].DeskNumber)
	assert.Equal(t, models.DeskNumber("205"), entries[1].DeskNumber)
	assert.Equal(t, models.DeskNumber("100"), entries[2].DeskNumber)
}

func TestUpcomingScheduleClassifiesEntries(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	active := assignment("205", "E1", "Now", "2026-01-15", "")
	active.StartDate = models.ParseDate("2026-01-15")
	active.EndDate = models.ParseDate("2026-02-10")

	upcoming := assignment("205", "E2", "Soon", "2026-01-20", "")
	upcoming.StartDate = models.ParseDate("2026-02-20")
	upcoming.EndDate = models.ParseDate("2026-02-28")

	past := assignment("205", "E3", "Done", "2026-01-01", "")
	past.StartDate = models.ParseDate("2026-01-01")
	past.EndDate = models.ParseDate("2026-01-10")

	entries := r.UpcomingSchedule("205", []models.Assignment{upcoming, active, past})

	require.Len(t, entries, 2)
	assert.Equal(t, models.ScheduleActive, entries[0].State)
	assert.Equal(t, "E1", entries[0].EmployeeCode)
	assert.Equal(t, models.ScheduleUpcoming, entries[1].State)
	assert.Equal(t, "E2", entries[1].EmployeeCode)
}

func TestUpcomingScheduleKeepsOpenEndedAssignments(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	openEnded := assignment("205", "E1", "Permanent", "2026-01-01", "")

	entries := r.UpcomingSchedule("205", []models.Assignment{openEnded})

	require.Len(t, entries, 1)
	assert.Equal(t, models.ScheduleActive, entries[0].State)
}

func TestUpcomingScheduleSkipsReleasedRows(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	released := assignment("205", "E1", "Gone", "2026-01-01", "2026-01-20")
	released.EndDate = models.ParseDate("2026-03-01")

	entries := r.UpcomingSchedule("205", []models.Assignment{released})

	assert.Empty(t, entries)
}

func TestUpcomingScheduleSinksUnknownStartsLast(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	undated := assignment("205", "E1", "No Start", "", "")
	sooner := assignment("205", "E2", "Sooner", "2026-01-01", "")
	later := assignment("205", "E3", "Later", "2026-01-20", "")

	entries := r.UpcomingSchedule("205", []models.Assignment{undated, later, sooner})

	require.Len(t, entries, 3)
	assert.Equal(t, "E2", entries[0].EmployeeCode)
	assert.Equal(t, "E3", entries[1].EmployeeCode)
	assert.Equal(t, "E1", entries[2].EmployeeCode)
}

func TestMalformedDatesDoNotPanic(t *testing.T) {
	r := fixedReconciler("2026-02-01")
	desk := models.Desk{DeskNumber: "205", CurrentStatus: models.DeskAssigned}
	assignments := []models.Assignment{
		assignment("205", "E1", "Broken", "not-a-date", "also-broken"),
	}

	require.NotPanics(t, func() {
		view := r.DeskView(desk, assignments)
		// An unparseable released date reads as "not released".
		assert.Equal(t, models.ViewAssigned, view.Status)
		r.EmployeeHistory("E1", assignments)
		r.UpcomingSchedule("205", assignments)
	})
}
