package service

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/models"
)

// Reconciler derives the dashboard view of every desk from the two raw
// collections the desk API exposes: the desk inventory and the
// append-only assignment ledger. The ledger is authoritative for
// occupancy; any occupant field embedded on a desk record is ignored.
type Reconciler struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewReconciler constructs a Reconciler.
func NewReconciler(logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{logger: logger, now: time.Now}
}

// activeAssignment picks the authoritative active assignment for a desk.
// Well-formed data has at most one, but the ledger may contain several;
// the one with the latest assigned date wins, and on equal dates the
// earliest row in ledger order is kept. Rows with unknown dates never
// beat rows with known ones.
func (r *Reconciler) activeAssignment(deskNumber models.DeskNumber, assignments []models.Assignment) *models.Assignment {
	var best *models.Assignment
	for i := range assignments {
		a := &assignments[i]
		if a.DeskNumber != deskNumber || !a.Active() {
			continue
		}
		switch {
		case best == nil:
			best = a
		case a.AssignedDate.After(best.AssignedDate):
			best = a
		case best.AssignedDate.IsZero() && !a.AssignedDate.IsZero():
			best = a
		}
	}
	return best
}

// DeskView computes the display row for one desk. A MAINTENANCE or
// INACTIVE status set by the server is terminal and hides any occupant.
func (r *Reconciler) DeskView(desk models.Desk, assignments []models.Assignment) models.DeskView {
	view := models.DeskView{
		DeskNumber:  desk.DeskNumber,
		Floor:       desk.Floor,
		Department:  desk.Department,
		Occupant:    models.ViewNone,
		LastChanged: models.ViewNone,
	}
	if !desk.UpdatedAt.IsZero() {
		view.LastChanged = desk.UpdatedAt.String()
	}

	switch desk.CurrentStatus {
	case models.DeskMaintenance:
		view.Status = models.ViewMaintenance
		return view
	case models.DeskInactive:
		view.Status = models.ViewInactive
		return view
	}

	active := r.activeAssignment(desk.DeskNumber, assignments)
	if active == nil {
		view.Status = models.ViewAvailable
		return view
	}

	view.Status = models.ViewAssigned
	view.Occupant = active.DisplayName()
	if active.Shift != "" {
		view.Occupant += " (" + string(active.Shift) + ")"
		view.Shift = active.Shift
	}
	view.EmployeeCode = active.EmployeeCode
	if !active.AssignedDate.IsZero() {
		view.LastChanged = active.AssignedDate.String()
	}
	return view
}

// Board reconciles the full inventory and tallies the headline stats.
func (r *Reconciler) Board(desks []models.Desk, assignments []models.Assignment) ([]models.DeskView, models.InventoryStats) {
	views := make([]models.DeskView, 0, len(desks))
	var stats models.InventoryStats
	for _, desk := range desks {
		view := r.DeskView(desk, assignments)
		views = append(views, view)

		stats.Total++
		switch view.Status {
		case models.ViewAssigned:
			stats.Assigned++
		case models.ViewMaintenance:
			stats.Maintenance++
		case models.ViewInactive:
			stats.Inactive++
		default:
			stats.Available++
		}
	}
	return views, stats
}

// EmployeeHistory builds the ordered assignment timeline for one
// employee, newest first. Released entries are cross-referenced with
// the employee who took the desk over afterwards. The successor scan
// runs over the full ledger, not just this employee's rows.
func (r *Reconciler) EmployeeHistory(employeeCode string, assignments []models.Assignment) []models.HistoryEntry {
	var own []models.Assignment
	for _, a := range assignments {
		if a.EmployeeCode == employeeCode {
			own = append(own, a)
		}
	}

	sort.SliceStable(own, func(i, j int) bool {
		// Descending by assigned date; unknown dates sink to the end.
		if own[i].AssignedDate.IsZero() != own[j].AssignedDate.IsZero() {
			return own[j].AssignedDate.IsZero()
		}
		return own[i].AssignedDate.After(own[j].AssignedDate)
	})

	today := models.DateOf(r.now())
	entries := make([]models.HistoryEntry, 0, len(own))
	for _, a := range own {
		entry := models.HistoryEntry{
			Assignment: a,
			Released:   !a.Active(),
			IsFuture:   a.EffectiveStart().After(today),
		}
		if entry.Released {
			if successor := r.successor(a, assignments); successor != nil {
				entry.ReassignedTo = successor.DisplayName()
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// successor finds who took over a desk after the given assignment was
// released: the earliest ledger row for the same desk, assigned on or
// after the release date, belonging to a different employee.
func (r *Reconciler) successor(released models.Assignment, assignments []models.Assignment) *models.Assignment {
	var best *models.Assignment
	for i := range assignments {
		a := &assignments[i]
		if a.DeskNumber != released.DeskNumber || a.EmployeeCode == released.EmployeeCode {
			continue
		}
		if a.AssignedDate.IsZero() || a.AssignedDate.Before(released.ReleasedDate) {
			continue
		}
		if best == nil || a.AssignedDate.Before(best.AssignedDate) {
			best = a
		}
	}
	return best
}

// UpcomingSchedule lists the bookings still ahead of a desk, soonest
// first. Assignments with no end date are open-ended and always kept.
func (r *Reconciler) UpcomingSchedule(deskNumber models.DeskNumber, assignments []models.Assignment) []models.ScheduleEntry {
	today := models.DateOf(r.now())

	var relevant []models.Assignment
	for _, a := range assignments {
		if a.DeskNumber != deskNumber || !a.Active() {
			continue
		}
		if !a.EndDate.IsZero() && a.EndDate.Before(today) {
			continue
		}
		relevant = append(relevant, a)
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		// Ascending by start date; unknown dates sink to the end.
		if relevant[i].EffectiveStart().IsZero() != relevant[j].EffectiveStart().IsZero() {
			return relevant[j].EffectiveStart().IsZero()
		}
		return relevant[i].EffectiveStart().Before(relevant[j].EffectiveStart())
	})

	entries := make([]models.ScheduleEntry, 0, len(relevant))
	for _, a := range relevant {
		state := models.ScheduleActive
		if a.EffectiveStart().After(today) {
			state = models.ScheduleUpcoming
		}
		entries = append(entries, models.ScheduleEntry{Assignment: a, State: state})
	}
	return entries
}
