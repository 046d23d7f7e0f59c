package models

// Display statuses as shown on the dashboards. MAINTENANCE and INACTIVE
// set by the server always win over anything derived from assignments.
const (
	ViewAvailable   = "Available"
	ViewAssigned    = "Assigned"
	ViewMaintenance = "Maintenance"
	ViewInactive    = "Inactive"

	// Placeholder for empty occupant/date cells.
	ViewNone = "—"
)

// DeskView is the per-desk view model rendered by the dashboards.
type DeskView struct {
	DeskNumber   DeskNumber `json:"desk_number"`
	Floor        int        `json:"floor"`
	Department   string     `json:"department,omitempty"`
	Status       string     `json:"status"`
	Occupant     string     `json:"occupant"`
	EmployeeCode string     `json:"employee_code,omitempty"`
	Shift        Shift      `json:"shift,omitempty"`
	LastChanged  string     `json:"last_changed"`
}

// HistoryEntry is one element of an employee's assignment timeline.
type HistoryEntry struct {
	Assignment
	Released     bool   `json:"released"`
	ReassignedTo string `json:"reassigned_to,omitempty"`
	IsFuture     bool   `json:"is_future"`
}

// ScheduleState classifies an entry of a desk's upcoming schedule.
type ScheduleState string

const (
	ScheduleActive   ScheduleState = "ACTIVE"
	ScheduleUpcoming ScheduleState = "UPCOMING"
)

// ScheduleEntry is one booking window on a desk's schedule.
type ScheduleEntry struct {
	Assignment
	State ScheduleState `json:"state"`
}

// InventoryStats are the headline counters on the admin and IT dashboards.
type InventoryStats struct {
	Total       int `json:"total"`
	Assigned    int `json:"assigned"`
	Available   int `json:"available"`
	Maintenance int `json:"maintenance"`
	Inactive    int `json:"inactive"`
}
