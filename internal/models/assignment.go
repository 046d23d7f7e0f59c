package models

// Shift identifies the booking window of an assignment.
type Shift string

const (
	ShiftMorning Shift = "MORNING"
	ShiftNight   Shift = "NIGHT"
)

// AssignmentType distinguishes standing assignments from time-bound bookings.
type AssignmentType string

const (
	AssignmentPermanent AssignmentType = "PERMANENT"
	AssignmentTemporary AssignmentType = "TEMPORARY"
)

// Assignment is an immutable history record linking a desk to an employee.
// Releasing a desk sets ReleasedDate on a new revision upstream; rows are
// never deleted. A zero ReleasedDate (JSON null or the "None" sentinel)
// means the assignment is still active.
type Assignment struct {
	ID             string         `json:"id"`
	DeskID         string         `json:"desk_id"`
	DeskNumber     DeskNumber     `json:"desk_number"`
	Floor          int            `json:"floor"`
	EmployeeID     string         `json:"employee_id"`
	EmployeeCode   string         `json:"employee_code"`
	EmployeeName   string         `json:"employee_name"`
	Department     string         `json:"department"`
	AssignedBy     string         `json:"assigned_by"`
	AssignedDate   Date           `json:"assigned_date"`
	StartDate      Date           `json:"start_date,omitempty"`
	EndDate        Date           `json:"end_date,omitempty"`
	ReleasedDate   Date           `json:"released_date"`
	Shift          Shift          `json:"shift,omitempty"`
	AssignmentType AssignmentType `json:"assignment_type"`
	Notes          string         `json:"notes,omitempty"`
	CurrentStatus  DeskStatus     `json:"current_status,omitempty"`
}

// Active reports whether the assignment has not been released.
func (a Assignment) Active() bool {
	return a.ReleasedDate.IsZero()
}

// EffectiveStart is the booking start, falling back to the assigned date.
func (a Assignment) EffectiveStart() Date {
	if !a.StartDate.IsZero() {
		return a.StartDate
	}
	return a.AssignedDate
}

// DisplayName is the occupant label: employee name, falling back to code.
func (a Assignment) DisplayName() string {
	if a.EmployeeName != "" {
		return a.EmployeeName
	}
	return a.EmployeeCode
}
