package models

// RequestStatus tracks the lifecycle of a desk request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// DeskRequest is an employee-submitted request for a desk over a date range.
type DeskRequest struct {
	ID                 string        `json:"id"`
	Status             RequestStatus `json:"status"`
	Shift              Shift         `json:"shift"`
	FromDate           Date          `json:"from_date"`
	ToDate             Date          `json:"to_date"`
	Note               string        `json:"note,omitempty"`
	EmployeeID         string        `json:"employee_id,omitempty"`
	EmployeeCode       string        `json:"employee_code,omitempty"`
	EmployeeName       string        `json:"employee_name,omitempty"`
	Department         string        `json:"department,omitempty"`
	AssignedDeskNumber DeskNumber    `json:"assigned_desk_number,omitempty"`
	CreatedAt          string        `json:"created_at,omitempty"`
}

// Open reports whether the request still occupies the requested window
// (pending review or already granted).
func (r DeskRequest) Open() bool {
	return r.Status == RequestPending || r.Status == RequestApproved
}

// Overlaps reports whether the request window intersects [from, to].
func (r DeskRequest) Overlaps(from, to Date) bool {
	if r.FromDate.IsZero() || r.ToDate.IsZero() || from.IsZero() || to.IsZero() {
		return false
	}
	return !r.ToDate.Before(from) && !r.FromDate.After(to)
}
