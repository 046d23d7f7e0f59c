package models

// Employee is an employee profile owned by the upstream service.
type Employee struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	UserID       string `json:"user_id"`
}
