package models

// Department is an administrative grouping located on a single floor.
type Department struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	FloorID string `json:"floor_id,omitempty"`
}

// Floor maps a floor number to its name and contained departments.
// Used to auto-suggest a floor when assigning an employee to a desk.
type Floor struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	OriginalName string       `json:"original_name,omitempty"`
	Number       int          `json:"number"`
	Departments  []Department `json:"departments,omitempty"`
}
