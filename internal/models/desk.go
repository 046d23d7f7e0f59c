package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// DeskStatus is the authoritative status stored by the upstream service.
type DeskStatus string

const (
	DeskAvailable   DeskStatus = "AVAILABLE"
	DeskAssigned    DeskStatus = "ASSIGNED"
	DeskMaintenance DeskStatus = "MAINTENANCE"
	DeskInactive    DeskStatus = "INACTIVE"
)

// DeskNumber is a human desk identifier. The upstream API serialises it
// as a JSON number in some endpoints and as a string in others, so it
// accepts both on decode.
type DeskNumber string

// UnmarshalJSON accepts string or numeric desk numbers.
func (n *DeskNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = DeskNumber(s)
		return nil
	}
	*n = DeskNumber(strings.Trim(raw, `"`))
	return nil
}

// Floor derives the floor from the desk number. Three-digit numbers put
// the floor in the leading digit (205 is floor 2), four-digit numbers in
// the thousands (2003 is floor 2).
func (n DeskNumber) Floor() (int, error) {
	dn, err := strconv.Atoi(strings.TrimSpace(string(n)))
	if err != nil {
		return 0, errors.New("desk number must be numeric")
	}
	switch {
	case dn >= 1000:
		return dn / 1000, nil
	case dn >= 100:
		return dn / 100, nil
	default:
		return 0, errors.New("desk number must be at least 3 digits")
	}
}

// Desk is a desk record as returned by the upstream inventory endpoints.
type Desk struct {
	ID            string     `json:"id"`
	DeskNumber    DeskNumber `json:"desk_number"`
	Floor         int        `json:"floor"`
	Department    string     `json:"department,omitempty"`
	Location      string     `json:"location,omitempty"`
	CurrentStatus DeskStatus `json:"current_status"`
	UpdatedAt     Date       `json:"updated_at,omitempty"`
}

// StatusHistoryEntry is one row of a desk's status-change history.
type StatusHistoryEntry struct {
	Date   string `json:"date"`
	Text   string `json:"text"`
	Status string `json:"status"`
	User   string `json:"user"`
	Notes  string `json:"notes,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
