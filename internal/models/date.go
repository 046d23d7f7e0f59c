package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Date is a civil date as exchanged with the upstream API ("YYYY-MM-DD").
// The zero value means "unknown": upstream rows carry JSON null, empty
// strings, the literal string "None", and occasionally malformed values,
// and none of those may abort a decode. Unknown dates sort after known ones.
type Date struct {
	t time.Time
}

var dateLayouts = []string{"2006-01-02", "2006-1-2"}

// ParseDate decodes a date string leniently. Timestamps are truncated to
// their date component; anything unparseable yields the zero Date.
func ParseDate(raw string) Date {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "none") || strings.EqualFold(raw, "null") {
		return Date{}
	}
	if idx := strings.IndexAny(raw, "T "); idx > 0 {
		raw = raw[:idx]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date{t: t}
		}
	}
	return Date{}
}

// DateOf truncates a time to its date component.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether the date is unknown/unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before compares two dates; an unknown date is never before anything.
func (d Date) Before(other Date) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	return d.t.Before(other.t)
}

// After compares two dates; an unknown date is never after anything.
func (d Date) After(other Date) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	return d.t.After(other.t)
}

// Equal reports date equality; two unknown dates compare equal.
func (d Date) Equal(other Date) bool {
	if d.IsZero() || other.IsZero() {
		return d.IsZero() == other.IsZero()
	}
	return d.t.Equal(other.t)
}

// String renders "YYYY-MM-DD", or the empty string when unknown.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// MarshalJSON emits the date string, or null when unknown.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null, "", "None", and lenient date strings.
// Decoding never fails: the upstream mixes null and the string sentinel
// "None" for open released_date values, and the portal must accept both.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = Date{}
		return nil
	}
	*d = ParseDate(s)
	return nil
}
