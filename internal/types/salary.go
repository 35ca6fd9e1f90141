package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SalaryRange is a salary figure as supplied by a job posting or a candidate.
// It is either a structured range (Min/Max) or free text such as "45k - 55k EUR".
type SalaryRange struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Text string   `json:"text,omitempty"`
}

// UnmarshalJSON accepts a number, a string, or a {min, max, text} object.
func (r *SalaryRange) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &r.Text)
	case '{':
		type plain SalaryRange
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("invalid salary object: %w", err)
		}
		*r = SalaryRange(p)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid salary value: %w", err)
		}
		r.Min = &n
		r.Max = &n
		return nil
	}
}

// IsEmpty reports whether the range carries no usable information
func (r *SalaryRange) IsEmpty() bool {
	return r == nil || (r.Min == nil && r.Max == nil && r.Text == "")
}
