package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WorkShift marks which part of a day was worked for one client.
type WorkShift struct {
	Morning bool `json:"morning,omitempty"`
	Evening bool `json:"evening,omitempty"`
	AllDay  bool `json:"allDay,omitempty"`
}

// ShiftData holds the per-client detail of a work day. It is one of Shifts,
// LegacyHours or nil when the day carries no detail.
type ShiftData interface {
	isShiftData()
	// Len returns the number of client entries.
	Len() int
}

// Shifts maps a client id to the shift worked for that client.
type Shifts map[string]WorkShift

// LegacyHours maps a client id to a number of hours. Records written before
// shifts were introduced carry this form.
type LegacyHours map[string]float64

func (Shifts) isShiftData()      {}
func (LegacyHours) isShiftData() {}

// Len returns the number of client entries.
func (s Shifts) Len() int { return len(s) }

// Len returns the number of client entries.
func (h LegacyHours) Len() int { return len(h) }

// WorkRecord is one employee's activity, or absence, on a single date.
// At most one record exists per employee and date.
type WorkRecord struct {
	ID           string
	EmployeeID   string
	Date         string // YYYY-MM-DD
	ClientIDs    []string
	Shifts       ShiftData
	IsAbsence    bool
	DailyAdvance decimal.NullDecimal
	CreatedAt    time.Time
}

// HasActivity reports whether the record is worth storing: an absence mark,
// an assigned client or any shift detail.
func (r WorkRecord) HasActivity() bool {
	return r.IsAbsence || len(r.ClientIDs) > 0 || (r.Shifts != nil && r.Shifts.Len() > 0)
}

// ClientShifts returns the shift map when the record uses shifts.
func (r WorkRecord) ClientShifts() (Shifts, bool) {
	s, ok := r.Shifts.(Shifts)
	return s, ok && len(s) > 0
}

// ClientHours returns the legacy hours map when the record still uses it.
func (r WorkRecord) ClientHours() (LegacyHours, bool) {
	h, ok := r.Shifts.(LegacyHours)
	return h, ok && len(h) > 0
}

// workRecordJSON is the persisted shape shared with the device store.
type workRecordJSON struct {
	ID           string               `json:"id"`
	EmployeeID   string               `json:"employeeId"`
	Date         string               `json:"date"`
	ClientIDs    []string             `json:"clientIds"`
	ClientHours  map[string]float64   `json:"clientHours,omitempty"`
	ClientShifts map[string]WorkShift `json:"clientShifts,omitempty"`
	IsAbsence    bool                 `json:"isAbsence"`
	DailyAdvance decimal.NullDecimal  `json:"dailyAdvance"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// MarshalJSON writes only the map of the variant the record holds.
func (r WorkRecord) MarshalJSON() ([]byte, error) {
	out := workRecordJSON{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Date:         r.Date,
		ClientIDs:    r.ClientIDs,
		IsAbsence:    r.IsAbsence,
		DailyAdvance: r.DailyAdvance,
		CreatedAt:    r.CreatedAt,
	}
	if out.ClientIDs == nil {
		out.ClientIDs = []string{}
	}

	switch data := r.Shifts.(type) {
	case Shifts:
		out.ClientShifts = data
	case LegacyHours:
		out.ClientHours = data
	}

	return json.Marshal(out)
}

// UnmarshalJSON accepts both generations of records. When both maps are
// present the shift map wins.
func (r *WorkRecord) UnmarshalJSON(data []byte) error {
	var in workRecordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to decode work record: %w", err)
	}

	*r = WorkRecord{
		ID:           in.ID,
		EmployeeID:   in.EmployeeID,
		Date:         in.Date,
		ClientIDs:    in.ClientIDs,
		Shifts:       NewShiftData(in.ClientShifts, in.ClientHours),
		IsAbsence:    in.IsAbsence,
		DailyAdvance: in.DailyAdvance,
		CreatedAt:    in.CreatedAt,
	}

	return nil
}

// NewShiftData picks the variant for stored maps: shifts when non-empty,
// otherwise legacy hours when non-empty, otherwise nil.
func NewShiftData(shifts map[string]WorkShift, hours map[string]float64) ShiftData {
	switch {
	case len(shifts) > 0:
		return Shifts(shifts)
	case len(hours) > 0:
		return LegacyHours(hours)
	default:
		return nil
	}
}
