// Package earnings turns a single work record into worked hours and pay.
package earnings

import "github.com/UnknownOlympus/tally/internal/models"

const (
	halfDayHours = 4
	fullDayHours = 8
)

// HoursForShift returns the hours a shift stands for. AllDay is 8 hours no
// matter what else is set, otherwise each half adds 4.
func HoursForShift(shift models.WorkShift) float64 {
	if shift.AllDay {
		return fullDayHours
	}

	var hours float64
	if shift.Morning {
		hours += halfDayHours
	}
	if shift.Evening {
		hours += halfDayHours
	}
	return hours
}

// HoursForRecord returns the hours worked on a record. Shift records are
// normalized to 4/8 hour blocks, legacy hour values are summed as stored.
func HoursForRecord(record models.WorkRecord) float64 {
	if record.IsAbsence {
		return 0
	}

	var total float64
	switch data := record.Shifts.(type) {
	case models.Shifts:
		for _, shift := range data {
			total += HoursForShift(shift)
		}
	case models.LegacyHours:
		for _, hours := range data {
			total += hours
		}
	}
	return total
}
