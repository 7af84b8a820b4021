package stats

import (
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
)

// WorkDaysInMonth counts Monday to Friday in the month.
func WorkDaysInMonth(year int, month time.Month) int {
	count := 0
	for day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); day.Month() == month; day = day.AddDate(0, 0, 1) {
		if !isWeekendDay(day) {
			count++
		}
	}
	return count
}

// DateRange lists every date from start to end, both included.
// It returns nil when either bound is malformed or start is after end.
func DateRange(start, end string) []string {
	from, err := models.ParseDate(start, time.UTC)
	if err != nil {
		return nil
	}
	to, err := models.ParseDate(end, time.UTC)
	if err != nil {
		return nil
	}

	var dates []string
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dates = append(dates, models.FormatDate(day))
	}
	return dates
}

// IsWeekend reports whether a YYYY-MM-DD date is a Saturday or Sunday.
func IsWeekend(date string) (bool, error) {
	day, err := models.ParseDate(date, time.UTC)
	if err != nil {
		return false, err
	}
	return isWeekendDay(day), nil
}

func isWeekendDay(day time.Time) bool {
	return day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
}
