package stats

import (
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
)

// lookbackDays is the length of the short window before the reference date.
const lookbackDays = 15

// Window is a closed range of calendar dates in YYYY-MM-DD form.
type Window struct {
	Start string
	End   string
}

// Contains reports whether date falls inside the window, bounds included.
func (w Window) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

// Last15Days returns [ref - 15 days, ref].
func Last15Days(ref time.Time) Window {
	return Window{
		Start: models.FormatDate(ref.AddDate(0, 0, -lookbackDays)),
		End:   models.FormatDate(ref),
	}
}

// CurrentMonth returns [first day of ref's month, ref].
func CurrentMonth(ref time.Time) Window {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return Window{
		Start: models.FormatDate(start),
		End:   models.FormatDate(ref),
	}
}

// MonthWindow returns the whole calendar month.
func MonthWindow(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Window{
		Start: models.FormatDate(start),
		End:   models.FormatDate(end),
	}
}
