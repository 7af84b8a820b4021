// Package stats aggregates work records into work days, earnings and
// advances over date windows, and rolls employees up into fleet totals.
// Everything is recomputed from the stored records on every call.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/tally/internal/earnings"
	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/shopspring/decimal"
)

// ErrInvalidMonth is returned for a month outside January..December.
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// RecordReader fetches one employee's records whose date lies in the closed
// range [start, end], compared as YYYY-MM-DD strings.
type RecordReader interface {
	WorkRecordsByDateRange(ctx context.Context, employeeID, start, end string) ([]models.WorkRecord, error)
}

// Engine computes statistics from the records returned by a RecordReader.
type Engine struct {
	records RecordReader
	loc     *time.Location
}

// NewEngine creates an engine. Reference dates are converted to loc before
// the windows are cut; a nil loc means time.Local.
func NewEngine(records RecordReader, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{records: records, loc: loc}
}

// EmployeeStats computes the last-15-days and current-month windows anchored
// at referenceDate.
func (e *Engine) EmployeeStats(
	ctx context.Context,
	employee models.Employee,
	referenceDate time.Time,
) (models.EmployeeStats, error) {
	ref := referenceDate.In(e.loc)

	last15, err := e.window(ctx, employee, Last15Days(ref))
	if err != nil {
		return models.EmployeeStats{}, fmt.Errorf("failed to compute last 15 days: %w", err)
	}

	month, err := e.window(ctx, employee, CurrentMonth(ref))
	if err != nil {
		return models.EmployeeStats{}, fmt.Errorf("failed to compute current month: %w", err)
	}

	return models.EmployeeStats{
		EmployeeID:   employee.ID,
		Last15Days:   last15,
		CurrentMonth: month,
	}, nil
}

// MonthlyStats computes a whole calendar month, with absences and the
// per-record advances of the month.
func (e *Engine) MonthlyStats(
	ctx context.Context,
	employee models.Employee,
	year int,
	month time.Month,
) (models.MonthlyStats, error) {
	if month < time.January || month > time.December {
		return models.MonthlyStats{}, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	window := MonthWindow(year, month)
	records, err := e.records.WorkRecordsByDateRange(ctx, employee.ID, window.Start, window.End)
	if err != nil {
		return models.MonthlyStats{}, fmt.Errorf("failed to fetch work records for %d-%02d: %w", year, month, err)
	}

	return SummarizeMonth(records, employee.DailyRate)
}

// SummarizeMonth builds the monthly view of records already limited to one
// month: work days, earnings, absences and per-record advances.
func SummarizeMonth(records []models.WorkRecord, dailyRate decimal.Decimal) (models.MonthlyStats, error) {
	period, err := Summarize(records, dailyRate)
	if err != nil {
		return models.MonthlyStats{}, err
	}

	absences := 0
	for _, record := range records {
		if record.IsAbsence {
			absences++
		}
	}

	return models.MonthlyStats{
		WorkDays:      period.WorkDays,
		TotalEarnings: period.TotalEarnings,
		AbsenceDays:   absences,
		TotalRecords:  len(records),
		DailyAdvances: TotalDailyAdvances(records),
	}, nil
}

func (e *Engine) window(ctx context.Context, employee models.Employee, window Window) (models.PeriodStats, error) {
	records, err := e.records.WorkRecordsByDateRange(ctx, employee.ID, window.Start, window.End)
	if err != nil {
		return models.PeriodStats{}, fmt.Errorf("failed to fetch work records: %w", err)
	}
	return Summarize(records, employee.DailyRate)
}

// Summarize counts every non-absence record as a work day, whatever it pays,
// and sums the daily earnings of all records.
func Summarize(records []models.WorkRecord, dailyRate decimal.Decimal) (models.PeriodStats, error) {
	summary := models.PeriodStats{TotalEarnings: decimal.Zero}

	for _, record := range records {
		if !record.IsAbsence {
			summary.WorkDays++
		}

		amount, err := earnings.DailyEarnings(record, dailyRate)
		if err != nil {
			return models.PeriodStats{}, fmt.Errorf("failed to compute earnings for %s: %w", record.Date, err)
		}
		summary.TotalEarnings = summary.TotalEarnings.Add(amount)
	}

	return summary, nil
}
