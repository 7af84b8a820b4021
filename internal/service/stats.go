package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/report"
	"github.com/UnknownOlympus/tally/internal/stats"
	"golang.org/x/sync/errgroup"
)

// FleetReport is the reports view: every employee with its windows and the
// fleet totals over the current month.
type FleetReport struct {
	Employees []models.Employee
	Stats     []models.EmployeeStats // same order as Employees
	Totals    models.FleetTotals
}

// EmployeeStats computes the last 15 days and current month of one employee.
func (s *Service) EmployeeStats(ctx context.Context, employeeID string) (models.EmployeeStats, error) {
	employee, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return models.EmployeeStats{}, err
	}
	return s.employeeStats(ctx, employee)
}

func (s *Service) employeeStats(ctx context.Context, employee models.Employee) (models.EmployeeStats, error) {
	result, err := s.engine.EmployeeStats(ctx, employee, s.today())
	if err != nil {
		return models.EmployeeStats{}, fmt.Errorf("failed to compute stats for %s: %w", employee.ID, err)
	}

	s.metrics.CountStats("last_15_days")
	s.metrics.CountStats("current_month")
	return result, nil
}

// AllEmployeeStats computes the windows of every employee concurrently. One
// failure fails the whole call.
func (s *Service) AllEmployeeStats(ctx context.Context) ([]models.Employee, []models.EmployeeStats, error) {
	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, nil, err
	}

	results := make([]models.EmployeeStats, len(employees))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, employee := range employees {
		group.Go(func() error {
			result, errStats := s.employeeStats(groupCtx, employee)
			if errStats != nil {
				return errStats
			}
			results[i] = result
			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, nil, err
	}

	return employees, results, nil
}

// MonthlyStats computes one calendar month of one employee.
func (s *Service) MonthlyStats(
	ctx context.Context,
	employeeID string,
	year int,
	month time.Month,
) (models.MonthlyStats, error) {
	employee, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return models.MonthlyStats{}, err
	}

	result, err := s.engine.MonthlyStats(ctx, employee, year, month)
	if err != nil {
		return models.MonthlyStats{}, fmt.Errorf("failed to compute monthly stats: %w", err)
	}

	s.metrics.CountStats("month")
	return result, nil
}

// FleetReport rolls every employee up into the reports view.
func (s *Service) FleetReport(ctx context.Context) (FleetReport, error) {
	employees, results, err := s.AllEmployeeStats(ctx)
	if err != nil {
		return FleetReport{}, err
	}

	totals, err := stats.FleetTotals(employees, results)
	if err != nil {
		return FleetReport{}, fmt.Errorf("failed to roll up fleet totals: %w", err)
	}

	return FleetReport{
		Employees: employees,
		Stats:     results,
		Totals:    totals,
	}, nil
}

// MonthlyExport renders a month of every employee as an Excel workbook.
func (s *Service) MonthlyExport(ctx context.Context, year int, month time.Month) (*bytes.Buffer, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %w", ErrValidation, stats.ErrInvalidMonth)
	}

	start := time.Now()
	if s.metrics != nil {
		defer func() { s.metrics.ReportGeneration.Observe(time.Since(start).Seconds()) }()
	}

	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := s.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	clientNames := make(map[string]string, len(clients))
	for _, client := range clients {
		clientNames[client.ID] = client.Name
	}

	window := stats.MonthWindow(year, month)
	months := make([]report.EmployeeMonth, len(employees))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, employee := range employees {
		group.Go(func() error {
			records, errRecords := s.store.WorkRecordsByDateRange(groupCtx, employee.ID, window.Start, window.End)
			if errRecords != nil {
				return fmt.Errorf("failed to fetch records of %s: %w", employee.ID, errRecords)
			}
			monthly, errStats := stats.SummarizeMonth(records, employee.DailyRate)
			if errStats != nil {
				return fmt.Errorf("failed to compute monthly stats of %s: %w", employee.ID, errStats)
			}
			months[i] = report.EmployeeMonth{Employee: employee, Stats: monthly, Records: records}
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}

	buffer, err := report.GenerateMonthlyReport(report.MonthlyReport{
		Year:        year,
		Month:       month,
		ClientNames: clientNames,
		Employees:   months,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate monthly report: %w", err)
	}

	s.log.InfoContext(ctx, "Monthly export generated", "year", year, "month", int(month), "employees", len(employees))
	return buffer, nil
}
