package stats

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownEmployee = errors.New("stats refer to an unknown employee")
	ErrMissingStats    = errors.New("employee has no stats")
	ErrDuplicateStats  = errors.New("employee has more than one stats entry")
)

// FleetTotals combines the current month of every employee. Advances come
// from Employee.Advances only; per-record daily advances are a separate
// ledger and are not used here. Net earnings subtract each employee's
// advances from that employee's earnings before summing.
//
// Every stats entry must match exactly one employee and every employee must
// have exactly one stats entry; otherwise no totals are returned.
func FleetTotals(employees []models.Employee, statsList []models.EmployeeStats) (models.FleetTotals, error) {
	byID := make(map[string]models.Employee, len(employees))
	for _, employee := range employees {
		byID[employee.ID] = employee
	}

	seen := make(map[string]struct{}, len(statsList))
	for _, stat := range statsList {
		if _, ok := byID[stat.EmployeeID]; !ok {
			return models.FleetTotals{}, fmt.Errorf("%w: %s", ErrUnknownEmployee, stat.EmployeeID)
		}
		if _, dup := seen[stat.EmployeeID]; dup {
			return models.FleetTotals{}, fmt.Errorf("%w: %s", ErrDuplicateStats, stat.EmployeeID)
		}
		seen[stat.EmployeeID] = struct{}{}
	}
	for _, employee := range employees {
		if _, ok := seen[employee.ID]; !ok {
			return models.FleetTotals{}, fmt.Errorf("%w: %s", ErrMissingStats, employee.ID)
		}
	}

	totals := models.FleetTotals{
		TotalEmployees: len(employees),
		TotalEarnings:  decimal.Zero,
		TotalAdvances:  decimal.Zero,
		NetEarnings:    decimal.Zero,
	}

	for _, stat := range statsList {
		advances := byID[stat.EmployeeID].Advances
		earned := stat.CurrentMonth.TotalEarnings

		totals.TotalWorkDays += stat.CurrentMonth.WorkDays
		totals.TotalEarnings = totals.TotalEarnings.Add(earned)
		totals.TotalAdvances = totals.TotalAdvances.Add(advances)
		totals.NetEarnings = totals.NetEarnings.Add(earned.Sub(advances))
	}

	return totals, nil
}
