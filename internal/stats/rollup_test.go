package stats_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/stats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFleetTotals(t *testing.T) {
	t.Parallel()

	employees := []models.Employee{
		{ID: "e1", DailyRate: dec("100"), Advances: dec("150")},
		{ID: "e2", DailyRate: dec("80")},
		{ID: "e3", DailyRate: dec("120"), Advances: dec("20.50")},
	}
	statsList := []models.EmployeeStats{
		{EmployeeID: "e1", CurrentMonth: models.PeriodStats{WorkDays: 10, TotalEarnings: dec("1000")}},
		{EmployeeID: "e2", CurrentMonth: models.PeriodStats{WorkDays: 3, TotalEarnings: dec("200")}},
		{EmployeeID: "e3", CurrentMonth: models.PeriodStats{WorkDays: 0, TotalEarnings: decimal.Zero}},
	}

	got, err := stats.FleetTotals(employees, statsList)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalEmployees)
	assert.Equal(t, 13, got.TotalWorkDays)
	assert.True(t, dec("1200").Equal(got.TotalEarnings))
	assert.True(t, dec("170.50").Equal(got.TotalAdvances))

	// (1000-150) + (200-0) + (0-20.50)
	assert.True(t, dec("1029.50").Equal(got.NetEarnings), "net %s", got.NetEarnings)
	assert.True(t, got.TotalEarnings.Sub(got.TotalAdvances).Equal(got.NetEarnings))
}

func TestFleetTotals_OrderInsensitive(t *testing.T) {
	t.Parallel()

	employees := []models.Employee{
		{ID: "e1", Advances: dec("10")},
		{ID: "e2", Advances: dec("5")},
	}
	statsList := []models.EmployeeStats{
		{EmployeeID: "e1", CurrentMonth: models.PeriodStats{WorkDays: 2, TotalEarnings: dec("40")}},
		{EmployeeID: "e2", CurrentMonth: models.PeriodStats{WorkDays: 1, TotalEarnings: dec("25")}},
	}

	forward, err := stats.FleetTotals(employees, statsList)
	require.NoError(t, err)
	reversed, err := stats.FleetTotals(
		[]models.Employee{employees[1], employees[0]},
		[]models.EmployeeStats{statsList[1], statsList[0]},
	)
	require.NoError(t, err)

	assert.Equal(t, forward.TotalEmployees, reversed.TotalEmployees)
	assert.Equal(t, forward.TotalWorkDays, reversed.TotalWorkDays)
	assert.True(t, forward.TotalEarnings.Equal(reversed.TotalEarnings))
	assert.True(t, forward.TotalAdvances.Equal(reversed.TotalAdvances))
	assert.True(t, forward.NetEarnings.Equal(reversed.NetEarnings))
	assert.True(t, dec("50").Equal(forward.NetEarnings))
}

func TestFleetTotals_Empty(t *testing.T) {
	t.Parallel()

	got, err := stats.FleetTotals(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalEmployees)
	assert.True(t, got.NetEarnings.IsZero())
}

func TestFleetTotals_UnmatchedEmployees(t *testing.T) {
	t.Parallel()

	employees := []models.Employee{{ID: "e1", Advances: dec("50")}}
	month := models.PeriodStats{WorkDays: 3, TotalEarnings: dec("300")}

	tests := []struct {
		name      string
		employees []models.Employee
		statsList []models.EmployeeStats
		wantErr   error
	}{
		{
			name:      "stats for an unknown employee",
			employees: employees,
			statsList: []models.EmployeeStats{{EmployeeID: "ghost", CurrentMonth: month}},
			wantErr:   stats.ErrUnknownEmployee,
		},
		{
			name:      "employee without stats",
			employees: append(employees, models.Employee{ID: "e2"}),
			statsList: []models.EmployeeStats{{EmployeeID: "e1", CurrentMonth: month}},
			wantErr:   stats.ErrMissingStats,
		},
		{
			name:      "two entries for one employee",
			employees: employees,
			statsList: []models.EmployeeStats{
				{EmployeeID: "e1", CurrentMonth: month},
				{EmployeeID: "e1", CurrentMonth: month},
			},
			wantErr: stats.ErrDuplicateStats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := stats.FleetTotals(tt.employees, tt.statsList)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, models.FleetTotals{}, got)
		})
	}
}

func TestDailyAdvances(t *testing.T) {
	t.Parallel()

	records := []models.WorkRecord{
		{Date: "2024-05-31", DailyAdvance: decimal.NewNullDecimal(dec("15"))},
		{Date: "2024-06-01", DailyAdvance: decimal.NewNullDecimal(dec("20"))},
		{Date: "2024-06-30", DailyAdvance: decimal.NewNullDecimal(dec("5.25"))},
		{Date: "2024-06-15"},
	}

	assert.True(t, dec("40.25").Equal(stats.TotalDailyAdvances(records)))
	assert.True(t, dec("25.25").Equal(stats.MonthlyDailyAdvances(records, 2024, time.June)))
	assert.True(t, stats.MonthlyDailyAdvances(records, 2024, time.July).IsZero())
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "100.00 MAD", stats.FormatCurrency(dec("100"), ""))
	assert.Equal(t, "62.63 EUR", stats.FormatCurrency(dec("62.625"), "EUR"))
}

func TestCalendarHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 20, stats.WorkDaysInMonth(2024, time.June))
	assert.Equal(t, 21, stats.WorkDaysInMonth(2024, time.February))

	assert.Equal(t,
		[]string{"2024-02-28", "2024-02-29", "2024-03-01"},
		stats.DateRange("2024-02-28", "2024-03-01"),
	)
	assert.Nil(t, stats.DateRange("2024-03-02", "2024-03-01"))
	assert.Nil(t, stats.DateRange("bad", "2024-03-01"))

	weekend, err := stats.IsWeekend("2024-06-08")
	require.NoError(t, err)
	assert.True(t, weekend)

	weekend, err = stats.IsWeekend("2024-06-10")
	require.NoError(t, err)
	assert.False(t, weekend)

	_, err = stats.IsWeekend("2024-13-01")
	require.ErrorIs(t, err, models.ErrInvalidDate)
}

func TestWindows(t *testing.T) {
	t.Parallel()

	ref := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, stats.Window{Start: "2024-02-24", End: "2024-03-10"}, stats.Last15Days(ref))
	assert.Equal(t, stats.Window{Start: "2024-03-01", End: "2024-03-10"}, stats.CurrentMonth(ref))
	assert.Equal(t, stats.Window{Start: "2024-02-01", End: "2024-02-29"}, stats.MonthWindow(2024, time.February))
	assert.Equal(t, stats.Window{Start: "2023-12-01", End: "2023-12-31"}, stats.MonthWindow(2023, time.December))

	assert.True(t, stats.Window{Start: "2024-03-01", End: "2024-03-10"}.Contains("2024-03-01"))
	assert.True(t, stats.Window{Start: "2024-03-01", End: "2024-03-10"}.Contains("2024-03-10"))
	assert.False(t, stats.Window{Start: "2024-03-01", End: "2024-03-10"}.Contains("2024-03-11"))
}
