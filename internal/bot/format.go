package bot

import (
	"fmt"
	"strings"

	"github.com/UnknownOlympus/tally/internal/i18n"
	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/service"
	"github.com/UnknownOlympus/tally/internal/stats"
)

// formatter renders views in one language and currency.
type formatter struct {
	localizer *i18n.Localizer
	lang      string
	currency  string
}

func (f formatter) t(key string) string {
	return f.localizer.Get(f.lang, key)
}

func (f formatter) employees(employees []models.Employee) string {
	if len(employees) == 0 {
		return f.t("employees.empty")
	}

	var builder strings.Builder
	builder.WriteString(f.t("employees.title"))
	builder.WriteString("\n")
	for _, employee := range employees {
		fmt.Fprintf(&builder, "\n• %s: %s/%s, %s %s",
			employee.Name,
			stats.FormatCurrency(employee.DailyRate, f.currency),
			f.t("unit.day"),
			f.t("label.advances"),
			stats.FormatCurrency(employee.Advances, f.currency),
		)
	}
	return builder.String()
}

func (f formatter) clients(clients []models.Client) string {
	if len(clients) == 0 {
		return f.t("clients.empty")
	}

	var builder strings.Builder
	builder.WriteString(f.t("clients.title"))
	builder.WriteString("\n")
	for _, client := range clients {
		builder.WriteString("\n• " + client.Name)
		if client.Location != "" {
			builder.WriteString(" (" + client.Location + ")")
		}
	}
	return builder.String()
}

func (f formatter) period(title string, period models.PeriodStats) string {
	return fmt.Sprintf("%s\n  %s: %d\n  %s: %s",
		title,
		f.t("label.work_days"), period.WorkDays,
		f.t("label.earnings"), stats.FormatCurrency(period.TotalEarnings, f.currency),
	)
}

func (f formatter) employeeStats(employee models.Employee, result models.EmployeeStats) string {
	net := result.CurrentMonth.TotalEarnings.Sub(employee.Advances)
	return strings.Join([]string{
		employee.Name,
		f.period(f.t("stats.last_15_days"), result.Last15Days),
		f.period(f.t("stats.current_month"), result.CurrentMonth),
		fmt.Sprintf("%s: %s", f.t("label.advances"), stats.FormatCurrency(employee.Advances, f.currency)),
		fmt.Sprintf("%s: %s", f.t("label.net"), stats.FormatCurrency(net, f.currency)),
	}, "\n\n")
}

func (f formatter) monthlyStats(employee models.Employee, month string, result models.MonthlyStats) string {
	lines := []string{
		fmt.Sprintf("%s, %s", employee.Name, month),
		fmt.Sprintf("%s: %d", f.t("label.work_days"), result.WorkDays),
		fmt.Sprintf("%s: %d", f.t("label.absence_days"), result.AbsenceDays),
		fmt.Sprintf("%s: %d", f.t("label.records"), result.TotalRecords),
		fmt.Sprintf("%s: %s", f.t("label.earnings"), stats.FormatCurrency(result.TotalEarnings, f.currency)),
		fmt.Sprintf("%s: %s", f.t("label.daily_advances"), stats.FormatCurrency(result.DailyAdvances, f.currency)),
	}
	return strings.Join(lines, "\n")
}

func (f formatter) fleet(report service.FleetReport) string {
	totals := report.Totals
	lines := []string{
		f.t("report.title"),
		"",
		fmt.Sprintf("%s: %d", f.t("label.employees"), totals.TotalEmployees),
		fmt.Sprintf("%s: %d", f.t("label.work_days"), totals.TotalWorkDays),
		fmt.Sprintf("%s: %s", f.t("label.earnings"), stats.FormatCurrency(totals.TotalEarnings, f.currency)),
		fmt.Sprintf("%s: %s", f.t("label.advances"), stats.FormatCurrency(totals.TotalAdvances, f.currency)),
		fmt.Sprintf("%s: %s", f.t("label.net"), stats.FormatCurrency(totals.NetEarnings, f.currency)),
	}

	byID := make(map[string]models.EmployeeStats, len(report.Stats))
	for _, result := range report.Stats {
		byID[result.EmployeeID] = result
	}
	if len(report.Employees) > 0 {
		lines = append(lines, "")
	}
	for _, employee := range report.Employees {
		month := byID[employee.ID].CurrentMonth
		lines = append(lines, fmt.Sprintf("• %s: %d %s, %s",
			employee.Name, month.WorkDays, f.t("unit.days"), stats.FormatCurrency(month.TotalEarnings, f.currency)))
	}

	return strings.Join(lines, "\n")
}
