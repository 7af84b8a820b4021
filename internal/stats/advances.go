package stats

import (
	"strings"
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/shopspring/decimal"
)

// TotalDailyAdvances sums the advances logged on individual records.
func TotalDailyAdvances(records []models.WorkRecord) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		if record.DailyAdvance.Valid {
			total = total.Add(record.DailyAdvance.Decimal)
		}
	}
	return total
}

// MonthlyDailyAdvances sums the per-record advances dated in the given month.
func MonthlyDailyAdvances(records []models.WorkRecord, year int, month time.Month) decimal.Decimal {
	window := MonthWindow(year, month)

	inMonth := make([]models.WorkRecord, 0, len(records))
	for _, record := range records {
		if window.Contains(record.Date) {
			inMonth = append(inMonth, record)
		}
	}
	return TotalDailyAdvances(inMonth)
}

// FormatCurrency renders an amount with two decimals and a currency code.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	return amount.StringFixed(2) + " " + currency
}

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "MAD"
