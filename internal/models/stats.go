package models

import "github.com/shopspring/decimal"

// PeriodStats summarizes one window of work records.
type PeriodStats struct {
	WorkDays      int             `json:"workDays"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
}

// EmployeeStats holds the two standard windows for an employee.
type EmployeeStats struct {
	EmployeeID   string      `json:"employeeId"`
	Last15Days   PeriodStats `json:"last15Days"`
	CurrentMonth PeriodStats `json:"currentMonth"`
}

// MonthlyStats summarizes a calendar month for an employee.
type MonthlyStats struct {
	WorkDays      int             `json:"workDays"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	AbsenceDays   int             `json:"absenceDays"`
	TotalRecords  int             `json:"totalRecords"`
	DailyAdvances decimal.Decimal `json:"dailyAdvances"` // Sum of per-record advances in the month
}

// FleetTotals combines the current month of every employee.
type FleetTotals struct {
	TotalEmployees int             `json:"totalEmployees"`
	TotalWorkDays  int             `json:"totalWorkDays"`
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
	TotalAdvances  decimal.Decimal `json:"totalAdvances"`
	NetEarnings    decimal.Decimal `json:"netEarnings"`
}
