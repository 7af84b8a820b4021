// Package report renders monthly earnings as an Excel workbook.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/UnknownOlympus/tally/internal/earnings"
	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoEmployees is returned when a report is requested for an empty fleet.
var ErrNoEmployees = errors.New("failed to generate report, 0 employees were provided")

// SummarySheet is the name of the first sheet of every report.
const SummarySheet = "Summary"

const maxSheetName = 31

// EmployeeMonth is one employee's input to the monthly report.
type EmployeeMonth struct {
	Employee models.Employee
	Stats    models.MonthlyStats
	Records  []models.WorkRecord
}

// MonthlyReport is everything needed to render a month.
type MonthlyReport struct {
	Year        int
	Month       time.Month
	ClientNames map[string]string // client id to display name
	Employees   []EmployeeMonth
}

// Generator holds the state for the Excel report generation process.
type Generator struct {
	file        *excelize.File
	headerStyle int
	clientNames map[string]string
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		file: excelize.NewFile(),
	}
}

// GenerateMonthlyReport builds a workbook with a Summary sheet listing every
// employee and one detail sheet per employee with a row per work record.
func GenerateMonthlyReport(report MonthlyReport) (*bytes.Buffer, error) {
	var err error

	if len(report.Employees) == 0 {
		return nil, ErrNoEmployees
	}

	gen := NewGenerator()
	defer gen.file.Close()
	gen.clientNames = report.ClientNames

	if gen.headerStyle, err = gen.newHeaderStyle(); err != nil {
		return nil, err
	}

	if err = gen.addSummary(report.Employees); err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}

	used := map[string]int{strings.ToLower(SummarySheet): 1, "sheet1": 1}
	for i, month := range report.Employees {
		sheetName := uniqueSheetName(month.Employee.Name, used)
		if err = gen.addEmployeeSheet(sheetName, i+1, month); err != nil {
			return nil, fmt.Errorf("failed to add sheet for %s: %w", month.Employee.Name, err)
		}
	}

	if index, _ := gen.file.GetSheetIndex(SummarySheet); index != -1 {
		gen.file.SetActiveSheet(index)
	}

	// delete default sheet
	if sheetIndex, _ := gen.file.GetSheetIndex("Sheet1"); sheetIndex != -1 {
		if err = gen.file.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet 'Sheet1': %w", err)
		}
	}

	if err = gen.file.SetDocProps(&excelize.DocProperties{
		Title: fmt.Sprintf("Earnings %d-%02d", report.Year, report.Month),
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	buffer, err := gen.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write data from saved file: %w", err)
	}

	return buffer, nil
}

func (g *Generator) newHeaderStyle() (int, error) {
	style, err := g.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create new style: %w", err)
	}
	return style, nil
}

func (g *Generator) addSummary(months []EmployeeMonth) error {
	if _, err := g.file.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to generate new sheet '%s': %w", SummarySheet, err)
	}

	headers := []string{"Employee", "Daily Rate", "Work Days", "Absence Days", "Earnings", "Advances", "Net"}
	widths := []float64{28, 14, 12, 14, 16, 16, 16}
	if err := g.setupSheet(SummarySheet, 0, headers, widths, len(months)); err != nil {
		return err
	}

	for i, month := range months {
		net := month.Stats.TotalEarnings.Sub(month.Employee.Advances)
		row := []any{
			month.Employee.Name,
			month.Employee.DailyRate.InexactFloat64(),
			month.Stats.WorkDays,
			month.Stats.AbsenceDays,
			month.Stats.TotalEarnings.InexactFloat64(),
			month.Employee.Advances.InexactFloat64(),
			net.InexactFloat64(),
		}
		if err := g.setRow(SummarySheet, i+2, row); err != nil { // first row is the header
			return err
		}
	}
	return nil
}

func (g *Generator) addEmployeeSheet(sheetName string, tableID int, month EmployeeMonth) error {
	if _, err := g.file.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to generate new sheet '%s': %w", sheetName, err)
	}

	headers := []string{"Date", "Clients", "Shift", "Hours", "Earnings", "Daily Advance"}
	widths := []float64{14, 40, 10, 10, 14, 16}
	if err := g.setupSheet(sheetName, tableID, headers, widths, len(month.Records)); err != nil {
		return err
	}

	for i, record := range month.Records {
		amount, err := earnings.DailyEarnings(record, month.Employee.DailyRate)
		if err != nil {
			return fmt.Errorf("failed to compute earnings for %s: %w", record.Date, err)
		}

		shift := earnings.Classify(record).String()
		if record.IsAbsence {
			shift = "absent"
		}

		var advance any = ""
		if record.DailyAdvance.Valid {
			advance = record.DailyAdvance.Decimal.InexactFloat64()
		}

		row := []any{
			record.Date,
			g.clientList(record.ClientIDs),
			shift,
			earnings.HoursForRecord(record),
			amount.InexactFloat64(),
			advance,
		}
		if err = g.setRow(sheetName, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// setupSheet writes the styled header row, column widths and, when the
// sheet has data, a table over the used range.
func (g *Generator) setupSheet(sheetName string, tableID int, headers []string, widths []float64, rowCount int) error {
	var err error

	rowHeight := 20
	if err = g.file.SetRowHeight(sheetName, 1, float64(rowHeight)); err != nil {
		return fmt.Errorf("failed to set row height for headers: %w", err)
	}
	if err = g.file.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to set sheet row for headers: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("failed to resolve last column: %w", err)
	}
	if err = g.file.SetCellStyle(sheetName, "A1", lastCol+"1", g.headerStyle); err != nil {
		return fmt.Errorf("failed to set cell style for headers: %w", err)
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err = g.file.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if rowCount == 0 {
		return nil
	}

	if err = g.file.AddTable(sheetName, &excelize.Table{
		Range:     fmt.Sprintf("A1:%s%d", lastCol, rowCount+1),
		Name:      fmt.Sprintf("table_%d", tableID),
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}

	return nil
}

func (g *Generator) setRow(sheetName string, rowNum int, row []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := g.file.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to set sheet row %d: %w", rowNum, err)
	}
	return nil
}

// clientList renders client ids by name. Unknown ids, such as deleted
// clients, are shown as they are.
func (g *Generator) clientList(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := g.clientNames[id]; ok && name != "" {
			names = append(names, name)
			continue
		}
		names = append(names, id)
	}
	return strings.Join(names, ", ")
}

// uniqueSheetName cleans a sheet name for Excel and appends a counter when
// the name is already taken.
func uniqueSheetName(name string, used map[string]int) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Employee"
	}
	name = truncateSheetName(name)

	key := strings.ToLower(name)
	used[key]++
	if used[key] == 1 {
		return name
	}

	suffix := fmt.Sprintf(" (%d)", used[key])
	return truncateSheetName(name, maxSheetName-len(suffix)) + suffix
}

// truncateSheetName truncates the given sheet name to limit runes, 31 when no
// limit is given.
func truncateSheetName(name string, limit ...int) string {
	maxRunes := maxSheetName
	if len(limit) > 0 {
		maxRunes = limit[0]
	}
	if utf8.RuneCountInString(name) > maxRunes {
		runes := []rune(name)
		return string(runes[:maxRunes])
	}
	return name
}
