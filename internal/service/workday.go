package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/shopspring/decimal"
)

// WorkDayInput is what the owner enters for one employee on one date.
type WorkDayInput struct {
	EmployeeID string   `validate:"required"`
	Date       string   `validate:"required,datetime=2006-01-02"`
	ClientIDs  []string `validate:"dive,required"`
	// Shifts is optional; clients listed here are assigned even when missing
	// from ClientIDs.
	Shifts    models.Shifts
	IsAbsence bool
	// Advance is cash handed out on that date, zero for none.
	Advance decimal.Decimal `validate:"gte=0"`
}

// SaveWorkDay stores the day of one employee. A day with an absence mark or
// at least one client is written in place of any existing record for the
// same employee and date; a day with neither deletes that record. A positive
// advance is added to the record and then, as a second write, to the
// employee's cumulative advances. The returned bool reports whether a record
// is stored for the day.
func (s *Service) SaveWorkDay(ctx context.Context, input WorkDayInput) (models.WorkRecord, bool, error) {
	defer s.metrics.ObserveStorage("save_work_day", time.Now())

	if err := s.check(input); err != nil {
		return models.WorkRecord{}, false, err
	}

	if _, err := s.GetEmployee(ctx, input.EmployeeID); err != nil {
		return models.WorkRecord{}, false, err
	}

	record := buildRecord(input)
	if !record.IsAbsence {
		if err := s.checkClients(ctx, record.ClientIDs); err != nil {
			return models.WorkRecord{}, false, err
		}
	}

	existing, found, err := s.findRecord(ctx, input.EmployeeID, input.Date)
	if err != nil {
		return models.WorkRecord{}, false, err
	}

	stored := record.HasActivity()
	switch {
	case stored && found:
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.DailyAdvance = addAdvance(existing.DailyAdvance, input.Advance)
		if err = s.store.UpdateWorkRecord(ctx, record); err != nil {
			return models.WorkRecord{}, false, fmt.Errorf("failed to update work record: %w", err)
		}
	case stored:
		record.ID = s.newID()
		record.CreatedAt = s.now().UTC()
		record.DailyAdvance = addAdvance(decimal.NullDecimal{}, input.Advance)
		if err = s.store.AddWorkRecord(ctx, record); err != nil {
			return models.WorkRecord{}, false, fmt.Errorf("failed to add work record: %w", err)
		}
	case found:
		if err = s.store.DeleteWorkRecord(ctx, existing.ID); err != nil {
			return models.WorkRecord{}, false, fmt.Errorf("failed to delete empty work record: %w", err)
		}
	}

	if input.Advance.IsPositive() {
		if _, err = s.RecordAdvance(ctx, input.EmployeeID, input.Advance); err != nil {
			s.log.ErrorContext(ctx, "Work day saved but advance was not applied",
				"employee_id", input.EmployeeID, "date", input.Date, "error", err)
			return record, stored, fmt.Errorf("failed to apply advance: %w", err)
		}
	}

	s.log.DebugContext(ctx, "Work day saved",
		"employee_id", input.EmployeeID, "date", input.Date, "stored", stored)
	return record, stored, nil
}

// ClearDay deletes the record of an employee on a date, if any.
func (s *Service) ClearDay(ctx context.Context, employeeID, date string) error {
	if _, err := models.ParseDate(date, s.loc); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	existing, found, err := s.findRecord(ctx, employeeID, date)
	if err != nil || !found {
		return err
	}

	if err = s.store.DeleteWorkRecord(ctx, existing.ID); err != nil {
		return fmt.Errorf("failed to clear day: %w", err)
	}
	return nil
}

// WorkRecords returns every record of an employee ordered by date.
func (s *Service) WorkRecords(ctx context.Context, employeeID string) ([]models.WorkRecord, error) {
	records, err := s.store.WorkRecordsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work records: %w", err)
	}
	return records, nil
}

// WorkRecord returns the record of an employee on a date or ErrWorkRecordNotFound.
func (s *Service) WorkRecord(ctx context.Context, employeeID, date string) (models.WorkRecord, error) {
	record, found, err := s.findRecord(ctx, employeeID, date)
	if err != nil {
		return models.WorkRecord{}, err
	}
	if !found {
		return models.WorkRecord{}, fmt.Errorf("%w: %s on %s", ErrWorkRecordNotFound, employeeID, date)
	}
	return record, nil
}

func (s *Service) findRecord(ctx context.Context, employeeID, date string) (models.WorkRecord, bool, error) {
	records, err := s.store.WorkRecordsByDateRange(ctx, employeeID, date, date)
	if err != nil {
		return models.WorkRecord{}, false, fmt.Errorf("failed to look up work record: %w", err)
	}
	if len(records) == 0 {
		return models.WorkRecord{}, false, nil
	}
	return records[0], true, nil
}

func (s *Service) checkClients(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}

	known := make(map[string]struct{}, len(clients))
	for _, client := range clients {
		known[client.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: %s", ErrClientNotFound, id)
		}
	}
	return nil
}

// buildRecord normalizes the input into a record without identity. An
// absence drops clients and shifts.
func buildRecord(input WorkDayInput) models.WorkRecord {
	record := models.WorkRecord{
		EmployeeID: input.EmployeeID,
		Date:       input.Date,
		IsAbsence:  input.IsAbsence,
		ClientIDs:  []string{},
	}
	if input.IsAbsence {
		return record
	}

	for _, id := range input.ClientIDs {
		if !slices.Contains(record.ClientIDs, id) {
			record.ClientIDs = append(record.ClientIDs, id)
		}
	}

	extra := make([]string, 0, len(input.Shifts))
	for id := range input.Shifts {
		if !slices.Contains(record.ClientIDs, id) {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	record.ClientIDs = append(record.ClientIDs, extra...)

	if len(input.Shifts) > 0 {
		record.Shifts = input.Shifts
	}

	return record
}

func addAdvance(current decimal.NullDecimal, amount decimal.Decimal) decimal.NullDecimal {
	if !amount.IsPositive() {
		return current
	}
	if !current.Valid {
		return decimal.NewNullDecimal(amount)
	}
	return decimal.NewNullDecimal(current.Decimal.Add(amount))
}
