package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/storage"
	"github.com/jackc/pgx/v5"
)

// ListWorkRecords returns every stored work record.
func (r *Repository) ListWorkRecords(ctx context.Context) ([]models.WorkRecord, error) {
	return r.queryWorkRecords(ctx, ListWorkRecordsSQL)
}

// WorkRecordsByEmployee returns all records of one employee ordered by date.
func (r *Repository) WorkRecordsByEmployee(ctx context.Context, employeeID string) ([]models.WorkRecord, error) {
	return r.queryWorkRecords(ctx, WorkRecordsByEmployeeSQL, employeeID)
}

// WorkRecordsByDateRange returns one employee's records dated from start to
// end, both included.
func (r *Repository) WorkRecordsByDateRange(
	ctx context.Context,
	employeeID, start, end string,
) ([]models.WorkRecord, error) {
	return r.queryWorkRecords(ctx, WorkRecordsByDateRangeSQL, employeeID, start, end)
}

// GetWorkRecord returns the record with the given id or storage.ErrNotFound.
func (r *Repository) GetWorkRecord(ctx context.Context, id string) (models.WorkRecord, error) {
	record, err := scanWorkRecord(r.db.QueryRow(ctx, GetWorkRecordSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.WorkRecord{}, fmt.Errorf("work record %s: %w", id, storage.ErrNotFound)
		}
		return models.WorkRecord{}, fmt.Errorf("failed to get work record: %w", err)
	}
	return record, nil
}

// AddWorkRecord inserts a new work record.
func (r *Repository) AddWorkRecord(ctx context.Context, record models.WorkRecord) error {
	hours, shifts, err := encodeShiftData(record.Shifts)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, InsertWorkRecordSQL,
		record.ID, record.EmployeeID, record.Date, clientIDs(record), hours, shifts,
		record.IsAbsence, record.DailyAdvance, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert work record: %w", err)
	}
	return nil
}

// UpdateWorkRecord replaces the record with the same id.
func (r *Repository) UpdateWorkRecord(ctx context.Context, record models.WorkRecord) error {
	hours, shifts, err := encodeShiftData(record.Shifts)
	if err != nil {
		return err
	}

	cmdTag, err := r.db.Exec(ctx, UpdateWorkRecordSQL,
		record.ID, record.EmployeeID, record.Date, clientIDs(record), hours, shifts,
		record.IsAbsence, record.DailyAdvance,
	)
	if err != nil {
		return fmt.Errorf("failed to update work record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("work record %s: %w", record.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteWorkRecord removes a work record.
func (r *Repository) DeleteWorkRecord(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, DeleteWorkRecordSQL, id); err != nil {
		return fmt.Errorf("failed to delete work record %s: %w", id, err)
	}
	return nil
}

func (r *Repository) queryWorkRecords(ctx context.Context, query string, args ...any) ([]models.WorkRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work records: %w", err)
	}
	defer rows.Close()

	var records []models.WorkRecord
	for rows.Next() {
		record, errScan := scanWorkRecord(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan work record row: %w", errScan)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read work record rows: %w", err)
	}

	return records, nil
}

func scanWorkRecord(row pgx.Row) (models.WorkRecord, error) {
	var (
		record     models.WorkRecord
		hoursJSON  []byte
		shiftsJSON []byte
	)

	if err := row.Scan(
		&record.ID,
		&record.EmployeeID,
		&record.Date,
		&record.ClientIDs,
		&hoursJSON,
		&shiftsJSON,
		&record.IsAbsence,
		&record.DailyAdvance,
		&record.CreatedAt,
	); err != nil {
		return models.WorkRecord{}, err
	}

	var (
		hours  map[string]float64
		shifts map[string]models.WorkShift
	)
	if len(hoursJSON) > 0 {
		if err := json.Unmarshal(hoursJSON, &hours); err != nil {
			return models.WorkRecord{}, fmt.Errorf("failed to decode client hours: %w", err)
		}
	}
	if len(shiftsJSON) > 0 {
		if err := json.Unmarshal(shiftsJSON, &shifts); err != nil {
			return models.WorkRecord{}, fmt.Errorf("failed to decode client shifts: %w", err)
		}
	}
	record.Shifts = models.NewShiftData(shifts, hours)

	return record, nil
}

// encodeShiftData returns the JSONB payloads for client_hours and
// client_shifts; the column of the variant not held stays NULL.
func encodeShiftData(data models.ShiftData) ([]byte, []byte, error) {
	switch value := data.(type) {
	case models.LegacyHours:
		hours, err := json.Marshal(map[string]float64(value))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode client hours: %w", err)
		}
		return hours, nil, nil
	case models.Shifts:
		shifts, err := json.Marshal(map[string]models.WorkShift(value))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode client shifts: %w", err)
		}
		return nil, shifts, nil
	default:
		return nil, nil, nil
	}
}

func clientIDs(record models.WorkRecord) []string {
	if record.ClientIDs == nil {
		return []string{}
	}
	return record.ClientIDs
}
