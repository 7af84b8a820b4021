package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/redis/go-redis/v9"
)

func employeeMeta(e models.Employee) (time.Time, string) { return e.CreatedAt, e.ID }
func clientMeta(c models.Client) (time.Time, string)     { return c.CreatedAt, c.ID }
func recordMeta(r models.WorkRecord) (time.Time, string) { return r.CreatedAt, r.ID }

// ListEmployees returns every employee ordered by creation time.
func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return listDocs(ctx, s, employeesKey, "employees", employeeMeta)
}

// GetEmployee returns the employee with the given id or storage.ErrNotFound.
func (s *Store) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	var employee models.Employee
	if err := s.getDoc(ctx, employeesKey, "employee", id, &employee); err != nil {
		return models.Employee{}, err
	}
	return employee, nil
}

func (s *Store) AddEmployee(ctx context.Context, employee models.Employee) error {
	return s.putDoc(ctx, employeesKey, "employee", employee.ID, employee)
}

func (s *Store) UpdateEmployee(ctx context.Context, employee models.Employee) error {
	return s.replaceDoc(ctx, employeesKey, "employee", employee.ID, employee)
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, employeesKey, "employee", id)
}

// ListClients returns every client ordered by creation time.
func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	return listDocs(ctx, s, clientsKey, "clients", clientMeta)
}

// GetClient returns the client with the given id or storage.ErrNotFound.
func (s *Store) GetClient(ctx context.Context, id string) (models.Client, error) {
	var client models.Client
	if err := s.getDoc(ctx, clientsKey, "client", id, &client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

func (s *Store) AddClient(ctx context.Context, client models.Client) error {
	return s.putDoc(ctx, clientsKey, "client", client.ID, client)
}

func (s *Store) UpdateClient(ctx context.Context, client models.Client) error {
	return s.replaceDoc(ctx, clientsKey, "client", client.ID, client)
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, clientsKey, "client", id)
}

// ListWorkRecords returns every work record ordered by creation time.
func (s *Store) ListWorkRecords(ctx context.Context) ([]models.WorkRecord, error) {
	return listDocs(ctx, s, workRecordsKey, "work records", recordMeta)
}

// GetWorkRecord returns the record with the given id or storage.ErrNotFound.
func (s *Store) GetWorkRecord(ctx context.Context, id string) (models.WorkRecord, error) {
	var record models.WorkRecord
	if err := s.getDoc(ctx, workRecordsKey, "work record", id, &record); err != nil {
		return models.WorkRecord{}, err
	}
	return record, nil
}

func (s *Store) AddWorkRecord(ctx context.Context, record models.WorkRecord) error {
	return s.putDoc(ctx, workRecordsKey, "work record", record.ID, record)
}

func (s *Store) UpdateWorkRecord(ctx context.Context, record models.WorkRecord) error {
	return s.replaceDoc(ctx, workRecordsKey, "work record", record.ID, record)
}

func (s *Store) DeleteWorkRecord(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, workRecordsKey, "work record", id)
}

// WorkRecordsByEmployee returns all records of one employee ordered by date.
func (s *Store) WorkRecordsByEmployee(ctx context.Context, employeeID string) ([]models.WorkRecord, error) {
	return s.filterRecords(ctx, func(r models.WorkRecord) bool {
		return r.EmployeeID == employeeID
	})
}

// WorkRecordsByDateRange returns one employee's records dated from start to
// end, both included. Dates compare lexically.
func (s *Store) WorkRecordsByDateRange(
	ctx context.Context,
	employeeID, start, end string,
) ([]models.WorkRecord, error) {
	return s.filterRecords(ctx, func(r models.WorkRecord) bool {
		return r.EmployeeID == employeeID && r.Date >= start && r.Date <= end
	})
}

func (s *Store) filterRecords(ctx context.Context, keep func(models.WorkRecord) bool) ([]models.WorkRecord, error) {
	all, err := s.ListWorkRecords(ctx)
	if err != nil {
		return nil, err
	}

	var records []models.WorkRecord
	for _, record := range all {
		if keep(record) {
			records = append(records, record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	return records, nil
}

// GetSettings returns the saved settings, or the defaults when none were saved.
func (s *Store) GetSettings(ctx context.Context) (models.AppSettings, error) {
	raw, err := s.client.Get(ctx, s.key(settingsKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.DefaultSettings(), nil
		}
		return models.AppSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err = json.Unmarshal(raw, &settings); err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings saves the settings document.
func (s *Store) UpdateSettings(ctx context.Context, settings models.AppSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err = s.client.Set(ctx, s.key(settingsKey), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
