// Package storage defines the record store the rest of the application
// reads from and writes to. Implementations live in internal/repository
// (PostgreSQL) and internal/kvstore (Redis).
package storage

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/tally/internal/models"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// EmployeeStore persists employees.
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id string) (models.Employee, error)
	AddEmployee(ctx context.Context, employee models.Employee) error
	UpdateEmployee(ctx context.Context, employee models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}

// ClientStore persists clients.
type ClientStore interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (models.Client, error)
	AddClient(ctx context.Context, client models.Client) error
	UpdateClient(ctx context.Context, client models.Client) error
	DeleteClient(ctx context.Context, id string) error
}

// WorkRecordStore persists work records. Date ranges are closed on both
// ends and compared as YYYY-MM-DD strings.
type WorkRecordStore interface {
	ListWorkRecords(ctx context.Context) ([]models.WorkRecord, error)
	GetWorkRecord(ctx context.Context, id string) (models.WorkRecord, error)
	AddWorkRecord(ctx context.Context, record models.WorkRecord) error
	UpdateWorkRecord(ctx context.Context, record models.WorkRecord) error
	DeleteWorkRecord(ctx context.Context, id string) error
	WorkRecordsByEmployee(ctx context.Context, employeeID string) ([]models.WorkRecord, error)
	WorkRecordsByDateRange(ctx context.Context, employeeID, start, end string) ([]models.WorkRecord, error)
}

// SettingsStore persists the single settings document. GetSettings returns
// models.DefaultSettings when nothing was saved yet.
type SettingsStore interface {
	GetSettings(ctx context.Context) (models.AppSettings, error)
	UpdateSettings(ctx context.Context, settings models.AppSettings) error
}

// Store is the full storage collaborator.
type Store interface {
	EmployeeStore
	ClientStore
	WorkRecordStore
	SettingsStore
	Ping(ctx context.Context) error
}
