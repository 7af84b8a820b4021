package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/storage"
	"github.com/jackc/pgx/v5"
)

// ListEmployees returns every employee ordered by creation time.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.db.Query(ctx, ListEmployeesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(
			&employee.ID, &employee.Name, &employee.DailyRate, &employee.Advances, &employee.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}

// GetEmployee returns the employee with the given id or storage.ErrNotFound.
func (r *Repository) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	var employee models.Employee

	err := r.db.QueryRow(ctx, GetEmployeeSQL, id).Scan(
		&employee.ID, &employee.Name, &employee.DailyRate, &employee.Advances, &employee.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, fmt.Errorf("employee %s: %w", id, storage.ErrNotFound)
		}
		return models.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee, nil
}

// AddEmployee inserts a new employee.
func (r *Repository) AddEmployee(ctx context.Context, employee models.Employee) error {
	_, err := r.db.Exec(ctx, InsertEmployeeSQL,
		employee.ID, employee.Name, employee.DailyRate, employee.Advances, employee.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// UpdateEmployee replaces the employee with the same id.
func (r *Repository) UpdateEmployee(ctx context.Context, employee models.Employee) error {
	cmdTag, err := r.db.Exec(ctx, UpdateEmployeeSQL,
		employee.ID, employee.Name, employee.DailyRate, employee.Advances,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", employee.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteEmployee removes the employee. Work records of the employee are kept.
func (r *Repository) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, DeleteEmployeeSQL, id); err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	return nil
}
