package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/shopspring/decimal"
)

// EmployeeInput is the editable part of an employee.
type EmployeeInput struct {
	Name      string          `validate:"required,max=100"`
	DailyRate decimal.Decimal `validate:"gt=0"`
}

// ListEmployees returns every employee in creation order.
func (s *Service) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	defer s.metrics.ObserveStorage("list_employees", time.Now())

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// GetEmployee returns one employee or ErrEmployeeNotFound.
func (s *Service) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	defer s.metrics.ObserveStorage("get_employee", time.Now())

	employee, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return models.Employee{}, mapNotFound(err, ErrEmployeeNotFound)
	}
	return employee, nil
}

// CreateEmployee validates input and stores a new employee with no advances.
func (s *Service) CreateEmployee(ctx context.Context, input EmployeeInput) (models.Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.check(input); err != nil {
		return models.Employee{}, err
	}

	employee := models.Employee{
		ID:        s.newID(),
		Name:      input.Name,
		DailyRate: input.DailyRate,
		Advances:  decimal.Zero,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.AddEmployee(ctx, employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	s.log.InfoContext(ctx, "Employee created", "id", employee.ID, "name", employee.Name)
	return employee, nil
}

// UpdateEmployee changes the name and rate of an employee. Advances are
// only changed through RecordAdvance.
func (s *Service) UpdateEmployee(ctx context.Context, id string, input EmployeeInput) (models.Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.check(input); err != nil {
		return models.Employee{}, err
	}

	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return models.Employee{}, err
	}

	employee.Name = input.Name
	employee.DailyRate = input.DailyRate

	if err = s.store.UpdateEmployee(ctx, employee); err != nil {
		return models.Employee{}, mapNotFound(err, ErrEmployeeNotFound)
	}
	return employee, nil
}

// DeleteEmployee removes an employee. Work records are left in place.
func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.log.InfoContext(ctx, "Employee deleted", "id", id)
	return nil
}

// RecordAdvance adds a positive amount to the employee's cumulative advances.
func (s *Service) RecordAdvance(ctx context.Context, employeeID string, amount decimal.Decimal) (models.Employee, error) {
	if !amount.IsPositive() {
		return models.Employee{}, fmt.Errorf("%w: advance must be positive", ErrValidation)
	}

	employee, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return models.Employee{}, err
	}

	employee.Advances = employee.Advances.Add(amount)

	if err = s.store.UpdateEmployee(ctx, employee); err != nil {
		return models.Employee{}, mapNotFound(err, ErrEmployeeNotFound)
	}

	s.log.InfoContext(ctx, "Advance recorded",
		"employee_id", employeeID, "amount", amount.String(), "total", employee.Advances.String())
	return employee, nil
}
