package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/repository"
	"github.com/UnknownOlympus/tally/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeColumns = []string{"id", "name", "daily_rate", "advances", "created_at"}

func TestListEmployees(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	created := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		rows := pgxmock.NewRows(employeeColumns).
			AddRow("e1", "Ahmed", "200", "0", created).
			AddRow("e2", "Sara", "150.50", "75", created.Add(time.Hour))
		mock.ExpectQuery(regexp.QuoteMeta(repository.ListEmployeesSQL)).WillReturnRows(rows)

		employees, err := repo.ListEmployees(ctx)

		require.NoError(t, err)
		require.Len(t, employees, 2)
		assert.Equal(t, "Ahmed", employees[0].Name)
		assert.True(t, employees[1].DailyRate.Equal(decimal.RequireFromString("150.5")))
		assert.True(t, employees[1].Advances.Equal(decimal.NewFromInt(75)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.ListEmployeesSQL)).WillReturnError(assert.AnError)

		employees, err := repo.ListEmployees(ctx)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to query employees")
		assert.Nil(t, employees)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - row error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		rows := pgxmock.NewRows(employeeColumns).
			AddRow("e1", "Ahmed", "200", "0", created).
			AddRow("e2", "Sara", "150", "0", created).
			RowError(1, assert.AnError)
		mock.ExpectQuery(regexp.QuoteMeta(repository.ListEmployeesSQL)).WillReturnRows(rows)

		_, err = repo.ListEmployees(ctx)

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetEmployee(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	created := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GetEmployeeSQL)).
			WithArgs("e1").
			WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow("e1", "Ahmed", "200", "10", created))

		employee, err := repo.GetEmployee(ctx, "e1")

		require.NoError(t, err)
		assert.Equal(t, "e1", employee.ID)
		assert.True(t, employee.DailyRate.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, created, employee.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GetEmployeeSQL)).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.GetEmployee(ctx, "missing")

		require.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - database failure", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GetEmployeeSQL)).
			WithArgs("e1").
			WillReturnError(assert.AnError)

		_, err = repo.GetEmployee(ctx, "e1")

		require.ErrorIs(t, err, assert.AnError)
		require.NotErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddEmployee(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	employee := models.Employee{
		ID:        "e1",
		Name:      "Ahmed",
		DailyRate: decimal.NewFromInt(200),
		Advances:  decimal.Zero,
		CreatedAt: time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC),
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(repository.InsertEmployeeSQL)).
			WithArgs(employee.ID, employee.Name, employee.DailyRate, employee.Advances, employee.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.AddEmployee(ctx, employee))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(repository.InsertEmployeeSQL)).
			WithArgs(employee.ID, employee.Name, employee.DailyRate, employee.Advances, employee.CreatedAt).
			WillReturnError(assert.AnError)

		err = repo.AddEmployee(ctx, employee)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to insert employee")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateEmployee(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	employee := models.Employee{
		ID:        "e1",
		Name:      "Ahmed",
		DailyRate: decimal.NewFromInt(220),
		Advances:  decimal.NewFromInt(40),
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(repository.UpdateEmployeeSQL)).
			WithArgs(employee.ID, employee.Name, employee.DailyRate, employee.Advances).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.UpdateEmployee(ctx, employee))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - unknown id", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(repository.UpdateEmployeeSQL)).
			WithArgs(employee.ID, employee.Name, employee.DailyRate, employee.Advances).
			WillReturnResult(pgconn.NewCommandTag("UPDATE 0"))

		err = repo.UpdateEmployee(ctx, employee)

		require.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("unknown id is not an error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(repository.DeleteEmployeeSQL)).
			WithArgs("missing").
			WillReturnResult(pgconn.NewCommandTag("DELETE 0"))

		require.NoError(t, repo.DeleteEmployee(ctx, "missing"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - delete failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(repository.DeleteEmployeeSQL)).
			WithArgs("e1").
			WillReturnError(assert.AnError)

		err = repo.DeleteEmployee(ctx, "e1")

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPing(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := repository.NewRepository(mock)

	mock.ExpectPing().WillReturnError(assert.AnError)

	err = repo.Ping(t.Context())

	require.ErrorIs(t, err, assert.AnError)
	require.ErrorContains(t, err, "failed to ping database")
	assert.NoError(t, mock.ExpectationsWereMet())
}
