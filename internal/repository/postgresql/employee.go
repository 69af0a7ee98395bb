package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	employee_id, client_id, first_name, last_name, email,
	referentieduur_minutes, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.ClientID, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.ReferenceMinutes, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, clientID string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employee
		WHERE employee_id = $1 AND client_id = $2
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// LockForScan implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) LockForScan(ctx context.Context, id string, clientID string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}

	q := GetQuerier(ctx, e.db)

	query := `
		SELECT employee_id
		FROM employee
		WHERE employee_id = $1 AND client_id = $2
		FOR UPDATE
	`

	var lockedID string
	if err := q.QueryRow(ctx, query, id, clientID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to lock employee: %w", err)
	}

	return nil
}

// ListByClient implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByClient(ctx context.Context, clientID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employee
		WHERE client_id = $1
		ORDER BY created_at DESC, employee_id
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// UpdateReferenceMinutes implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateReferenceMinutes(ctx context.Context, id string, clientID string, minutes *int) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employee
		SET referentieduur_minutes = $1, updated_at = NOW()
		WHERE employee_id = $2 AND client_id = $3
		RETURNING ` + employeeColumns

	emp, err := scanEmployee(q.QueryRow(ctx, query, minutes, id, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update reference minutes: %w", err)
	}

	return emp, nil
}
