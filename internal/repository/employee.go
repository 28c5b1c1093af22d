package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/PayLedger/internal/models"
)

// PostgresEmployeeRepository implements employee persistence using a
// PostgreSQL database. Every operation is scoped by the owning user id.
type PostgresEmployeeRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresEmployeeRepository creates a new PostgresEmployeeRepository
// using the provided *sql.DB.
func NewPostgresEmployeeRepository(db *sql.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{DB: db}
}

// EmployeesByUser fetches all employees owned by the given user, oldest
// first.
func (r *PostgresEmployeeRepository) EmployeesByUser(ctx context.Context, userID string) ([]models.Employee, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, position FROM employees WHERE user_id = $1 ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("EmployeesByUser: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Position); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// CreateEmployee inserts a new employee row.
func (r *PostgresEmployeeRepository) CreateEmployee(ctx context.Context, employee models.Employee) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO employees (id, user_id, name, position) VALUES ($1, $2, $3, $4)`,
		employee.ID, employee.UserID, employee.Name, employee.Position,
	)
	if err != nil {
		return fmt.Errorf("CreateEmployee: %w", err)
	}
	return nil
}

// UpdateEmployee updates the name and position of the employee with the
// given id, provided it belongs to the given user. Returns sql.ErrNoRows
// if no such employee exists for that owner.
func (r *PostgresEmployeeRepository) UpdateEmployee(ctx context.Context, userID, id, name, position string) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE employees SET name = $1, position = $2 WHERE id = $3 AND user_id = $4`,
		name, position, id, userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateEmployee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateEmployee rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteEmployee removes the employee with the given id for the given
// user. Salary records referencing the employee are retained. Returns
// sql.ErrNoRows if no such employee exists for that owner.
func (r *PostgresEmployeeRepository) DeleteEmployee(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM employees WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteEmployee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteEmployee rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
