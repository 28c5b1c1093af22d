package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/atinyakov/PayLedger/internal/models"
	"github.com/google/uuid"
)

// EmployeeRepository defines the persistence operations needed by the
// EmployeeService. All operations are scoped by the owning user id.
type EmployeeRepository interface {
	// EmployeesByUser retrieves all employees owned by the user.
	EmployeesByUser(ctx context.Context, userID string) ([]models.Employee, error)
	// CreateEmployee persists a new employee row.
	CreateEmployee(ctx context.Context, employee models.Employee) error
	// UpdateEmployee updates name and position of the owner's employee.
	// Implementations return sql.ErrNoRows when no such row exists.
	UpdateEmployee(ctx context.Context, userID, id, name, position string) error
	// DeleteEmployee removes the owner's employee.
	// Implementations return sql.ErrNoRows when no such row exists.
	DeleteEmployee(ctx context.Context, userID, id string) error
}

// EmployeeService implements owner-scoped employee management.
//
// Deleting an employee retains that employee's salary records: the
// ledger is historical and a record for a past month stays meaningful
// after the employee is gone.
type EmployeeService struct {
	// repo is the underlying persistence repository.
	repo EmployeeRepository
}

// NewEmployeeService constructs an EmployeeService with the provided
// EmployeeRepository.
func NewEmployeeService(repo EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

// List returns all employees owned by the user.
func (s *EmployeeService) List(ctx context.Context, userID string) ([]models.Employee, error) {
	return s.repo.EmployeesByUser(ctx, userID)
}

// Create validates the input and persists a new employee for the user.
func (s *EmployeeService) Create(ctx context.Context, userID, name, position string) (*models.Employee, error) {
	if name == "" {
		return nil, &ValidationError{Message: "employee name is required"}
	}

	employee := models.Employee{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Position: position,
	}
	if err := s.repo.CreateEmployee(ctx, employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update changes the name and position of the user's employee.
// Returns ErrNotFound if the employee does not exist for that owner.
func (s *EmployeeService) Update(ctx context.Context, userID, id, name, position string) (*models.Employee, error) {
	if name == "" {
		return nil, &ValidationError{Message: "employee name is required"}
	}

	if err := s.repo.UpdateEmployee(ctx, userID, id, name, position); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &models.Employee{ID: id, UserID: userID, Name: name, Position: position}, nil
}

// Delete removes the user's employee. Salary records referencing the
// employee are kept. Returns ErrNotFound if the employee does not exist
// for that owner.
func (s *EmployeeService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteEmployee(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
