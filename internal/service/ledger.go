package service

import (
	"context"

	"github.com/atinyakov/PayLedger/internal/models"
	"github.com/google/uuid"
)

// LedgerRepository defines the persistence operations needed by the
// LedgerService.
type LedgerRepository interface {
	// UpsertRecord creates or replaces the salary record keyed by
	// (user, employee, month, year) and wholly replaces its expense
	// set, atomically. The record's given id is used only on insert;
	// on conflict the existing row keeps its id.
	UpsertRecord(ctx context.Context, record models.SalaryRecord, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error)
	// RecordsByUser retrieves all records owned by the user, most
	// recent month first, each merged with its expenses.
	RecordsByUser(ctx context.Context, userID string) ([]models.SalaryRecordWithExpenses, error)
}

// LedgerService implements the salary-record ledger: at most one record
// per (owner, employee, month, year), with replace-wholesale expense
// semantics.
type LedgerService struct {
	// repo is the underlying persistence repository.
	repo LedgerRepository
}

// NewLedgerService constructs a LedgerService with the provided
// LedgerRepository.
func NewLedgerService(repo LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// UpsertRecord validates the input and creates or replaces the salary
// record for (userID, employeeID, month, year). A second submission for
// the same tuple updates the salary in place and replaces the expense
// list entirely; expense lists are never merged. Returns the record
// merged with its freshly inserted expenses.
func (s *LedgerService) UpsertRecord(ctx context.Context, userID, employeeID string, month, year int, salary float64, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error) {
	if employeeID == "" {
		return nil, &ValidationError{Message: "employee is required"}
	}
	if month < 0 || month > 11 {
		return nil, &ValidationError{Message: "month must be between 0 and 11"}
	}
	if year <= 0 {
		return nil, &ValidationError{Message: "year must be positive"}
	}
	if salary < 0 {
		return nil, &ValidationError{Message: "salary must not be negative"}
	}
	for _, e := range expenses {
		if e.Amount < 0 {
			return nil, &ValidationError{Message: "expense amount must not be negative"}
		}
	}

	record := models.SalaryRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		Salary:     salary,
	}
	return s.repo.UpsertRecord(ctx, record, expenses)
}

// ListRecords returns all salary records owned by the user, ordered by
// year descending then month descending, each with its expenses.
func (s *LedgerService) ListRecords(ctx context.Context, userID string) ([]models.SalaryRecordWithExpenses, error) {
	return s.repo.RecordsByUser(ctx, userID)
}
