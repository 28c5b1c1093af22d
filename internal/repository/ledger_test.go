package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/PayLedger/internal/models"
)

func setupLedgerMock(t *testing.T) (*PostgresLedgerRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresLedgerRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestUpsertRecord_InsertWithExpenses(t *testing.T) {
	repo, mock, cleanup := setupLedgerMock(t)
	defer cleanup()

	record := models.SalaryRecord{
		ID: "r-new", UserID: "u1", EmployeeID: "e1", Month: 3, Year: 2024, Salary: 50000,
	}
	expenses := []models.ExpenseInput{
		{Category: "Fuel", Amount: 1200, ExpenseDay: 5, ExpenseMonth: 3, ExpenseYear: 2024},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO salary_records`)).
		WithArgs(record.ID, record.UserID, record.EmployeeID, record.Month, record.Year, record.Salary).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r-new"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM expenses WHERE salary_record_id = $1 AND user_id = $2`)).
		WithArgs("r-new", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO expenses`)).
		WithArgs(sqlmock.AnyArg(), "u1", "r-new", "Fuel", 1200.0, 5, 3, 2024).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	got, err := repo.UpsertRecord(context.Background(), record, expenses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "r-new" {
		t.Errorf("record id = %q; want %q", got.ID, "r-new")
	}
	if len(got.Expenses) != 1 || got.Expenses[0].SalaryRecordID != "r-new" {
		t.Errorf("expenses = %+v", got.Expenses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpsertRecord_ConflictKeepsExistingID(t *testing.T) {
	repo, mock, cleanup := setupLedgerMock(t)
	defer cleanup()

	record := models.SalaryRecord{
		ID: "r-candidate", UserID: "u1", EmployeeID: "e1", Month: 3, Year: 2024, Salary: 52000,
	}

	mock.ExpectBegin()
	// On conflict the store keeps the existing row's id.
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO salary_records`)).
		WithArgs(record.ID, record.UserID, record.EmployeeID, record.Month, record.Year, record.Salary).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r-existing"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM expenses WHERE salary_record_id = $1 AND user_id = $2`)).
		WithArgs("r-existing", "u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	got, err := repo.UpsertRecord(context.Background(), record, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "r-existing" {
		t.Errorf("record id = %q; want existing id %q", got.ID, "r-existing")
	}
	if len(got.Expenses) != 0 {
		t.Errorf("expenses = %+v; want empty after replacement", got.Expenses)
	}
	if got.Salary != 52000 {
		t.Errorf("salary = %v; want 52000", got.Salary)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpsertRecord_RollsBackOnExpenseInsertError(t *testing.T) {
	repo, mock, cleanup := setupLedgerMock(t)
	defer cleanup()

	record := models.SalaryRecord{
		ID: "r1", UserID: "u1", EmployeeID: "e1", Month: 3, Year: 2024, Salary: 50000,
	}
	expenses := []models.ExpenseInput{{Category: "Fuel", Amount: 1200, ExpenseDay: 5, ExpenseMonth: 3, ExpenseYear: 2024}}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO salary_records`)).
		WithArgs(record.ID, record.UserID, record.EmployeeID, record.Month, record.Year, record.Salary).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r1"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM expenses WHERE salary_record_id = $1 AND user_id = $2`)).
		WithArgs("r1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO expenses`)).
		WithArgs(sqlmock.AnyArg(), "u1", "r1", "Fuel", 1200.0, 5, 3, 2024).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	_, err := repo.UpsertRecord(context.Background(), record, expenses)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRecordsByUser_BatchesExpenseFetch(t *testing.T) {
	repo, mock, cleanup := setupLedgerMock(t)
	defer cleanup()

	recordRows := sqlmock.NewRows([]string{"id", "user_id", "employee_id", "month", "year", "salary"}).
		AddRow("r1", "u1", "e1", 2, 2024, 50000.0).
		AddRow("r2", "u1", "e1", 11, 2023, 48000.0)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, employee_id, month, year, salary FROM salary_records`)).
		WithArgs("u1").
		WillReturnRows(recordRows)

	// One expense query for all record ids, keyed by parent id.
	expenseRows := sqlmock.NewRows([]string{"id", "user_id", "salary_record_id", "category", "amount", "expense_day", "expense_month", "expense_year"}).
		AddRow("x1", "u1", "r1", "Fuel", 1200.0, 5, 3, 2024)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM expenses WHERE user_id = $1 AND salary_record_id = ANY($2)`)).
		WithArgs("u1", sqlmock.AnyArg()).
		WillReturnRows(expenseRows)

	records, err := repo.RecordsByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records; want 2", len(records))
	}
	// Most recent month first: March 2024 before December 2023.
	if records[0].ID != "r1" || records[1].ID != "r2" {
		t.Errorf("order = %q, %q; want r1, r2", records[0].ID, records[1].ID)
	}
	if len(records[0].Expenses) != 1 || records[0].Expenses[0].Category != "Fuel" {
		t.Errorf("r1 expenses = %+v", records[0].Expenses)
	}
	if len(records[1].Expenses) != 0 {
		t.Errorf("r2 expenses = %+v; want none", records[1].Expenses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRecordsByUser_Empty(t *testing.T) {
	repo, mock, cleanup := setupLedgerMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, employee_id, month, year, salary FROM salary_records`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "employee_id", "month", "year", "salary"}))

	records, err := repo.RecordsByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records; want 0", len(records))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
