package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/PayLedger/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresLedgerRepository implements salary record persistence against a
// PostgreSQL database.
type PostgresLedgerRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresLedgerRepository creates a new PostgresLedgerRepository using
// the provided *sql.DB. db must be a valid connection to a PostgreSQL
// instance.
func NewPostgresLedgerRepository(db *sql.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{DB: db}
}

// UpsertRecord creates or replaces the salary record keyed by
// (user, employee, month, year) and wholly replaces its expense set,
// all within a single transaction.
//
// The conditional upsert is a single INSERT ... ON CONFLICT DO UPDATE,
// so two concurrent submissions for the same key tuple cannot both
// create a row, and the existing record keeps its id. The expense
// delete and re-insert are scoped to (user, record id).
func (r *PostgresLedgerRepository) UpsertRecord(ctx context.Context, record models.SalaryRecord, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var recordID string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO salary_records (id, user_id, employee_id, month, year, salary)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, employee_id, month, year) DO UPDATE SET
			salary = EXCLUDED.salary
		RETURNING id
	`, record.ID, record.UserID, record.EmployeeID, record.Month, record.Year, record.Salary).Scan(&recordID)
	if err != nil {
		return nil, fmt.Errorf("upsert record: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM expenses WHERE salary_record_id = $1 AND user_id = $2
	`, recordID, record.UserID)
	if err != nil {
		return nil, fmt.Errorf("delete expenses: %w", err)
	}

	inserted := make([]models.Expense, 0, len(expenses))
	for _, in := range expenses {
		exp := models.Expense{
			ID:             uuid.NewString(),
			UserID:         record.UserID,
			SalaryRecordID: recordID,
			Category:       in.Category,
			Amount:         in.Amount,
			ExpenseDay:     in.ExpenseDay,
			ExpenseMonth:   in.ExpenseMonth,
			ExpenseYear:    in.ExpenseYear,
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (id, user_id, salary_record_id, category, amount, expense_day, expense_month, expense_year)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, exp.ID, exp.UserID, exp.SalaryRecordID, exp.Category, exp.Amount, exp.ExpenseDay, exp.ExpenseMonth, exp.ExpenseYear)
		if err != nil {
			return nil, fmt.Errorf("insert expense: %w", err)
		}
		inserted = append(inserted, exp)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	record.ID = recordID
	return &models.SalaryRecordWithExpenses{
		SalaryRecord: record,
		Expenses:     inserted,
	}, nil
}

// RecordsByUser fetches all salary records owned by the given user,
// most recent month first, each merged with its expenses. Expenses for
// all returned records are fetched in one query keyed by parent id.
func (r *PostgresLedgerRepository) RecordsByUser(ctx context.Context, userID string) ([]models.SalaryRecordWithExpenses, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, employee_id, month, year, salary FROM salary_records
		WHERE user_id = $1 ORDER BY year DESC, month DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("RecordsByUser: %w", err)
	}
	defer rows.Close()

	records := make([]models.SalaryRecordWithExpenses, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var rec models.SalaryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.EmployeeID, &rec.Month, &rec.Year, &rec.Salary); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, models.SalaryRecordWithExpenses{
			SalaryRecord: rec,
			Expenses:     []models.Expense{},
		})
		ids = append(ids, rec.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("RecordsByUser rows: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	expRows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, salary_record_id, category, amount, expense_day, expense_month, expense_year
		FROM expenses WHERE user_id = $1 AND salary_record_id = ANY($2)
	`, userID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}
	defer expRows.Close()

	byRecord := make(map[string][]models.Expense)
	for expRows.Next() {
		var e models.Expense
		if err := expRows.Scan(&e.ID, &e.UserID, &e.SalaryRecordID, &e.Category, &e.Amount, &e.ExpenseDay, &e.ExpenseMonth, &e.ExpenseYear); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		byRecord[e.SalaryRecordID] = append(byRecord[e.SalaryRecordID], e)
	}
	if err := expRows.Err(); err != nil {
		return nil, fmt.Errorf("fetch expenses rows: %w", err)
	}

	for i := range records {
		if exps, ok := byRecord[records[i].ID]; ok {
			records[i].Expenses = exps
		}
	}
	return records, nil
}
